package store

import (
	"encoding/base64"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/arloliu/storebuf/errs"
	"github.com/arloliu/storebuf/internal/pool"
)

// base owns the backing buffer shared by all codecs. len(buf.B) is the
// logical size; cursors live in the concrete codecs.
type base struct {
	buf    *pool.ByteBuffer
	pooled bool
}

func newBase(capacity int) base {
	if capacity == pool.DefaultCapacity {
		return base{buf: pool.GetBuffer(), pooled: true}
	}

	return base{buf: pool.NewByteBuffer(capacity)}
}

// newBaseFromBytes copies data so that later writes never alias the caller's slice.
func newBaseFromBytes(data []byte) base {
	owned := make([]byte, len(data))
	copy(owned, data)

	return base{buf: pool.WrapByteBuffer(owned)}
}

func decodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidBase64, err)
	}

	return data, nil
}

// Size returns the number of bytes written so far.
func (b *base) Size() int {
	return b.live().Len()
}

// IsEmpty reports whether nothing has been written.
func (b *base) IsEmpty() bool {
	return b.Size() == 0
}

// Bytes returns a copy of the written bytes.
func (b *base) Bytes() []byte {
	src := b.live().Bytes()
	out := make([]byte, len(src))
	copy(out, src)

	return out
}

// Base64 returns the written bytes as standard, padded base64.
func (b *base) Base64() string {
	return base64.StdEncoding.EncodeToString(b.live().Bytes())
}

// WriteTo implements io.WriterTo.
func (b *base) WriteTo(w io.Writer) (int64, error) {
	return b.live().WriteTo(w)
}

// Finish returns a pooled buffer to the pool. Subsequent use panics.
func (b *base) Finish() {
	if b.buf == nil {
		return
	}
	if b.pooled {
		pool.PutBuffer(b.buf)
	}
	b.buf = nil
}

// ensure guarantees room for n more bytes, growing geometrically.
func (b *base) ensure(n int) {
	buf := b.live()
	if buf.Cap()-buf.Len() >= n {
		return
	}

	before := buf.Cap()
	buf.Grow(n)
	Logger().Debug("store buffer grown",
		zap.Int("from", before),
		zap.Int("to", buf.Cap()),
		zap.Int("size", buf.Len()),
	)
}

// truncate validates n and shrinks the logical size.
func (b *base) truncate(n int) error {
	buf := b.live()
	if n < 0 || n > buf.Len() {
		return fmt.Errorf("%w: %d not in [0, %d]", errs.ErrInvalidTruncate, n, buf.Len())
	}
	buf.SetLength(n)

	return nil
}

func (b *base) live() *pool.ByteBuffer {
	if b.buf == nil {
		panic("store: buffer used after Finish()")
	}

	return b.buf
}
