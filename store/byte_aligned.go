package store

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/storebuf/endian"
	"github.com/arloliu/storebuf/errs"
)

// nullLength is the string length prefix that marks a null string.
const nullLength = -1

// ByteAligned writes every primitive at its natural fixed width:
// bool and int8 as one byte, int16/int32/int64 as 2/4/8 bytes in the
// configured byte order (big-endian by default). Strings are an int32 byte
// length followed by UTF-8 bytes, with -1 marking null.
type ByteAligned struct {
	base
	engine endian.EndianEngine
	strict bool
	pos    int
}

var _ Buffer = (*ByteAligned)(nil)

// NewByteAligned creates an empty byte-aligned buffer.
func NewByteAligned(opts ...Option) (*ByteAligned, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newByteAligned(cfg, newBase(cfg.capacity)), nil
}

// NewByteAlignedFromBytes creates a byte-aligned buffer holding a copy of
// data, ready to be read from the start.
func NewByteAlignedFromBytes(data []byte, opts ...Option) (*ByteAligned, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newByteAligned(cfg, newBaseFromBytes(data)), nil
}

// NewByteAlignedFromBase64 decodes s and behaves like NewByteAlignedFromBytes.
func NewByteAlignedFromBase64(s string, opts ...Option) (*ByteAligned, error) {
	data, err := decodeBase64(s)
	if err != nil {
		return nil, err
	}

	return NewByteAlignedFromBytes(data, opts...)
}

func newByteAligned(cfg *Config, b base) *ByteAligned {
	return &ByteAligned{
		base:   b,
		engine: cfg.engine,
		strict: cfg.strict,
	}
}

// Engine returns the byte order used for fixed-width integers.
func (b *ByteAligned) Engine() endian.EndianEngine {
	return b.engine
}

// StrictReads reports whether truncated strings fail instead of reading as "".
func (b *ByteAligned) StrictReads() bool {
	return b.strict
}

// Remaining returns the number of unread bytes.
func (b *ByteAligned) Remaining() int {
	return b.Size() - b.pos
}

func (b *ByteAligned) WriteBool(v bool) error {
	var c byte
	if v {
		c = 1
	}
	b.ensure(1)
	b.buf.MustWriteByte(c)

	return nil
}

func (b *ByteAligned) WriteInt8(v int8) error {
	b.ensure(1)
	b.buf.MustWriteByte(byte(v))

	return nil
}

func (b *ByteAligned) WriteInt16(v int16) error {
	b.ensure(2)
	b.buf.B = b.engine.AppendUint16(b.buf.B, uint16(v)) //nolint:gosec

	return nil
}

func (b *ByteAligned) WriteInt32(v int32) error {
	b.ensure(4)
	b.buf.B = b.engine.AppendUint32(b.buf.B, uint32(v)) //nolint:gosec

	return nil
}

func (b *ByteAligned) WriteInt64(v int64) error {
	b.ensure(8)
	b.buf.B = b.engine.AppendUint64(b.buf.B, uint64(v)) //nolint:gosec

	return nil
}

func (b *ByteAligned) WriteString(v string) error {
	return b.WriteNullableString(&v)
}

func (b *ByteAligned) WriteNullableString(v *string) error {
	if v == nil {
		return b.WriteInt32(nullLength)
	}
	if len(*v) > math.MaxInt32 {
		return fmt.Errorf("%w: string of %d bytes", errs.ErrValueOutOfRange, len(*v))
	}

	b.ensure(4 + len(*v))
	b.buf.B = b.engine.AppendUint32(b.buf.B, uint32(len(*v))) //nolint:gosec
	b.buf.MustWrite([]byte(*v))

	return nil
}

func (b *ByteAligned) ReadBool() (bool, error) {
	p, err := b.next(1)
	if err != nil {
		return false, err
	}

	return p[0] != 0, nil
}

func (b *ByteAligned) ReadInt8() (int8, error) {
	p, err := b.next(1)
	if err != nil {
		return 0, err
	}

	return int8(p[0]), nil //nolint:gosec
}

func (b *ByteAligned) ReadInt16() (int16, error) {
	p, err := b.next(2)
	if err != nil {
		return 0, err
	}

	return int16(b.engine.Uint16(p)), nil //nolint:gosec
}

func (b *ByteAligned) ReadInt32() (int32, error) {
	p, err := b.next(4)
	if err != nil {
		return 0, err
	}

	return int32(b.engine.Uint32(p)), nil //nolint:gosec
}

func (b *ByteAligned) ReadInt64() (int64, error) {
	p, err := b.next(8)
	if err != nil {
		return 0, err
	}

	return int64(b.engine.Uint64(p)), nil //nolint:gosec
}

func (b *ByteAligned) ReadString() (string, error) {
	return derefString(b.ReadNullableString())
}

func (b *ByteAligned) ReadNullableString() (*string, error) {
	n, err := b.ReadInt32()
	if err != nil {
		return b.truncatedString("byte-aligned", "string length", err)
	}
	if n == nullLength {
		return nil, nil
	}

	return b.readStringBody("byte-aligned", int(n))
}

func (b *ByteAligned) Truncate(n int) error {
	if err := b.truncate(n); err != nil {
		return err
	}
	b.pos = min(b.pos, n)

	return nil
}

func (b *ByteAligned) Reset() {
	b.buf.Reset()
	b.pos = 0
}

// next returns the next n unread bytes and advances the read cursor.
func (b *ByteAligned) next(n int) ([]byte, error) {
	size := b.Size()
	if b.pos+n > size {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, size %d", errs.ErrBufferUnderrun, n, b.pos, size)
	}

	p := b.buf.B[b.pos : b.pos+n]
	b.pos += n

	return p, nil
}

// readStringBody reads n bytes of string payload following a length prefix.
func (b *ByteAligned) readStringBody(codec string, n int) (*string, error) {
	if n < 0 || n > b.Remaining() {
		return b.truncatedString(codec, "string body",
			fmt.Errorf("%w: declared length %d, %d bytes remaining", errs.ErrBufferUnderrun, n, b.Remaining()))
	}

	s := string(b.buf.B[b.pos : b.pos+n])
	b.pos += n

	return &s, nil
}

// truncatedString handles a string whose prefix or body runs past the end of
// the buffer. Strict buffers fail; lenient ones log, consume the rest of the
// buffer and yield "". Causes other than a buffer underrun, such as a
// malformed length prefix, are returned in either mode.
func (b *ByteAligned) truncatedString(codec, what string, cause error) (*string, error) {
	if !errors.Is(cause, errs.ErrBufferUnderrun) {
		return nil, fmt.Errorf("%s: %w", what, cause)
	}
	if b.strict {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrTruncatedData, what, cause)
	}

	Logger().Warn("truncated string read as empty",
		zap.String("codec", codec),
		zap.String("part", what),
		zap.Int("offset", b.pos),
		zap.Int("size", b.Size()),
		zap.Error(cause),
	)
	b.pos = b.Size()
	empty := ""

	return &empty, nil
}

func derefString(s *string, err error) (string, error) {
	if err != nil || s == nil {
		return "", err
	}

	return *s, nil
}
