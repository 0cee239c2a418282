package store

import (
	"fmt"
	"math"

	"github.com/arloliu/storebuf/compress"
	"github.com/arloliu/storebuf/errs"
	"github.com/arloliu/storebuf/format"
)

// Compressed wraps another Buffer and compresses strings before writing them.
//
// A string becomes its compressed length written with the inner WriteInt32,
// followed by each compressed byte written with the inner WriteInt8, so the
// layout inherits the inner codec's encoding. A null string is length -1.
// All other primitives pass straight through to the inner buffer.
type Compressed struct {
	Buffer
	codec       compress.Codec
	compression format.CompressionType
}

var _ Buffer = (*Compressed)(nil)

// NewCompressed wraps inner. The compressor is taken from WithCompression or
// WithCompressor and defaults to deflate.
func NewCompressed(inner Buffer, opts ...Option) (*Compressed, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: nil inner buffer", errs.ErrUnsupportedOperation)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newCompressed(inner, cfg), nil
}

func newCompressed(inner Buffer, cfg *Config) *Compressed {
	if cfg.compressor == nil {
		return &Compressed{
			Buffer:      inner,
			codec:       compress.NewDeflateCompressor(),
			compression: format.CompressionDeflate,
		}
	}

	return &Compressed{Buffer: inner, codec: cfg.compressor, compression: cfg.compression}
}

// Inner returns the wrapped buffer.
func (c *Compressed) Inner() Buffer {
	return c.Buffer
}

// Compression returns the compression type, or 0 for a custom compressor.
func (c *Compressed) Compression() format.CompressionType {
	return c.compression
}

func (c *Compressed) WriteString(v string) error {
	return c.WriteNullableString(&v)
}

func (c *Compressed) WriteNullableString(v *string) error {
	if v == nil {
		return c.Buffer.WriteInt32(nullLength)
	}

	payload, err := c.codec.Compress([]byte(*v))
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrCompressionFailure, err)
	}
	if len(payload) > math.MaxInt32 {
		return fmt.Errorf("%w: compressed string of %d bytes", errs.ErrValueOutOfRange, len(payload))
	}

	if err := c.Buffer.WriteInt32(int32(len(payload))); err != nil { //nolint:gosec
		return err
	}
	for _, p := range payload {
		if err := c.Buffer.WriteInt8(int8(p)); err != nil { //nolint:gosec
			return err
		}
	}

	return nil
}

func (c *Compressed) ReadString() (string, error) {
	return derefString(c.ReadNullableString())
}

func (c *Compressed) ReadNullableString() (*string, error) {
	n, err := c.Buffer.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("compressed string length: %w", err)
	}
	if n == nullLength {
		return nil, nil
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: compressed string length %d", errs.ErrMalformedCount, n)
	}

	payload := make([]byte, 0, min(int(n), c.Size()))
	for i := range n {
		p, err := c.Buffer.ReadInt8()
		if err != nil {
			return nil, fmt.Errorf("compressed string byte %d of %d: %w", i, n, err)
		}
		payload = append(payload, byte(p))
	}

	raw, err := c.codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCompressionFailure, err)
	}
	s := string(raw)

	return &s, nil
}
