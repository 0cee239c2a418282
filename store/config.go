package store

import (
	"fmt"

	"github.com/arloliu/storebuf/compress"
	"github.com/arloliu/storebuf/endian"
	"github.com/arloliu/storebuf/errs"
	"github.com/arloliu/storebuf/format"
	"github.com/arloliu/storebuf/internal/options"
	"github.com/arloliu/storebuf/internal/pool"
)

// Config holds the construction settings shared by all codecs.
type Config struct {
	capacity    int
	engine      endian.EndianEngine
	strict      bool
	compression format.CompressionType
	compressor  compress.Codec
}

// Option configures a codec at construction time.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{
		capacity: pool.DefaultCapacity,
		engine:   endian.GetBigEndianEngine(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Capacity returns the initial buffer capacity in bytes.
func (c *Config) Capacity() int { return c.capacity }

// Engine returns the byte order used by the byte-aligned codecs.
func (c *Config) Engine() endian.EndianEngine { return c.engine }

// StrictReads reports whether truncated strings are errors instead of "".
func (c *Config) StrictReads() bool { return c.strict }

// Compression returns the string compression type, or 0 when none was configured.
func (c *Config) Compression() format.CompressionType { return c.compression }

// compressed reports whether a string compressor was configured.
func (c *Config) compressed() bool { return c.compressor != nil }

// WithCapacity sets the initial capacity of a new, empty buffer.
func WithCapacity(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCapacity, n)
		}
		c.capacity = n

		return nil
	})
}

// WithBigEndian selects big-endian byte order (the default).
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLittleEndian selects little-endian byte order for the byte-aligned codecs.
// The bit-packed codec always packs most significant bits first.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithStrictReads makes truncated string payloads fail with
// errs.ErrTruncatedData instead of reading as "".
func WithStrictReads() Option {
	return options.NoError(func(c *Config) {
		c.strict = true
	})
}

// WithCompression compresses strings with the given algorithm. It applies to
// New, NewFromBytes, NewFromBase64 and NewCompressed.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		codec, err := compress.GetCodec(comp)
		if err != nil {
			return fmt.Errorf("string compression: %w", err)
		}
		c.compression = comp
		c.compressor = codec

		return nil
	})
}

// WithCompressor compresses strings with a caller supplied codec.
func WithCompressor(codec compress.Codec) Option {
	return options.New(func(c *Config) error {
		if codec == nil {
			return fmt.Errorf("%w: nil compressor", errs.ErrUnsupportedOperation)
		}
		c.compression = 0
		c.compressor = codec

		return nil
	})
}
