package store

import (
	"fmt"

	"github.com/arloliu/storebuf/errs"
	"github.com/arloliu/storebuf/format"
)

// New creates an empty buffer of the given codec. When WithCompression or
// WithCompressor is present the buffer is wrapped in Compressed.
func New(ct format.CodecType, opts ...Option) (Buffer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return build(ct, cfg, newBase(cfg.capacity))
}

// NewFromBytes creates a buffer of the given codec holding a copy of data.
func NewFromBytes(ct format.CodecType, data []byte, opts ...Option) (Buffer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return build(ct, cfg, newBaseFromBytes(data))
}

// NewFromBase64 decodes s and behaves like NewFromBytes.
func NewFromBase64(ct format.CodecType, s string, opts ...Option) (Buffer, error) {
	data, err := decodeBase64(s)
	if err != nil {
		return nil, err
	}

	return NewFromBytes(ct, data, opts...)
}

func build(ct format.CodecType, cfg *Config, b base) (Buffer, error) {
	var buf Buffer
	switch ct {
	case format.CodecByteAligned:
		buf = newByteAligned(cfg, b)
	case format.CodecVarWidth:
		buf = newVarWidth(cfg, b)
	case format.CodecBitPacked:
		buf = newBitPacked(b)
	default:
		b.Finish()
		return nil, fmt.Errorf("%w: %w: %d", errs.ErrUnsupportedOperation, errs.ErrInvalidCodecType, ct)
	}

	if cfg.compressed() {
		return newCompressed(buf, cfg), nil
	}

	return buf, nil
}

// CodecOf reports which codec produced b, looking through Compressed.
func CodecOf(b Buffer) (format.CodecType, error) {
	switch x := b.(type) {
	case *ByteAligned:
		return format.CodecByteAligned, nil
	case *VarWidth:
		return format.CodecVarWidth, nil
	case *BitPacked:
		return format.CodecBitPacked, nil
	case *Compressed:
		return CodecOf(x.Inner())
	default:
		return 0, fmt.Errorf("%w: unknown buffer type %T", errs.ErrInvalidCodecType, b)
	}
}
