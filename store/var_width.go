package store

import (
	"fmt"
	"math"

	"github.com/arloliu/storebuf/errs"
)

const (
	varintContinuation = 0x80
	varintSign         = 0x40
	varintPayload      = 0x7F
	// maxVarintBytes is the longest encoding of a 64-bit magnitude.
	maxVarintBytes = 10
)

// VarWidth stores bool and int8 like ByteAligned but writes int16, int32
// and int64 as signed variable-length integers, so small magnitudes take
// one byte regardless of declared width.
//
// Each byte carries seven payload bits, least significant group first, with
// the high bit set on every byte except the last. The last byte carries six
// payload bits and the sign in bit 6. Strings are written as the unsigned
// varint of length+1 (0 marks null) followed by UTF-8 bytes.
type VarWidth struct {
	ByteAligned
}

var _ Buffer = (*VarWidth)(nil)

// NewVarWidth creates an empty variable-width buffer.
func NewVarWidth(opts ...Option) (*VarWidth, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newVarWidth(cfg, newBase(cfg.capacity)), nil
}

// NewVarWidthFromBytes creates a variable-width buffer holding a copy of data.
func NewVarWidthFromBytes(data []byte, opts ...Option) (*VarWidth, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newVarWidth(cfg, newBaseFromBytes(data)), nil
}

// NewVarWidthFromBase64 decodes s and behaves like NewVarWidthFromBytes.
func NewVarWidthFromBase64(s string, opts ...Option) (*VarWidth, error) {
	data, err := decodeBase64(s)
	if err != nil {
		return nil, err
	}

	return NewVarWidthFromBytes(data, opts...)
}

func newVarWidth(cfg *Config, b base) *VarWidth {
	return &VarWidth{ByteAligned: *newByteAligned(cfg, b)}
}

func (b *VarWidth) WriteInt16(v int16) error { return b.writeVarint(int64(v)) }
func (b *VarWidth) WriteInt32(v int32) error { return b.writeVarint(int64(v)) }
func (b *VarWidth) WriteInt64(v int64) error { return b.writeVarint(v) }

func (b *VarWidth) ReadInt16() (int16, error) {
	v, err := b.readVarint(math.MinInt16, math.MaxInt16)
	return int16(v), err //nolint:gosec
}

func (b *VarWidth) ReadInt32() (int32, error) {
	v, err := b.readVarint(math.MinInt32, math.MaxInt32)
	return int32(v), err //nolint:gosec
}

func (b *VarWidth) ReadInt64() (int64, error) {
	return b.readVarint(math.MinInt64, math.MaxInt64)
}

// WriteUvarint writes a non-negative value using seven payload bits per byte.
// Negative values return errs.ErrNegativeLength.
func (b *VarWidth) WriteUvarint(v int64) error {
	if v < 0 {
		return fmt.Errorf("%w: %d", errs.ErrNegativeLength, v)
	}

	b.ensure(maxVarintBytes)
	u := uint64(v)
	for u >= varintContinuation {
		b.buf.MustWriteByte(byte(u&varintPayload) | varintContinuation)
		u >>= 7
	}
	b.buf.MustWriteByte(byte(u))

	return nil
}

// ReadUvarint reads a value written by WriteUvarint.
func (b *VarWidth) ReadUvarint() (int64, error) {
	var u uint64
	for shift := 0; ; shift += 7 {
		p, err := b.next(1)
		if err != nil {
			return 0, err
		}

		c := p[0]
		if shift == 63 && c > 1 || shift > 63 {
			return 0, fmt.Errorf("%w: unsigned value exceeds 63 bits", errs.ErrMalformedVarint)
		}
		u |= uint64(c&varintPayload) << shift
		if c&varintContinuation == 0 {
			break
		}
	}
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%w: unsigned value exceeds 63 bits", errs.ErrMalformedVarint)
	}

	return int64(u), nil
}

func (b *VarWidth) WriteString(v string) error {
	return b.WriteNullableString(&v)
}

func (b *VarWidth) WriteNullableString(v *string) error {
	if v == nil {
		return b.WriteUvarint(0)
	}
	if err := b.WriteUvarint(int64(len(*v)) + 1); err != nil {
		return err
	}

	b.ensure(len(*v))
	b.buf.MustWrite([]byte(*v))

	return nil
}

func (b *VarWidth) ReadString() (string, error) {
	return derefString(b.ReadNullableString())
}

func (b *VarWidth) ReadNullableString() (*string, error) {
	n, err := b.ReadUvarint()
	if err != nil {
		return b.truncatedString("var-width", "string length", err)
	}
	if n == 0 {
		return nil, nil
	}
	if n-1 > int64(b.Remaining()) {
		return b.truncatedString("var-width", "string body",
			fmt.Errorf("%w: declared length %d, %d bytes remaining", errs.ErrBufferUnderrun, n-1, b.Remaining()))
	}

	return b.readStringBody("var-width", int(n-1))
}

func (b *VarWidth) writeVarint(v int64) error {
	b.ensure(maxVarintBytes)

	negative := v < 0
	mag := uint64(v)
	if negative {
		// Two's complement negation; MinInt64 maps to 1<<63.
		mag = -mag
	}

	for mag >= varintSign {
		b.buf.MustWriteByte(byte(mag&varintPayload) | varintContinuation)
		mag >>= 7
	}

	last := byte(mag)
	if negative {
		last |= varintSign
	}
	b.buf.MustWriteByte(last)

	return nil
}

// readVarint decodes a signed varint and checks it against [lo, hi].
func (b *VarWidth) readVarint(lo, hi int64) (int64, error) {
	var mag uint64
	shift := 0
	for {
		p, err := b.next(1)
		if err != nil {
			return 0, err
		}

		c := p[0]
		if c&varintContinuation == 0 {
			last := uint64(c & (varintSign - 1))
			if shift > 63 || shift == 63 && last > 1 {
				return 0, fmt.Errorf("%w: magnitude exceeds 64 bits", errs.ErrMalformedVarint)
			}
			mag |= last << shift

			return signedInRange(mag, c&varintSign != 0, lo, hi)
		}

		if shift > 63-7 {
			return 0, fmt.Errorf("%w: too many continuation bytes", errs.ErrMalformedVarint)
		}
		mag |= uint64(c&varintPayload) << shift
		shift += 7
	}
}

func signedInRange(mag uint64, negative bool, lo, hi int64) (int64, error) {
	if negative {
		if mag > uint64(-(lo + 1))+1 {
			return 0, fmt.Errorf("%w: -%d below %d", errs.ErrValueOutOfRange, mag, lo)
		}

		return int64(-mag), nil //nolint:gosec
	}

	if mag > uint64(hi) {
		return 0, fmt.Errorf("%w: %d above %d", errs.ErrValueOutOfRange, mag, hi)
	}

	return int64(mag), nil //nolint:gosec
}
