package store

import (
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/storebuf/bigbit"
	"github.com/arloliu/storebuf/errs"
)

const (
	// CharShift is subtracted from every code point before it is packed, so
	// that common ASCII letters fall inside the narrow int8 fast path.
	CharShift = 64

	smallInt8Bits = 4
	smallInt8Max  = 1<<smallInt8Bits - 1
	// minCharBits is the fewest bits any packed character can occupy.
	minCharBits = 1 + smallInt8Bits
)

// BitPacked packs every primitive into the minimum number of bits needed for
// its magnitude, most significant bit first, tracked by a byte+bit cursor.
//
// Bools take one bit. Integers are a sign bit, a per-width header holding
// the magnitude bit count, then the magnitude bits (see NumberProfile).
// Strings are two width flags, a packed rune count and the packed runes.
//
// Size is byte-granular, so the last byte may end in zero padding bits.
// Reads that land in that padding succeed and decode zeros, such as false
// for ReadBool; only reads past the last byte fail with errs.ErrBufferUnderrun.
type BitPacked struct {
	base
	write BitCursor
	read  BitCursor
}

var _ Buffer = (*BitPacked)(nil)

// NewBitPacked creates an empty bit-packed buffer.
func NewBitPacked(opts ...Option) (*BitPacked, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newBitPacked(newBase(cfg.capacity)), nil
}

// NewBitPackedFromBytes creates a bit-packed buffer holding a copy of data.
// The write cursor is placed at the end of data.
func NewBitPackedFromBytes(data []byte, opts ...Option) (*BitPacked, error) {
	if _, err := newConfig(opts); err != nil {
		return nil, err
	}

	return newBitPacked(newBaseFromBytes(data)), nil
}

// NewBitPackedFromBase64 decodes s and behaves like NewBitPackedFromBytes.
func NewBitPackedFromBase64(s string, opts ...Option) (*BitPacked, error) {
	data, err := decodeBase64(s)
	if err != nil {
		return nil, err
	}

	return NewBitPackedFromBytes(data, opts...)
}

func newBitPacked(b base) *BitPacked {
	return &BitPacked{
		base:  b,
		write: BitCursor{Byte: b.buf.Len()},
	}
}

// WriteCursor returns the position of the next written bit.
func (b *BitPacked) WriteCursor() BitCursor { return b.write }

// ReadCursor returns the position of the next read bit.
func (b *BitPacked) ReadCursor() BitCursor { return b.read }

func (b *BitPacked) WriteBool(v bool) error {
	b.write = b.putBit(b.write, v)
	return nil
}

func (b *BitPacked) WriteInt8(v int8) error {
	b.write = b.putInt8(b.write, v)
	return nil
}

func (b *BitPacked) WriteInt16(v int16) error {
	b.write = b.putNumber(b.write, &profiles[Width16.index()], int64(v))
	return nil
}

func (b *BitPacked) WriteInt32(v int32) error {
	b.write = b.putNumber(b.write, &profiles[Width32.index()], int64(v))
	return nil
}

func (b *BitPacked) WriteInt64(v int64) error {
	b.write = b.putNumber(b.write, &profiles[Width64.index()], v)
	return nil
}

func (b *BitPacked) WriteString(v string) error {
	return b.WriteNullableString(&v)
}

func (b *BitPacked) WriteNullableString(v *string) error {
	if v == nil {
		at := b.putBit(b.write, true)
		b.write = b.putBit(at, true)

		return nil
	}

	runes := []rune(*v)
	if len(runes) > math.MaxInt32 {
		return fmt.Errorf("%w: string of %d runes", errs.ErrValueOutOfRange, len(runes))
	}

	needsInt, needsShort := false, false
	for _, r := range runes {
		c := int64(r) - CharShift
		switch {
		case c < math.MinInt16 || c > math.MaxInt16:
			needsInt = true
		case c < math.MinInt8 || c > math.MaxInt8:
			needsShort = true
		}
	}
	if needsInt {
		needsShort = false
	}

	at := b.putBit(b.write, needsInt)
	at = b.putBit(at, needsShort)
	at = b.putNumber(at, &lengthProfile, int64(len(runes)))
	for _, r := range runes {
		c := int64(r) - CharShift
		switch {
		case needsInt:
			at = b.putNumber(at, &profiles[Width32.index()], c)
		case needsShort:
			at = b.putNumber(at, &profiles[Width16.index()], c)
		default:
			at = b.putInt8(at, int8(c))
		}
	}
	b.write = at

	return nil
}

func (b *BitPacked) ReadBool() (bool, error) {
	v, at, err := b.getBit(b.read)
	if err != nil {
		return false, err
	}
	b.read = at

	return v, nil
}

func (b *BitPacked) ReadInt8() (int8, error) {
	v, at, err := b.getInt8(b.read)
	if err != nil {
		return 0, err
	}
	b.read = at

	return v, nil
}

func (b *BitPacked) ReadInt16() (int16, error) {
	v, err := b.readNumber(Width16)
	return int16(v), err //nolint:gosec
}

func (b *BitPacked) ReadInt32() (int32, error) {
	v, err := b.readNumber(Width32)
	return int32(v), err //nolint:gosec
}

func (b *BitPacked) ReadInt64() (int64, error) {
	return b.readNumber(Width64)
}

func (b *BitPacked) ReadString() (string, error) {
	return derefString(b.ReadNullableString())
}

func (b *BitPacked) ReadNullableString() (*string, error) {
	needsInt, at, err := b.getBit(b.read)
	if err != nil {
		return nil, err
	}
	needsShort, at, err := b.getBit(at)
	if err != nil {
		return nil, err
	}
	if needsInt && needsShort {
		b.read = at
		return nil, nil
	}

	n, at, err := b.getNumber(at, &lengthProfile)
	if err != nil {
		return nil, fmt.Errorf("string length: %w", err)
	}

	remaining := max(b.Size()*8-at.Offset(), 0)
	var sb strings.Builder
	sb.Grow(int(min(n, int64(remaining/minCharBits))))

	for i := range n {
		var c int64
		switch {
		case needsInt:
			c, at, err = b.getNumber(at, &profiles[Width32.index()])
		case needsShort:
			c, at, err = b.getNumber(at, &profiles[Width16.index()])
		default:
			var c8 int8
			c8, at, err = b.getInt8(at)
			c = int64(c8)
		}
		if err != nil {
			return nil, fmt.Errorf("string char %d of %d: %w", i, n, err)
		}
		sb.WriteRune(rune(c + CharShift))
	}
	b.read = at
	s := sb.String()

	return &s, nil
}

func (b *BitPacked) Truncate(n int) error {
	if err := b.truncate(n); err != nil {
		return err
	}

	b.write = BitCursor{Byte: n}
	if b.read.Offset() > n*8 {
		b.read = BitCursor{Byte: n}
	}

	return nil
}

func (b *BitPacked) Reset() {
	b.buf.Reset()
	b.write = BitCursor{}
	b.read = BitCursor{}
}

func (b *BitPacked) readNumber(w Width) (int64, error) {
	v, at, err := b.getNumber(b.read, &profiles[w.index()])
	if err != nil {
		return 0, err
	}
	b.read = at

	return v, nil
}

// extendTo grows the logical size to n bytes, zero filling.
func (b *BitPacked) extendTo(n int) {
	size := b.buf.Len()
	if n <= size {
		return
	}
	b.ensure(n - size)
	b.buf.ExtendZeroed(n - size)
}

func (b *BitPacked) putBit(at BitCursor, v bool) BitCursor {
	b.extendTo(at.Byte + 1)
	if v {
		b.buf.B[at.Byte] |= 0x80 >> at.Bit
	}

	return at.Advance(1)
}

func (b *BitPacked) getBit(at BitCursor) (bool, BitCursor, error) {
	if at.Byte >= b.Size() {
		return false, at, fmt.Errorf("%w: bit %d, size %d bytes", errs.ErrBufferUnderrun, at.Offset(), b.Size())
	}

	return b.buf.B[at.Byte]&(0x80>>at.Bit) != 0, at.Advance(1), nil
}

// putBits ORs the low n bits of v into the buffer starting at at.
func (b *BitPacked) putBits(at BitCursor, v uint64, n int) BitCursor {
	if n <= 0 {
		return at
	}
	if n < 64 {
		v &= 1<<n - 1
	}

	w := (at.Bit + n + 7) / 8
	end := at.Byte + w
	b.extendTo(end)

	window := b.buf.B[at.Byte:end]
	shifted := bigbit.FromUint64(v).WithLength(w).ShiftLeft(w*8 - at.Bit - n)
	copy(window, bigbit.FromBytes(window).Or(shifted).Bytes())

	return at.Advance(n)
}

// getBits reads n bits starting at at as an unsigned value.
func (b *BitPacked) getBits(at BitCursor, n int) (uint64, BitCursor, error) {
	if n <= 0 {
		return 0, at, nil
	}

	w := (at.Bit + n + 7) / 8
	end := at.Byte + w
	if end > b.Size() {
		return 0, at, fmt.Errorf("%w: %d bits at bit %d, size %d bytes", errs.ErrBufferUnderrun, n, at.Offset(), b.Size())
	}

	v := bigbit.FromBytes(b.buf.B[at.Byte:end]).ShiftLeft(at.Bit).ShiftRight(w*8 - n).Uint64()

	return v, at.Advance(n), nil
}

func (b *BitPacked) putNumber(at BitCursor, p *NumberProfile, v int64) BitCursor {
	mag := p.magnitude(v)
	if p.Signed {
		at = b.putBit(at, v < 0)
	}

	count := max(bigbit.FromUint64(mag).BitLength(), 1)
	at = b.putBits(at, uint64(count), p.HeaderBits) //nolint:gosec
	if count >= p.MaxMagnitudeBits {
		return at
	}

	return b.putBits(at, mag, count)
}

func (b *BitPacked) getNumber(at BitCursor, p *NumberProfile) (int64, BitCursor, error) {
	negative := false
	if p.Signed {
		var err error
		negative, at, err = b.getBit(at)
		if err != nil {
			return 0, at, err
		}
	}

	header, at, err := b.getBits(at, p.HeaderBits)
	if err != nil {
		return 0, at, err
	}

	count := max(int(header), 1) //nolint:gosec
	var mag uint64
	if count < p.MaxMagnitudeBits {
		mag, at, err = b.getBits(at, count)
		if err != nil {
			return 0, at, err
		}
	}

	if mag > p.Max {
		return 0, at, fmt.Errorf("%w: magnitude %d exceeds %d-bit range", errs.ErrValueOutOfRange, mag, p.Width)
	}
	if !negative {
		return int64(mag), at, nil //nolint:gosec
	}
	if mag == 0 {
		return p.Min, at, nil
	}

	return -int64(mag), at, nil //nolint:gosec
}

func (b *BitPacked) putInt8(at BitCursor, v int8) BitCursor {
	if v >= 0 && v <= smallInt8Max {
		at = b.putBit(at, false)
		return b.putBits(at, uint64(v), smallInt8Bits)
	}

	at = b.putBit(at, true)

	return b.putNumber(at, &profiles[Width8.index()], int64(v))
}

func (b *BitPacked) getInt8(at BitCursor) (int8, BitCursor, error) {
	extended, at, err := b.getBit(at)
	if err != nil {
		return 0, at, err
	}
	if !extended {
		v, next, err := b.getBits(at, smallInt8Bits)
		return int8(v), next, err //nolint:gosec
	}

	v, at, err := b.getNumber(at, &profiles[Width8.index()])

	return int8(v), at, err //nolint:gosec
}
