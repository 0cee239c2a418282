// Package bigbit provides Buffer, a fixed-length big-endian bit sequence of
// arbitrary size.
//
// Buffer is the arithmetic workhorse of the bit-packed codec: an integer is
// loaded into a Buffer, shifted so that its most significant bit lines up
// with a bit cursor, and OR-ed into the bytes already present at that
// position. Shifts carry bits across byte boundaries, so a value can start at
// any bit of any byte.
//
// Every operation returns a new Buffer; the receiver is never modified.
package bigbit

import (
	"encoding/binary"
	"encoding/hex"
	"math/bits"
)

// Buffer is an immutable big-endian byte sequence with a fixed length.
// Byte 0 holds the most significant bits.
type Buffer struct {
	b []byte
}

// New returns a zeroed Buffer of n bytes.
func New(n int) Buffer {
	if n < 0 {
		panic("bigbit: negative length")
	}

	return Buffer{b: make([]byte, n)}
}

// FromBytes returns a Buffer holding a copy of data.
func FromBytes(data []byte) Buffer {
	b := make([]byte, len(data))
	copy(b, data)

	return Buffer{b: b}
}

// FromUint64 returns an 8-byte Buffer holding v.
func FromUint64(v uint64) Buffer {
	return Buffer{b: binary.BigEndian.AppendUint64(make([]byte, 0, 8), v)}
}

// FromInt64 returns an 8-byte Buffer holding the two's-complement bytes of v.
func FromInt64(v int64) Buffer {
	return FromUint64(uint64(v)) //nolint:gosec
}

// FromInt32 returns a 4-byte Buffer holding the two's-complement bytes of v.
func FromInt32(v int32) Buffer {
	return Buffer{b: binary.BigEndian.AppendUint32(make([]byte, 0, 4), uint32(v))} //nolint:gosec
}

// FromInt16 returns a 2-byte Buffer holding the two's-complement bytes of v.
func FromInt16(v int16) Buffer {
	return Buffer{b: binary.BigEndian.AppendUint16(make([]byte, 0, 2), uint16(v))} //nolint:gosec
}

// FromInt8 returns a 1-byte Buffer holding the two's-complement byte of v.
func FromInt8(v int8) Buffer {
	return Buffer{b: []byte{byte(v)}} //nolint:gosec
}

// Len returns the length of the buffer in bytes.
func (x Buffer) Len() int {
	return len(x.b)
}

// Bits returns the total width of the buffer in bits.
func (x Buffer) Bits() int {
	return len(x.b) * 8
}

// Bytes returns a copy of the underlying bytes.
func (x Buffer) Bytes() []byte {
	out := make([]byte, len(x.b))
	copy(out, x.b)

	return out
}

// WithLength returns the value resized to n bytes. Growing prepends zero
// bytes; shrinking drops the most significant bytes.
func (x Buffer) WithLength(n int) Buffer {
	out := New(n)
	alignRight(out.b, x.b)

	return out
}

// IsZero reports whether every bit is zero.
func (x Buffer) IsZero() bool {
	for _, c := range x.b {
		if c != 0 {
			return false
		}
	}

	return true
}

// Equal reports whether x and o have the same length and bytes.
func (x Buffer) Equal(o Buffer) bool {
	if len(x.b) != len(o.b) {
		return false
	}
	for i := range x.b {
		if x.b[i] != o.b[i] {
			return false
		}
	}

	return true
}

// String returns the buffer as lowercase hex.
func (x Buffer) String() string {
	return hex.EncodeToString(x.b)
}

// BitLength returns the number of bits needed to hold the value, counting
// from the most significant set bit. It returns 0 only for a zero value.
func (x Buffer) BitLength() int {
	for i, c := range x.b {
		if c != 0 {
			return (len(x.b)-i-1)*8 + bits.Len8(c)
		}
	}

	return 0
}

// Or returns the bytewise OR of x and o aligned at the least significant
// byte. The result always has x's length; o is truncated or zero-extended.
func (x Buffer) Or(o Buffer) Buffer {
	out := FromBytes(x.b)
	other := o.WithLength(len(x.b))
	for i := range out.b {
		out.b[i] |= other.b[i]
	}

	return out
}

// And returns the bytewise AND of x and o aligned at the least significant
// byte. The result always has x's length; o is truncated or zero-extended.
func (x Buffer) And(o Buffer) Buffer {
	out := FromBytes(x.b)
	other := o.WithLength(len(x.b))
	for i := range out.b {
		out.b[i] &= other.b[i]
	}

	return out
}

// ShiftLeft shifts the value left by n bits. Bits shifted past the most
// significant end are lost; a negative n shifts right.
func (x Buffer) ShiftLeft(n int) Buffer {
	if n < 0 {
		return x.ShiftRight(-n)
	}
	if n >= x.Bits() {
		return New(len(x.b))
	}

	byteShift, bitShift := n/8, uint(n%8) //nolint:gosec

	// Sub-byte step: each byte takes the bits spilled from its lower neighbour.
	tmp := FromBytes(x.b).b
	if bitShift > 0 {
		for i := range tmp {
			v := tmp[i] << bitShift
			if i+1 < len(tmp) {
				v |= tmp[i+1] >> (8 - bitShift)
			}
			tmp[i] = v
		}
	}

	out := New(len(x.b))
	copy(out.b, tmp[byteShift:])

	return out
}

// ShiftRight shifts the value right by n bits, filling with zeros. Bits
// shifted past the least significant end are lost; a negative n shifts left.
func (x Buffer) ShiftRight(n int) Buffer {
	if n < 0 {
		return x.ShiftLeft(-n)
	}
	if n >= x.Bits() {
		return New(len(x.b))
	}

	byteShift, bitShift := n/8, uint(n%8) //nolint:gosec

	// Sub-byte step: each byte takes the bits spilled from its upper neighbour.
	tmp := FromBytes(x.b).b
	if bitShift > 0 {
		for i := len(tmp) - 1; i >= 0; i-- {
			v := tmp[i] >> bitShift
			if i > 0 {
				v |= tmp[i-1] << (8 - bitShift)
			}
			tmp[i] = v
		}
	}

	out := New(len(x.b))
	copy(out.b[byteShift:], tmp)

	return out
}

// Uint64 returns the trailing 8 bytes as an unsigned value.
func (x Buffer) Uint64() uint64 {
	return binary.BigEndian.Uint64(x.trailing(8))
}

// Uint32 returns the trailing 4 bytes as an unsigned value.
func (x Buffer) Uint32() uint32 {
	return binary.BigEndian.Uint32(x.trailing(4))
}

// Uint16 returns the trailing 2 bytes as an unsigned value.
func (x Buffer) Uint16() uint16 {
	return binary.BigEndian.Uint16(x.trailing(2))
}

// Uint8 returns the trailing byte.
func (x Buffer) Uint8() uint8 {
	return x.trailing(1)[0]
}

// trailing returns the last n bytes, zero-extended when the buffer is shorter.
func (x Buffer) trailing(n int) []byte {
	if len(x.b) >= n {
		return x.b[len(x.b)-n:]
	}

	out := make([]byte, n)
	alignRight(out, x.b)

	return out
}

// alignRight copies src into dst so that their last bytes line up.
func alignRight(dst, src []byte) {
	if len(src) >= len(dst) {
		copy(dst, src[len(src)-len(dst):])
		return
	}
	copy(dst[len(dst)-len(src):], src)
}
