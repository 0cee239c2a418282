package store

import (
	"math"
	"math/bits"
)

// Width is the declared bit width of an integer primitive.
type Width uint8

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// NumberProfile describes how the bit-packed codec encodes integers of one width.
//
// A value is written as an optional sign bit, a HeaderBits-wide count of
// magnitude bits, then that many magnitude bits. A count of at least
// MaxMagnitudeBits is a sentinel with no magnitude bits following.
type NumberProfile struct {
	Width            Width
	HeaderBits       int
	MaxMagnitudeBits int
	Signed           bool
	// Min is the width's minimum value, encoded as a negative zero.
	Min int64
	// Max is the largest magnitude a decoded value may carry.
	Max uint64
}

// index maps 8/16/32/64 to 0..3.
func (w Width) index() int {
	return bits.TrailingZeros8(uint8(w)) - 3
}

var profiles = [...]NumberProfile{
	{Width: Width8, HeaderBits: 4, MaxMagnitudeBits: 8, Signed: true, Min: math.MinInt8, Max: math.MaxInt8},
	{Width: Width16, HeaderBits: 4, MaxMagnitudeBits: 16, Signed: true, Min: math.MinInt16, Max: math.MaxInt16},
	{Width: Width32, HeaderBits: 5, MaxMagnitudeBits: 32, Signed: true, Min: math.MinInt32, Max: math.MaxInt32},
	{Width: Width64, HeaderBits: 6, MaxMagnitudeBits: 64, Signed: true, Min: math.MinInt64, Max: math.MaxInt64},
}

// lengthProfile encodes non-negative counts such as string lengths.
var lengthProfile = NumberProfile{
	Width:            Width32,
	HeaderBits:       5,
	MaxMagnitudeBits: 32,
	Min:              0,
	Max:              math.MaxInt32,
}

// ProfileFor returns the signed profile for w. It panics for any other width.
func ProfileFor(w Width) NumberProfile {
	switch w {
	case Width8, Width16, Width32, Width64:
		return profiles[w.index()]
	default:
		panic("store: unsupported integer width")
	}
}

// LengthProfile returns the unsigned profile used for lengths.
func LengthProfile() NumberProfile {
	return lengthProfile
}

// magnitude returns |v|, with the width's minimum mapped to 0.
func (p *NumberProfile) magnitude(v int64) uint64 {
	switch {
	case p.Signed && v == p.Min:
		return 0
	case v < 0:
		return uint64(-v)
	default:
		return uint64(v)
	}
}
