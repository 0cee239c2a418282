package bigbit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromIntegers(t *testing.T) {
	require.Equal(t, []byte{0xFF}, FromInt8(-1).Bytes())
	require.Equal(t, []byte{0x80, 0x00}, FromInt16(math.MinInt16).Bytes())
	require.Equal(t, []byte{0x00, 0x00, 0x18, 0x2B}, FromInt32(6187).Bytes())
	require.Equal(t, []byte{0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, FromInt64(math.MaxInt64).Bytes())
	require.Equal(t, 8, FromUint64(1).Len())
	require.Equal(t, 64, FromUint64(1).Bits())
}

func TestFromBytes_Copies(t *testing.T) {
	src := []byte{0x01, 0x02}
	x := FromBytes(src)
	src[0] = 0xFF

	require.Equal(t, []byte{0x01, 0x02}, x.Bytes())
}

func TestBitLength(t *testing.T) {
	tests := []struct {
		name string
		in   Buffer
		want int
	}{
		{"zero", FromUint64(0), 0},
		{"one", FromUint64(1), 1},
		{"byte boundary", FromUint64(0x80), 8},
		{"next byte", FromUint64(0x100), 9},
		{"6187", FromInt32(6187), 13},
		{"max int64", FromInt64(math.MaxInt64), 63},
		{"all ones", FromUint64(math.MaxUint64), 64},
		{"empty", New(0), 0},
		{"wide", FromBytes([]byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}), 57},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.BitLength())
		})
	}
}

func TestWithLength(t *testing.T) {
	x := FromBytes([]byte{0x12, 0x34})

	require.Equal(t, []byte{0x00, 0x00, 0x12, 0x34}, x.WithLength(4).Bytes())
	require.Equal(t, []byte{0x34}, x.WithLength(1).Bytes())
	require.Equal(t, []byte{0x12, 0x34}, x.WithLength(2).Bytes())
}

func TestOrAnd_PreserveLength(t *testing.T) {
	x := FromBytes([]byte{0xF0, 0x0F})
	short := FromBytes([]byte{0xFF})
	long := FromBytes([]byte{0xAA, 0x01, 0x10})

	require.Equal(t, []byte{0xF0, 0xFF}, x.Or(short).Bytes())
	require.Equal(t, []byte{0x00, 0x0F}, x.And(short).Bytes())
	require.Equal(t, []byte{0xF1, 0x1F}, x.Or(long).Bytes())
	require.Equal(t, []byte{0x00, 0x00}, x.And(long).Bytes())

	require.Equal(t, x.Len(), x.Or(long).Len())
	require.Equal(t, x.Len(), x.And(short).Len())
}

func TestOrAnd_Commutative(t *testing.T) {
	values := []uint64{0, 1, 0xFF, 0x8000_0000_0000_0001, 0x0123_4567_89AB_CDEF, math.MaxUint64}
	for _, a := range values {
		for _, b := range values {
			x, y := FromUint64(a), FromUint64(b)
			require.True(t, x.Or(y).Equal(y.Or(x)), "or %x %x", a, b)
			require.True(t, x.And(y).Equal(y.And(x)), "and %x %x", a, b)
			require.Equal(t, a|b, x.Or(y).Uint64())
			require.Equal(t, a&b, x.And(y).Uint64())
		}
	}
}

func TestOr_DoesNotModifyReceiver(t *testing.T) {
	x := FromBytes([]byte{0x01})
	_ = x.Or(FromBytes([]byte{0xF0}))

	require.Equal(t, []byte{0x01}, x.Bytes())
}

func TestShiftLeft_CarriesAcrossBytes(t *testing.T) {
	x := FromBytes([]byte{0x00, 0x01, 0x80})

	require.Equal(t, []byte{0x00, 0x03, 0x00}, x.ShiftLeft(1).Bytes())
	require.Equal(t, []byte{0x01, 0x80, 0x00}, x.ShiftLeft(8).Bytes())
	require.Equal(t, []byte{0x06, 0x00, 0x00}, x.ShiftLeft(10).Bytes())
	require.Equal(t, []byte{0x00, 0x00, 0x00}, x.ShiftLeft(24).Bytes())
	require.Equal(t, []byte{0x00, 0x00, 0x00}, x.ShiftLeft(100).Bytes())
}

func TestShiftRight_CarriesAcrossBytes(t *testing.T) {
	x := FromBytes([]byte{0x01, 0x80, 0x00})

	require.Equal(t, []byte{0x00, 0xC0, 0x00}, x.ShiftRight(1).Bytes())
	require.Equal(t, []byte{0x00, 0x01, 0x80}, x.ShiftRight(8).Bytes())
	require.Equal(t, []byte{0x00, 0x00, 0x60}, x.ShiftRight(10).Bytes())
	require.Equal(t, []byte{0x00, 0x00, 0x00}, x.ShiftRight(24).Bytes())
}

func TestShift_NegativeAmount(t *testing.T) {
	x := FromUint64(0x10)

	require.Equal(t, uint64(0x08), x.ShiftLeft(-1).Uint64())
	require.Equal(t, uint64(0x20), x.ShiftRight(-1).Uint64())
}

func TestShift_MatchesUint64(t *testing.T) {
	values := []uint64{1, 0x5A, 0x0123_4567_89AB_CDEF, math.MaxUint64}
	for _, v := range values {
		for n := 0; n < 64; n++ {
			require.Equal(t, v<<n, FromUint64(v).ShiftLeft(n).Uint64(), "v=%x n=%d", v, n)
			require.Equal(t, v>>n, FromUint64(v).ShiftRight(n).Uint64(), "v=%x n=%d", v, n)
		}
	}
}

func TestShiftLeftThenRight_RestoresValue(t *testing.T) {
	values := []uint64{1, 6187, 0x7F, 0x00FF_FFFF, 1 << 40}
	for _, v := range values {
		x := FromUint64(v)
		room := x.Bits() - x.BitLength()
		for n := 0; n <= room; n++ {
			require.True(t, x.ShiftLeft(n).ShiftRight(n).Equal(x), "v=%x n=%d", v, n)
		}
	}
}

func TestShift_OddLengths(t *testing.T) {
	x := FromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xAB})

	shifted := x.ShiftLeft(61)
	require.Equal(t, 9, shifted.Len())
	require.Equal(t, 69, shifted.BitLength())
	require.True(t, shifted.ShiftRight(61).Equal(x))
}

func TestNarrowingValues(t *testing.T) {
	x := FromBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09})

	require.Equal(t, uint64(0x0203040506070809), x.Uint64())
	require.Equal(t, uint32(0x06070809), x.Uint32())
	require.Equal(t, uint16(0x0809), x.Uint16())
	require.Equal(t, uint8(0x09), x.Uint8())
}

func TestWideningValues(t *testing.T) {
	x := FromBytes([]byte{0xAB, 0xCD})

	require.Equal(t, uint64(0xABCD), x.Uint64())
	require.Equal(t, uint32(0xABCD), x.Uint32())
	require.Equal(t, uint8(0xCD), x.Uint8())
	require.Equal(t, uint64(0), New(0).Uint64())
}

func TestIsZeroAndString(t *testing.T) {
	require.True(t, New(4).IsZero())
	require.False(t, FromInt8(1).IsZero())
	require.Equal(t, "00182b", FromInt32(6187).WithLength(3).String())
}

func TestNew_NegativePanics(t *testing.T) {
	require.Panics(t, func() { New(-1) })
}

func BenchmarkShiftLeft(b *testing.B) {
	x := FromBytes([]byte{0x00, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = x.ShiftLeft(13)
	}
}
