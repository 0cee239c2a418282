package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/storebuf/errs"
)

func TestVarWidth_SignedEncoding(t *testing.T) {
	tests := []struct {
		value    int64
		expected []byte
	}{
		{value: 0, expected: []byte{0x00}},
		{value: 1, expected: []byte{0x01}},
		{value: -1, expected: []byte{0x41}},
		{value: 63, expected: []byte{0x3F}},
		{value: -63, expected: []byte{0x7F}},
		{value: 64, expected: []byte{0xC0, 0x00}},
		{value: -64, expected: []byte{0xC0, 0x40}},
		{value: 300, expected: []byte{0xAC, 0x02}},
		{value: 8191, expected: []byte{0xFF, 0x3F}},
		{value: 8192, expected: []byte{0x80, 0xC0, 0x00}},
	}

	for _, tt := range tests {
		b, err := NewVarWidth()
		require.NoError(t, err)

		require.NoError(t, b.WriteInt64(tt.value))
		require.Equal(t, tt.expected, b.Bytes(), "value %d", tt.value)

		got, err := b.ReadInt64()
		require.NoError(t, err)
		require.Equal(t, tt.value, got)
		b.Finish()
	}
}

func TestVarWidth_SmallValuesTakeOneByte(t *testing.T) {
	b, err := NewVarWidth()
	require.NoError(t, err)
	defer b.Finish()

	require.NoError(t, b.WriteInt16(5))
	require.NoError(t, b.WriteInt32(-5))
	require.NoError(t, b.WriteInt64(5))
	require.Equal(t, 3, b.Size())
}

func TestVarWidth_ExtremesFitTenBytes(t *testing.T) {
	for _, v := range []int64{math.MinInt64, math.MaxInt64} {
		b, err := NewVarWidth()
		require.NoError(t, err)

		require.NoError(t, b.WriteInt64(v))
		require.Equal(t, maxVarintBytes, b.Size())

		got, err := b.ReadInt64()
		require.NoError(t, err)
		require.Equal(t, v, got)
		b.Finish()
	}
}

func TestVarWidth_Uvarint(t *testing.T) {
	b, err := NewVarWidth()
	require.NoError(t, err)
	defer b.Finish()

	require.NoError(t, b.WriteUvarint(127))
	require.NoError(t, b.WriteUvarint(128))
	require.NoError(t, b.WriteUvarint(math.MaxInt64))
	require.Equal(t, []byte{0x7F, 0x80, 0x01}, b.Bytes()[:3])

	for _, want := range []int64{127, 128, math.MaxInt64} {
		got, err := b.ReadUvarint()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	require.ErrorIs(t, b.WriteUvarint(-1), errs.ErrNegativeLength)
}

func TestVarWidth_StringLayout(t *testing.T) {
	b, err := NewVarWidth()
	require.NoError(t, err)
	defer b.Finish()

	require.NoError(t, b.WriteNullableString(nil))
	require.NoError(t, b.WriteString(""))
	require.NoError(t, b.WriteString("ab"))
	require.Equal(t, []byte{0x00, 0x01, 0x03, 'a', 'b'}, b.Bytes())
}

func TestVarWidth_MalformedVarint(t *testing.T) {
	data := make([]byte, 12)
	for i := range data {
		data[i] = 0xFF
	}

	b, err := NewVarWidthFromBytes(data)
	require.NoError(t, err)

	_, err = b.ReadInt64()
	require.ErrorIs(t, err, errs.ErrMalformedVarint)

	u, err := NewVarWidthFromBytes(data)
	require.NoError(t, err)

	_, err = u.ReadUvarint()
	require.ErrorIs(t, err, errs.ErrMalformedVarint)
}

func TestVarWidth_MalformedStringLength(t *testing.T) {
	data := make([]byte, 12)
	for i := range data {
		data[i] = 0xFF
	}

	for _, strict := range []bool{false, true} {
		var opts []Option
		if strict {
			opts = append(opts, WithStrictReads())
		}

		b, err := NewVarWidthFromBytes(data, opts...)
		require.NoError(t, err)

		s, err := b.ReadString()
		require.ErrorIs(t, err, errs.ErrMalformedVarint, "strict=%v", strict)
		require.NotErrorIs(t, err, errs.ErrTruncatedData)
		require.Empty(t, s)
	}
}

func TestVarWidth_ValueOutOfRange(t *testing.T) {
	b, err := NewVarWidth()
	require.NoError(t, err)
	defer b.Finish()

	require.NoError(t, b.WriteInt64(math.MaxInt32+1))
	require.NoError(t, b.WriteInt64(math.MinInt16-1))
	require.NoError(t, b.WriteInt64(math.MinInt32))

	_, err = b.ReadInt32()
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)

	_, err = b.ReadInt16()
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)

	v, err := b.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(math.MinInt32), v)
}

func TestVarWidth_TruncatedVarint(t *testing.T) {
	b, err := NewVarWidthFromBytes([]byte{0x80, 0x80})
	require.NoError(t, err)

	_, err = b.ReadInt32()
	require.ErrorIs(t, err, errs.ErrBufferUnderrun)
}

func TestVarWidth_LenientAndStrictStrings(t *testing.T) {
	data := []byte{0x0B, 'a'}

	logs := observeLogs(t)
	lenient, err := NewVarWidthFromBytes(data)
	require.NoError(t, err)

	s, err := lenient.ReadString()
	require.NoError(t, err)
	require.Empty(t, s)
	require.Equal(t, 0, lenient.Remaining())
	require.Equal(t, 1, logs.FilterMessage("truncated string read as empty").Len())

	strict, err := NewVarWidthFromBytes(data, WithStrictReads())
	require.NoError(t, err)

	_, err = strict.ReadString()
	require.ErrorIs(t, err, errs.ErrTruncatedData)
}

func TestVarWidth_BoolAndInt8AreByteAligned(t *testing.T) {
	b, err := NewVarWidth()
	require.NoError(t, err)
	defer b.Finish()

	require.NoError(t, b.WriteBool(true))
	require.NoError(t, b.WriteInt8(-128))
	require.Equal(t, []byte{0x01, 0x80}, b.Bytes())
}

func TestVarWidth_FromBase64(t *testing.T) {
	src, err := NewVarWidth()
	require.NoError(t, err)
	defer src.Finish()

	require.NoError(t, src.WriteInt32(-6187))
	require.NoError(t, src.WriteString("var"))

	b, err := NewVarWidthFromBase64(src.Base64())
	require.NoError(t, err)

	v, err := b.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-6187), v)

	s, err := b.ReadString()
	require.NoError(t, err)
	require.Equal(t, "var", s)
}
