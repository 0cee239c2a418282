package format

import "fmt"

type (
	CodecType       uint8
	CompressionType uint8
)

const (
	CodecByteAligned CodecType = 0x1 // CodecByteAligned stores every primitive in whole big-endian bytes.
	CodecVarWidth    CodecType = 0x2 // CodecVarWidth stores integers and lengths as continuation-bit varints.
	CodecBitPacked   CodecType = 0x3 // CodecBitPacked stores every primitive in the minimum number of bits.

	CompressionNone    CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd    CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionDeflate CompressionType = 0x5 // CompressionDeflate represents raw deflate compression.
)

func (c CodecType) String() string {
	switch c {
	case CodecByteAligned:
		return "ByteAligned"
	case CodecVarWidth:
		return "VarWidth"
	case CodecBitPacked:
		return "BitPacked"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c names a known codec.
func (c CodecType) IsValid() bool {
	return c >= CodecByteAligned && c <= CodecBitPacked
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionDeflate:
		return "Deflate"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c names a known compression algorithm.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionDeflate
}

// ParseCodecType parses the case-sensitive name returned by CodecType.String.
func ParseCodecType(name string) (CodecType, error) {
	for _, c := range []CodecType{CodecByteAligned, CodecVarWidth, CodecBitPacked} {
		if c.String() == name {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown codec type: %q", name)
}

// ParseCompressionType parses the case-sensitive name returned by CompressionType.String.
func ParseCompressionType(name string) (CompressionType, error) {
	for c := CompressionNone; c <= CompressionDeflate; c++ {
		if c.String() == name {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown compression type: %q", name)
}
