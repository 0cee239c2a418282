package compress

import (
	"fmt"

	"github.com/arloliu/storebuf/format"
)

// Compressor compresses a complete payload in one call.
//
// In storebuf the payload is the UTF-8 body of a single string written
// through store.Compressed, so inputs are usually small (tens of bytes to a
// few kilobytes) and highly repetitive.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller, except for
	//     NoOpCompressor which returns the input as-is
	//   - Input slice is not modified
	//   - Empty input yields a nil result
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// Example:
//
//	decompressor := NewDeflateCompressor()
//	original, err := decompressor.Decompress(payload)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Thread Safety: all implementations in this package are safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with an incompatible algorithm
	//
	// Empty input yields a nil result.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Deflate, Zstd, S2 or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionDeflate:
		return NewDeflateCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

// builtinCodecs holds one shared instance per built-in compression type.
// The built-in codecs keep no per-call state, so sharing them is safe.
var builtinCodecs = newBuiltinCodecs()

func newBuiltinCodecs() map[format.CompressionType]Codec {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionDeflate,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	codecs := make(map[format.CompressionType]Codec, len(types))
	for _, ct := range types {
		codec, err := CreateCodec(ct, "built-in")
		if err != nil {
			panic(err)
		}
		codecs[ct] = codec
	}

	return codecs
}

// GetCodec retrieves the shared built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
