// Package compress provides the compression backends of store.Compressed.
//
// store.Compressed replaces the string encoding of a wrapped codec with a
// compress-then-write pass: the UTF-8 bytes of each string are compressed,
// the compressed length is written as an int32 and the compressed bytes
// follow one by one. Which algorithm does the compressing is chosen here.
//
// # Architecture
//
// The package defines three interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): pass-through, see NoOpCompressor
//   - Deflate (format.CompressionDeflate): raw RFC 1951 stream, the default
//   - Zstd (format.CompressionZstd): best ratio on long strings
//   - S2 (format.CompressionS2): fast, Snappy-compatible blocks
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// Use GetCodec to obtain a shared built-in instance, or CreateCodec when the
// compression type comes from configuration and a descriptive error is
// wanted:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "string")
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress([]byte(text))
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool, so a single instance
// may be shared by any number of goroutines.
//
// # Choosing an Algorithm
//
// Short strings rarely shrink: every algorithm adds a few bytes of framing,
// so a 10-character string usually grows. Compression pays off for long or
// repetitive strings such as serialized documents, log lines or repeated
// identifiers. Deflate is the default because it is the most widely
// understood format; Zstd typically wins on ratio for strings of a few
// kilobytes and up.
package compress
