// Package envelope wraps an encoded payload in a small self-describing
// header so that a reader can tell which codec and options produced it.
//
// # Layout
//
// The header is 16 bytes, big-endian:
//
//	offset  size  field
//	0       2     magic 0x5342 ("SB")
//	2       1     version
//	3       1     codec type (format.CodecType)
//	4       1     compression type (format.CompressionType, 0 for custom)
//	5       1     flags (bitflag.Register)
//	6       2     reserved, zero
//	8       4     payload length
//	12      4     payload checksum (xxHash64 folded to 32 bits)
//
// The payload follows the header directly.
//
// # Usage
//
//	sealed, err := envelope.Seal(envelope.NewHeader(format.CodecVarWidth, format.CompressionNone), payload)
//
//	header, payload, err := envelope.Open(sealed)
//	if errors.Is(err, errs.ErrChecksumMismatch) {
//	    // corrupted in transit
//	}
package envelope
