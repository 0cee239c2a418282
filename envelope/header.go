package envelope

import (
	"fmt"

	"github.com/arloliu/storebuf/bitflag"
	"github.com/arloliu/storebuf/endian"
	"github.com/arloliu/storebuf/errs"
	"github.com/arloliu/storebuf/format"
)

const (
	// Magic identifies a storebuf envelope ("SB").
	Magic uint16 = 0x5342
	// Version is the only header version this package writes and reads.
	Version uint8 = 1
	// HeaderSize is the fixed header length in bytes.
	HeaderSize = 16
)

// Header flags.
const (
	// FlagCompressedStrings marks payloads written through store.Compressed.
	FlagCompressedStrings bitflag.Flag = 0
	// FlagLittleEndian marks byte-aligned payloads written little-endian.
	FlagLittleEndian bitflag.Flag = 1
	// FlagStrictReads records that the writer expects strict string reads.
	FlagStrictReads bitflag.Flag = 2
)

// FlagNames names the header flags for display.
var FlagNames = bitflag.Names{
	FlagCompressedStrings: "compressed-strings",
	FlagLittleEndian:      "little-endian",
	FlagStrictReads:       "strict-reads",
}

// Header describes a sealed payload.
type Header struct {
	Version       uint8
	Codec         format.CodecType
	Compression   format.CompressionType
	Flags         bitflag.Register
	PayloadLength uint32
	Checksum      uint32
}

// NewHeader creates a header for the current version. Length and checksum
// are filled in by Seal.
func NewHeader(codec format.CodecType, compression format.CompressionType) Header {
	h := Header{
		Version:     Version,
		Codec:       codec,
		Compression: compression,
	}
	if compression != format.CompressionNone {
		h.Flags = h.Flags.Set(FlagCompressedStrings, true)
	}

	return h
}

// Has reports whether flag f is set.
func (h Header) Has(f bitflag.Flag) bool {
	return h.Flags.Get(f)
}

// With returns a copy of h with flag f set to v.
func (h Header) With(f bitflag.Flag, v bool) Header {
	h.Flags = h.Flags.Set(f, v)
	return h
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetBigEndianEngine()

	engine.PutUint16(b[0:2], Magic)
	b[2] = h.Version
	b[3] = uint8(h.Codec)
	b[4] = uint8(h.Compression)
	b[5] = h.Flags.Byte()
	engine.PutUint32(b[8:12], h.PayloadLength)
	engine.PutUint32(b[12:16], h.Checksum)

	return b
}

// Parse parses a header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	engine := endian.GetBigEndianEngine()
	if magic := engine.Uint16(data[0:2]); magic != Magic {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagic, magic)
	}

	h.Version = data[2]
	h.Codec = format.CodecType(data[3])
	h.Compression = format.CompressionType(data[4])
	h.Flags = bitflag.Register(data[5])
	h.PayloadLength = engine.Uint32(data[8:12])
	h.Checksum = engine.Uint32(data[12:16])

	return h.Validate()
}

// Validate checks the version, codec and compression fields.
func (h Header) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}
	if !h.Codec.IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCodecType, h.Codec)
	}
	if h.Compression != 0 && !h.Compression.IsValid() {
		return fmt.Errorf("invalid compression type: %d", h.Compression)
	}

	return nil
}

// String renders the header for diagnostics.
func (h Header) String() string {
	compression := h.Compression.String()
	if h.Compression == 0 {
		compression = "Custom"
	}

	return fmt.Sprintf("v%d codec=%s compression=%s flags=%s length=%d checksum=0x%08X",
		h.Version, h.Codec, compression, h.Flags.Describe(FlagNames), h.PayloadLength, h.Checksum)
}

// ParseHeader parses the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, want at least %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	var h Header
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
