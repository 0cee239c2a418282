package envelope

import (
	"fmt"
	"math"

	"github.com/arloliu/storebuf/errs"
	"github.com/arloliu/storebuf/internal/hash"
)

// Seal validates h, records the payload length and checksum and returns the
// header followed by a copy of payload.
func Seal(h Header, payload []byte) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes", errs.ErrValueOutOfRange, len(payload))
	}

	h.PayloadLength = uint32(len(payload)) //nolint:gosec
	h.Checksum = hash.Checksum32(payload)

	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, h.Bytes()...)
	out = append(out, payload...)

	return out, nil
}

// Open parses the header of data and returns it with the payload. The
// payload aliases data.
func Open(data []byte) (Header, []byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}

	payload := data[HeaderSize:]
	if uint64(len(payload)) != uint64(h.PayloadLength) {
		return Header{}, nil, fmt.Errorf("%w: header says %d bytes, got %d",
			errs.ErrPayloadLengthMismatch, h.PayloadLength, len(payload))
	}
	if sum := hash.Checksum32(payload); sum != h.Checksum {
		return Header{}, nil, fmt.Errorf("%w: header 0x%08X, payload 0x%08X", errs.ErrChecksumMismatch, h.Checksum, sum)
	}

	return h, payload, nil
}
