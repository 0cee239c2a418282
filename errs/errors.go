// Package errs defines the sentinel errors returned by storebuf packages.
//
// Errors are plain values meant to be compared with errors.Is. Call sites
// wrap them with fmt.Errorf("...: %w", err) to add context, so callers
// should never compare error strings.
package errs

import "errors"

// Programming errors. These indicate misuse of the API and are not
// recoverable by retrying with the same input.
var (
	// ErrUnsupportedOperation is returned when a codec is asked to handle a
	// value or operation it does not implement.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrInvalidCodecType is returned for an unknown format.CodecType.
	ErrInvalidCodecType = errors.New("invalid codec type")
	// ErrInvalidTruncate is returned when truncating outside [0, Size()].
	ErrInvalidTruncate = errors.New("invalid truncate size")
	// ErrNegativeLength is returned when an unsigned length encoder receives a negative value.
	ErrNegativeLength = errors.New("negative length")
	// ErrInvalidCapacity is returned for a negative initial capacity option.
	ErrInvalidCapacity = errors.New("invalid buffer capacity")
)

// Data errors. These describe malformed or truncated input.
var (
	// ErrBufferUnderrun is returned when a read would cross the logical end of the buffer.
	ErrBufferUnderrun = errors.New("buffer underrun")
	// ErrTruncatedData is returned by strict reads when a length-prefixed payload is cut short.
	ErrTruncatedData = errors.New("truncated data")
	// ErrMalformedVarint is returned when a variable-width integer is too long for its width.
	ErrMalformedVarint = errors.New("malformed varint")
	// ErrValueOutOfRange is returned when a decoded integer does not fit its target width.
	ErrValueOutOfRange = errors.New("decoded value out of range")
	// ErrMalformedCount is returned when a decoded element count is negative.
	ErrMalformedCount = errors.New("malformed element count")
	// ErrInvalidBase64 is returned when base64 input cannot be decoded.
	ErrInvalidBase64 = errors.New("invalid base64 input")
	// ErrCompressionFailure is returned when a compressed payload cannot be processed.
	ErrCompressionFailure = errors.New("compression failure")
)

// Envelope errors.
var (
	// ErrInvalidHeaderSize is returned when the data is shorter than an envelope header.
	ErrInvalidHeaderSize = errors.New("invalid envelope header size")
	// ErrInvalidMagic is returned when the envelope magic number does not match.
	ErrInvalidMagic = errors.New("invalid envelope magic number")
	// ErrUnsupportedVersion is returned for an envelope version this package cannot read.
	ErrUnsupportedVersion = errors.New("unsupported envelope version")
	// ErrPayloadLengthMismatch is returned when the payload length disagrees with the header.
	ErrPayloadLengthMismatch = errors.New("envelope payload length mismatch")
	// ErrChecksumMismatch is returned when the payload checksum does not match the header.
	ErrChecksumMismatch = errors.New("envelope checksum mismatch")
)
