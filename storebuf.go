// Package storebuf serializes primitive values and user-defined records into
// compact binary buffers using one of several interchangeable codecs.
//
// # Codecs
//
//   - format.CodecByteAligned: fixed-width fields in whole bytes
//   - format.CodecVarWidth: varint integers and string lengths
//   - format.CodecBitPacked: every value in the fewest bits that hold it
//
// Any codec can additionally compress strings with store.WithCompression.
//
// # Basic Usage
//
//	buf, _ := storebuf.New(format.CodecBitPacked)
//	defer buf.Finish()
//
//	_ = buf.WriteInt32(-6187)
//	_ = buf.WriteString("hello")
//	encoded := buf.Base64()
//
//	in, _ := storebuf.FromBase64(format.CodecBitPacked, encoded)
//	n, _ := in.ReadInt32()
//	s, _ := in.ReadString()
//
// # Sealed Payloads
//
// Codec layouts are mutually incompatible. Seal prefixes the bytes with an
// envelope header naming the codec and options, so Open can rebuild a
// matching reader without out-of-band knowledge:
//
//	sealed, _ := storebuf.Seal(buf)
//	reader, header, err := storebuf.Open(sealed)
//
// # Persisted Values
//
// DecodeOr decodes a persisted base64 value and falls back to a default when
// the value is missing or corrupt, logging the failure instead of returning it.
//
// # Package Structure
//
// This package wraps the store, envelope and compress packages for the common
// cases. Use store directly for codec-specific APIs such as bit cursors.
package storebuf

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/storebuf/endian"
	"github.com/arloliu/storebuf/envelope"
	"github.com/arloliu/storebuf/format"
	"github.com/arloliu/storebuf/store"
)

// New creates an empty buffer of the given codec.
//
// Example:
//
//	buf, err := storebuf.New(format.CodecVarWidth, store.WithCompression(format.CompressionZstd))
func New(ct format.CodecType, opts ...store.Option) (store.Buffer, error) {
	return store.New(ct, opts...)
}

// FromBytes creates a buffer of the given codec holding a copy of data.
func FromBytes(ct format.CodecType, data []byte, opts ...store.Option) (store.Buffer, error) {
	return store.NewFromBytes(ct, data, opts...)
}

// FromBase64 creates a buffer of the given codec from standard base64 text.
func FromBase64(ct format.CodecType, s string, opts ...store.Option) (store.Buffer, error) {
	return store.NewFromBase64(ct, s, opts...)
}

// byteOrdered is implemented by the byte-aligned codecs.
type byteOrdered interface {
	Engine() endian.EndianEngine
	StrictReads() bool
}

// Describe builds the envelope header matching b's codec and options.
// Length and checksum are left zero.
func Describe(b store.Buffer) (envelope.Header, error) {
	ct, err := store.CodecOf(b)
	if err != nil {
		return envelope.Header{}, err
	}

	compression := format.CompressionNone
	inner := b
	c, wrapped := b.(*store.Compressed)
	if wrapped {
		compression = c.Compression()
		inner = c.Inner()
	}

	// The wrapper changes the string layout even when it does not compress.
	h := envelope.NewHeader(ct, compression).With(envelope.FlagCompressedStrings, wrapped)
	if bo, ok := inner.(byteOrdered); ok {
		h = h.With(envelope.FlagLittleEndian, !endian.IsBigEndian(bo.Engine()))
		h = h.With(envelope.FlagStrictReads, bo.StrictReads())
	}

	return h, nil
}

// Seal returns b's bytes prefixed with an envelope header.
func Seal(b store.Buffer) ([]byte, error) {
	h, err := Describe(b)
	if err != nil {
		return nil, err
	}

	return envelope.Seal(h, b.Bytes())
}

// Open verifies a sealed payload and returns a reader configured from its
// header. A payload flagged with envelope.FlagCompressedStrings is read
// through store.Compressed, including when its compression is None.
// opts are applied after the header-derived options; payloads sealed with a
// custom compressor need store.WithCompressor here.
func Open(data []byte, opts ...store.Option) (store.Buffer, envelope.Header, error) {
	h, payload, err := envelope.Open(data)
	if err != nil {
		return nil, envelope.Header{}, err
	}

	derived := make([]store.Option, 0, 3+len(opts))
	if h.Has(envelope.FlagLittleEndian) {
		derived = append(derived, store.WithLittleEndian())
	}
	if h.Has(envelope.FlagStrictReads) {
		derived = append(derived, store.WithStrictReads())
	}
	if h.Has(envelope.FlagCompressedStrings) && h.Compression != 0 {
		derived = append(derived, store.WithCompression(h.Compression))
	}
	derived = append(derived, opts...)

	b, err := store.NewFromBytes(h.Codec, payload, derived...)
	if err != nil {
		return nil, envelope.Header{}, err
	}

	return b, h, nil
}

// EncodeList writes items as a record list and returns the base64 text.
func EncodeList[T store.Record](ct format.CodecType, items []T, opts ...store.Option) (string, error) {
	b, err := store.New(ct, opts...)
	if err != nil {
		return "", err
	}
	defer b.Finish()

	if err := store.NewRecordList[T](nil, items...).Encode(b); err != nil {
		return "", err
	}

	return b.Base64(), nil
}

// DecodeList reads a record list written by EncodeList.
func DecodeList[T store.Record](ct format.CodecType, encoded string, factory func() (T, error), opts ...store.Option) ([]T, error) {
	b, err := store.NewFromBase64(ct, encoded, opts...)
	if err != nil {
		return nil, err
	}

	list := store.NewRecordList(factory)
	if err := list.Decode(b); err != nil {
		return nil, err
	}

	return list.Items(), nil
}

// DecodeOr decodes a persisted base64 value with decode and returns def if
// the value is empty or cannot be decoded. Failures are logged at Warn.
func DecodeOr[T any](encoded string, ct format.CodecType, decode func(store.Buffer) (T, error), def T, opts ...store.Option) T {
	if encoded == "" {
		return def
	}

	v, err := decodeBase64(encoded, ct, decode, opts)
	if err != nil {
		store.Logger().Warn("persisted value could not be decoded, using default",
			zap.Stringer("codec", ct),
			zap.Int("encoded_length", len(encoded)),
			zap.Error(err),
		)

		return def
	}

	return v
}

func decodeBase64[T any](encoded string, ct format.CodecType, decode func(store.Buffer) (T, error), opts []store.Option) (T, error) {
	var zero T

	b, err := store.NewFromBase64(ct, encoded, opts...)
	if err != nil {
		return zero, err
	}

	v, err := decode(b)
	if err != nil {
		return zero, fmt.Errorf("decode %s value: %w", ct, err)
	}

	return v, nil
}
