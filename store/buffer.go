package store

import (
	"fmt"
	"io"

	"github.com/arloliu/storebuf/errs"
)

// Buffer is the contract shared by every codec in this package.
//
// A Buffer owns a growable byte slice, a write cursor (Size) and a read
// cursor. Values are read back in exactly the order they were written;
// the wire layout of each primitive is codec specific, so bytes produced by
// one codec can only be decoded by the same codec.
//
// A Buffer is not safe for concurrent use.
type Buffer interface {
	WriteBool(v bool) error
	WriteInt8(v int8) error
	WriteInt16(v int16) error
	WriteInt32(v int32) error
	WriteInt64(v int64) error
	// WriteString writes a non-null string.
	WriteString(v string) error
	// WriteNullableString writes v, or the codec's null marker when v is nil.
	WriteNullableString(v *string) error

	ReadBool() (bool, error)
	ReadInt8() (int8, error)
	ReadInt16() (int16, error)
	ReadInt32() (int32, error)
	ReadInt64() (int64, error)
	// ReadString reads a string; a null string reads as "".
	ReadString() (string, error)
	// ReadNullableString reads a string, returning nil for the null marker.
	ReadNullableString() (*string, error)

	// Size returns the number of bytes written so far.
	Size() int
	// IsEmpty reports whether nothing has been written.
	IsEmpty() bool
	// Bytes returns a copy of the written bytes, trimmed to Size.
	Bytes() []byte
	// Base64 returns Bytes encoded with standard, padded base64.
	Base64() string
	// WriteTo writes the written bytes to w without copying them first.
	WriteTo(w io.Writer) (int64, error)
	// Truncate discards everything after the first n bytes.
	Truncate(n int) error
	// Reset empties the buffer and rewinds both cursors.
	Reset()
	// Finish releases pooled memory. The buffer must not be used afterwards.
	Finish()
}

// Record is implemented by any type that can serialize itself through a
// Buffer. Encode and Decode must touch the buffer in the same order.
type Record interface {
	Encode(b Buffer) error
	Decode(b Buffer) error
}

// WriteRecord writes r through b.
func WriteRecord(b Buffer, r Record) error {
	return r.Encode(b)
}

// ReadRecord fills r from b.
func ReadRecord(b Buffer, r Record) error {
	return r.Decode(b)
}

// Write writes v using the primitive that matches its dynamic type.
//
// Supported types are bool, int8, uint8, int16, int32, int, int64, string,
// *string and Record. int is written as an int64. Any other type returns
// errs.ErrUnsupportedOperation.
func Write(b Buffer, v any) error {
	switch x := v.(type) {
	case bool:
		return b.WriteBool(x)
	case int8:
		return b.WriteInt8(x)
	case uint8:
		return b.WriteInt8(int8(x)) //nolint:gosec
	case int16:
		return b.WriteInt16(x)
	case int32:
		return b.WriteInt32(x)
	case int:
		return b.WriteInt64(int64(x))
	case int64:
		return b.WriteInt64(x)
	case string:
		return b.WriteString(x)
	case *string:
		return b.WriteNullableString(x)
	case Record:
		return WriteRecord(b, x)
	default:
		return fmt.Errorf("%w: cannot write value of type %T", errs.ErrUnsupportedOperation, v)
	}
}

// WriteAll writes each value with Write and stops at the first error.
func WriteAll(b Buffer, values ...any) error {
	for i, v := range values {
		if err := Write(b, v); err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
	}

	return nil
}
