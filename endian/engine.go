// Package endian provides byte order engines for the byte-aligned codecs.
//
// An EndianEngine combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary, so a codec can both patch bytes in place and append new
// ones through a single value.
//
// # Basic Usage
//
// Storebuf wire formats are big-endian unless configured otherwise:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint32(buf, 42)
//
// Little-endian is available for interoperability with hosts that already
// store their data that way:
//
//	engine := endian.GetLittleEndianEngine()
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// engines are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.BigEndian and binary.LittleEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	// The first byte in memory is 0x01 only on big-endian hosts.
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// IsNative reports whether engine matches the host byte order.
func IsNative(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetBigEndianEngine returns the big-endian engine, the storebuf default.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
