// Package bitflag provides an 8-bit register of named boolean flags that
// can be written through any store.Buffer as a single int8.
package bitflag

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/arloliu/storebuf/store"
)

// MaxFlags is the number of flags a Register holds.
const MaxFlags = 8

// Flag is a bit position in a Register, 0 being the least significant bit.
type Flag uint8

// Names assigns display names to flag positions. Empty names render as bitN.
type Names [MaxFlags]string

// Register is a set of up to eight boolean flags packed into one byte.
type Register uint8

var _ store.Record = (*Register)(nil)

// Get reports whether f is set.
func (r Register) Get(f Flag) bool {
	return r&mask(f) != 0
}

// Set returns a copy of r with f set to v.
func (r Register) Set(f Flag, v bool) Register {
	if v {
		return r | mask(f)
	}

	return r &^ mask(f)
}

// Byte returns the packed register.
func (r Register) Byte() byte {
	return byte(r)
}

// Count returns the number of set flags.
func (r Register) Count() int {
	return bits.OnesCount8(uint8(r))
}

// Equal reports whether both registers hold the same flags.
func (r Register) Equal(o Register) bool {
	return r == o
}

// String renders the set flags as "[bit0|bit3]".
func (r Register) String() string {
	return r.Describe(Names{})
}

// Describe renders the set flags using names, e.g. "[compressed|strict]".
func (r Register) Describe(names Names) string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for f := range Flag(MaxFlags) {
		if !r.Get(f) {
			continue
		}
		if !first {
			sb.WriteByte('|')
		}
		first = false

		if name := names[f]; name != "" {
			sb.WriteString(name)
		} else {
			sb.WriteString("bit")
			sb.WriteString(strconv.Itoa(int(f)))
		}
	}
	sb.WriteByte(']')

	return sb.String()
}

// Encode writes the register as one int8.
func (r *Register) Encode(b store.Buffer) error {
	return b.WriteInt8(int8(*r)) //nolint:gosec
}

// Decode reads a register written by Encode.
func (r *Register) Decode(b store.Buffer) error {
	v, err := b.ReadInt8()
	if err != nil {
		return err
	}
	*r = Register(v) //nolint:gosec

	return nil
}

func mask(f Flag) Register {
	if f >= MaxFlags {
		panic("bitflag: flag " + strconv.Itoa(int(f)) + " out of range")
	}

	return 1 << f
}
