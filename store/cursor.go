package store

// BitCursor addresses a single bit: Byte is the byte index and Bit the
// offset within that byte, 0 being the most significant bit.
type BitCursor struct {
	Byte int
	Bit  int
}

// Advance returns the cursor moved forward by n bits.
func (c BitCursor) Advance(n int) BitCursor {
	total := c.Bit + n

	return BitCursor{Byte: c.Byte + total/8, Bit: total % 8}
}

// Offset returns the absolute bit offset.
func (c BitCursor) Offset() int {
	return c.Byte*8 + c.Bit
}

// Span returns the number of bytes touched up to the cursor, counting a
// partially filled byte.
func (c BitCursor) Span() int {
	if c.Bit > 0 {
		return c.Byte + 1
	}

	return c.Byte
}
