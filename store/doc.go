// Package store provides interchangeable binary codecs that write primitive
// values and records into a single growable byte buffer and read them back
// in the same order.
//
// # Codecs
//
// All codecs implement Buffer and differ only in wire layout:
//   - ByteAligned: fixed-width primitives in whole bytes (big-endian by default)
//   - VarWidth: like ByteAligned, but int16/int32/int64 and string lengths are varints
//   - BitPacked: every primitive in the fewest bits needed for its magnitude
//   - Compressed: wraps any Buffer and compresses strings
//
// The layouts are mutually incompatible: bytes written by one codec can only
// be read by the same codec (with the same options).
//
// # Writing and Reading
//
//	buf, err := store.New(format.CodecBitPacked)
//	if err != nil {
//	    return err
//	}
//	defer buf.Finish()
//
//	_ = buf.WriteBool(true)
//	_ = buf.WriteInt32(-6187)
//	_ = buf.WriteString("hello")
//	encoded := buf.Base64()
//
//	in, err := store.NewFromBase64(format.CodecBitPacked, encoded)
//	ok, _ := in.ReadBool()
//	n, _ := in.ReadInt32()
//	s, _ := in.ReadString()
//
// # Records
//
// Any type implementing Record can be written with WriteRecord or Write and
// grouped in a RecordList:
//
//	type Person struct {
//	    Name string
//	    Age  int8
//	}
//
//	func (p *Person) Encode(b store.Buffer) error {
//	    if err := b.WriteString(p.Name); err != nil {
//	        return err
//	    }
//	    return b.WriteInt8(p.Age)
//	}
//
//	func (p *Person) Decode(b store.Buffer) (err error) {
//	    if p.Name, err = b.ReadString(); err != nil {
//	        return err
//	    }
//	    p.Age, err = b.ReadInt8()
//	    return err
//	}
//
//	people := store.NewRecordList(store.Factory[Person]())
//	err := people.Decode(buf)
//
// # Truncated Input
//
// Reading a primitive past the end of the buffer returns
// errs.ErrBufferUnderrun. The byte-aligned codecs keep a lenient mode for
// strings whose length or body runs past the end: the read yields "" and is
// logged at Warn. WithStrictReads turns this into errs.ErrTruncatedData.
//
// # Thread Safety
//
// Buffers are not safe for concurrent use. Finish returns pooled memory; a
// buffer must not be used after Finish.
package store
