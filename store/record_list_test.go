package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/storebuf/errs"
	"github.com/arloliu/storebuf/format"
)

type person struct {
	Name     string
	Nickname *string
	Age      int8
	Active   bool
	Score    int64
}

func (p *person) Encode(b Buffer) error {
	return WriteAll(b, p.Name, p.Nickname, p.Age, p.Active, p.Score)
}

func (p *person) Decode(b Buffer) (err error) {
	if p.Name, err = b.ReadString(); err != nil {
		return err
	}
	if p.Nickname, err = b.ReadNullableString(); err != nil {
		return err
	}
	if p.Age, err = b.ReadInt8(); err != nil {
		return err
	}
	if p.Active, err = b.ReadBool(); err != nil {
		return err
	}
	p.Score, err = b.ReadInt64()

	return err
}

type team struct {
	Name    string
	Members *RecordList[*person]
}

func (tm *team) Encode(b Buffer) error {
	if err := b.WriteString(tm.Name); err != nil {
		return err
	}

	return WriteRecord(b, tm.Members)
}

func (tm *team) Decode(b Buffer) (err error) {
	if tm.Name, err = b.ReadString(); err != nil {
		return err
	}
	tm.Members = NewRecordList(Factory[person]())

	return ReadRecord(b, tm.Members)
}

func samplePeople() []*person {
	nick := "bobby"

	return []*person{
		{Name: "Alice", Age: 34, Active: true, Score: 1 << 40},
		{Name: "Bob", Nickname: &nick, Age: -1, Score: -6187},
		{Name: "Zoë 😀", Age: 127, Active: true},
	}
}

func TestRecordList_RoundTrip(t *testing.T) {
	for _, tc := range allCodecs() {
		t.Run(tc.name, func(t *testing.T) {
			for _, n := range []int{0, 1, 3} {
				b, err := New(tc.codec, tc.opts...)
				require.NoError(t, err)

				src := NewRecordList[*person](nil, samplePeople()[:n]...)
				require.NoError(t, src.Encode(b))

				dst := NewRecordList(Factory[person]())
				require.NoError(t, dst.Decode(reopen(t, tc, b)))
				require.Equal(t, src.Items(), dst.Items())
				require.Equal(t, n, dst.Len())
				b.Finish()
			}
		})
	}
}

func TestRecordList_Base64Reconstruction(t *testing.T) {
	b, err := New(format.CodecBitPacked)
	require.NoError(t, err)
	defer b.Finish()

	require.NoError(t, Write(b, NewRecordList[*person](nil, samplePeople()...)))
	encoded := b.Base64()

	in, err := NewFromBase64(format.CodecBitPacked, encoded)
	require.NoError(t, err)

	people := NewRecordList(Factory[person]())
	require.NoError(t, ReadRecord(in, people))
	require.Equal(t, 3, people.Len())
	require.Equal(t, "Alice", people.At(0).Name)
	require.Equal(t, "bobby", *people.At(1).Nickname)
	require.Equal(t, int64(-6187), people.At(1).Score)
	require.Equal(t, "Zoë 😀", people.At(2).Name)
}

func TestRecordList_Nested(t *testing.T) {
	b, err := New(format.CodecVarWidth)
	require.NoError(t, err)
	defer b.Finish()

	teams := NewRecordList[*team](nil,
		&team{Name: "red", Members: NewRecordList[*person](nil, samplePeople()[:2]...)},
		&team{Name: "blue", Members: NewRecordList[*person](nil)},
	)
	require.NoError(t, teams.Encode(b))

	got := NewRecordList(Factory[team]())
	require.NoError(t, got.Decode(b))
	require.Equal(t, 2, got.Len())
	require.Equal(t, "red", got.At(0).Name)
	require.Equal(t, 2, got.At(0).Members.Len())
	require.Equal(t, "Bob", got.At(0).Members.At(1).Name)
	require.Equal(t, 0, got.At(1).Members.Len())
}

func TestRecordList_DecodeAbortsAndKeepsItems(t *testing.T) {
	b, err := New(format.CodecByteAligned)
	require.NoError(t, err)
	defer b.Finish()

	require.NoError(t, NewRecordList[*person](nil, samplePeople()...).Encode(b))
	data := b.Bytes()

	existing := &person{Name: "kept"}

	t.Run("factory error", func(t *testing.T) {
		errFactory := errors.New("no more people")
		calls := 0
		list := NewRecordList(func() (*person, error) {
			calls++
			if calls == 2 {
				return nil, errFactory
			}

			return &person{}, nil
		}, existing)

		in, err := NewFromBytes(format.CodecByteAligned, data)
		require.NoError(t, err)

		err = list.Decode(in)
		require.ErrorIs(t, err, errFactory)
		require.Equal(t, []*person{existing}, list.Items())
	})

	t.Run("element error", func(t *testing.T) {
		list := NewRecordList(Factory[person](), existing)

		in, err := NewFromBytes(format.CodecByteAligned, data[:len(data)-4], WithStrictReads())
		require.NoError(t, err)

		err = list.Decode(in)
		require.ErrorIs(t, err, errs.ErrBufferUnderrun)
		require.Equal(t, []*person{existing}, list.Items())
	})

	t.Run("negative count", func(t *testing.T) {
		list := NewRecordList(Factory[person](), existing)

		in, err := NewFromBytes(format.CodecByteAligned, []byte{0xFF, 0xFF, 0xFF, 0xFE})
		require.NoError(t, err)

		require.ErrorIs(t, list.Decode(in), errs.ErrMalformedCount)
		require.Equal(t, []*person{existing}, list.Items())
	})

	t.Run("no factory", func(t *testing.T) {
		list := NewRecordList[*person](nil)

		in, err := NewFromBytes(format.CodecByteAligned, data)
		require.NoError(t, err)

		require.ErrorIs(t, list.Decode(in), errs.ErrUnsupportedOperation)
	})
}

func TestRecordList_DecodeWith(t *testing.T) {
	b, err := New(format.CodecByteAligned)
	require.NoError(t, err)
	defer b.Finish()

	require.NoError(t, NewRecordList[*person](nil, samplePeople()[:1]...).Encode(b))

	list := NewRecordList[*person](nil)
	require.NoError(t, list.DecodeWith(b, func() (*person, error) { return &person{}, nil }))
	require.Equal(t, "Alice", list.At(0).Name)
}

func TestRecordList_AppendAndIterate(t *testing.T) {
	list := NewRecordList[*person](nil)
	list.Append(samplePeople()...)
	require.Equal(t, 3, list.Len())

	var names []string
	for i, p := range list.All() {
		if i == 2 {
			break
		}
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"Alice", "Bob"}, names)
}
