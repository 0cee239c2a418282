package store

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/storebuf/errs"
)

// RecordList is an ordered, encodable list of records.
//
// The wire form is the element count written with WriteInt32 followed by
// each element's own encoding. Decoding needs a factory that produces empty
// elements; RecordList is itself a Record, so lists can nest in other records.
type RecordList[T Record] struct {
	items   []T
	factory func() (T, error)
}

var _ Record = (*RecordList[Record])(nil)

// NewRecordList creates a list holding items. factory builds the empty
// elements filled in by Decode and may be nil for encode-only lists.
func NewRecordList[T Record](factory func() (T, error), items ...T) *RecordList[T] {
	return &RecordList[T]{items: items, factory: factory}
}

// Factory returns a factory for record type *T, e.g. Factory[Person]().
func Factory[T any, P interface {
	*T
	Record
}]() func() (P, error) {
	return func() (P, error) {
		return P(new(T)), nil
	}
}

// Append adds items to the end of the list.
func (l *RecordList[T]) Append(items ...T) {
	l.items = append(l.items, items...)
}

// Len returns the number of elements.
func (l *RecordList[T]) Len() int {
	return len(l.items)
}

// At returns the i-th element. It panics if i is out of range.
func (l *RecordList[T]) At(i int) T {
	return l.items[i]
}

// Items returns the underlying elements. The slice is shared with the list.
func (l *RecordList[T]) Items() []T {
	return l.items
}

// All iterates over index and element pairs.
func (l *RecordList[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Encode writes the element count and then every element.
func (l *RecordList[T]) Encode(b Buffer) error {
	if len(l.items) > math.MaxInt32 {
		return fmt.Errorf("%w: list of %d elements", errs.ErrValueOutOfRange, len(l.items))
	}
	if err := b.WriteInt32(int32(len(l.items))); err != nil { //nolint:gosec
		return fmt.Errorf("list count: %w", err)
	}

	for i, item := range l.items {
		if err := item.Encode(b); err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
	}

	return nil
}

// Decode replaces the list contents with elements read from b, using the
// factory given to NewRecordList.
func (l *RecordList[T]) Decode(b Buffer) error {
	if l.factory == nil {
		return fmt.Errorf("%w: record list has no element factory", errs.ErrUnsupportedOperation)
	}

	return l.DecodeWith(b, l.factory)
}

// DecodeWith is Decode with an explicit factory. On any error the list is
// left unchanged.
func (l *RecordList[T]) DecodeWith(b Buffer, factory func() (T, error)) error {
	n, err := b.ReadInt32()
	if err != nil {
		return fmt.Errorf("list count: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("%w: %d", errs.ErrMalformedCount, n)
	}

	items := make([]T, 0, min(int(n), b.Size()))
	for i := range n {
		item, err := factory()
		if err != nil {
			return fmt.Errorf("list element %d: construct: %w", i, err)
		}
		if err := item.Decode(b); err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
		items = append(items, item)
	}
	l.items = items

	return nil
}
