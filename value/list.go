package value

import "iter"

// ListValue is an ordered sequence of values.
//
// It is a plain slice, so indexing, len and range work directly.
type ListValue []Value

// Iter returns an iterator over pointers to the items.
//
// The pointers refer to the list's own storage and must be treated as
// read-only.
func (l ListValue) Iter() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		for i := range l {
			if !yield(&l[i]) {
				return
			}
		}
	}
}

// All returns an iterator over index/value pairs.
func (l ListValue) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range l {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Len returns the number of items.
func (l ListValue) Len() int { return len(l) }

// Equal reports whether both lists hold equal items in the same order.
func (l ListValue) Equal(other ListValue) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
