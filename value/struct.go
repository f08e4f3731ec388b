package value

import "iter"

// Field is a single key/value pair of a Struct.
type Field struct {
	Key   string
	Value Value
}

// F is shorthand for Field{Key: key, Value: v}.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// Struct is an ordered mapping from string keys to values.
//
// Keys are unique. Iteration, String and MarshalJSON follow insertion order;
// Equal ignores it. A nil *Struct behaves like an empty struct for all read
// operations.
type Struct struct {
	keys   []string
	fields map[string]Value
}

// NewStruct creates a struct from fields. A repeated key keeps the position
// of its first occurrence and the value of its last.
func NewStruct(fields ...Field) *Struct {
	s := &Struct{
		keys:   make([]string, 0, len(fields)),
		fields: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		s.Set(f.Key, f.Value)
	}
	return s
}

// Set stores v under key. It is meant for building a struct before it is
// shared; an existing key keeps its position.
//
// The zero Struct is ready for Set. Like a nil map, a nil *Struct can be read
// but not written; Set panics on it.
func (s *Struct) Set(key string, v Value) {
	if s.fields == nil {
		s.fields = make(map[string]Value)
	}
	if _, ok := s.fields[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.fields[key] = v
}

// Get returns the value stored under key.
func (s *Struct) Get(key string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Struct) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the keys in insertion order.
func (s *Struct) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// All returns an iterator over the fields in insertion order.
func (s *Struct) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if s == nil {
			return
		}
		for _, k := range s.keys {
			if !yield(k, s.fields[k]) {
				return
			}
		}
	}
}

// Equal reports whether s and other hold the same keys with equal values.
func (s *Struct) Equal(other *Struct) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k, v := range s.All() {
		ov, ok := other.Get(k)
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
