package value

import "iter"

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid is the tag of the zero Value. It is read as null.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindBool represents a boolean value.
	KindBool
	// KindInteger represents a signed 64-bit integer value.
	KindInteger
	// KindDouble represents a 64-bit floating point value.
	KindDouble
	// KindString represents a string value.
	KindString
	// KindList represents an ordered list of values.
	KindList
	// KindStruct represents a mapping from string keys to values.
	KindStruct
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Value is a typed payload value.
//
// Values are immutable once constructed. Copying a Value is cheap; list and
// struct payloads are shared between copies.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	l    ListValue
	st   *Struct
}

// Null returns a null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Integer returns an int64 Value.
func Integer(v int64) Value { return Value{kind: KindInteger, i: v} }

// Double returns a float64 Value.
func Double(v float64) Value { return Value{kind: KindDouble, f: v} }

// String returns a string Value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// List returns a list Value holding vs.
func List(vs ...Value) Value { return Value{kind: KindList, l: ListValue(vs)} }

// StructValue returns a struct Value. A nil s is stored as an empty struct.
func StructValue(s *Struct) Value {
	if s == nil {
		s = NewStruct()
	}
	return Value{kind: KindStruct, st: s}
}

// Kind returns the tag of v. The zero Value reports KindInvalid.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null. Values without a tag are null too.
func (v Value) IsNull() bool { return v.kind == KindNull || v.kind == KindInvalid }

// IsBool reports whether v holds a bool.
func (v Value) IsBool() bool { return v.kind == KindBool }

// IsInteger reports whether v holds an integer.
func (v Value) IsInteger() bool { return v.kind == KindInteger }

// IsDouble reports whether v holds a double.
func (v Value) IsDouble() bool { return v.kind == KindDouble }

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.kind == KindString }

// IsList reports whether v holds a list.
func (v Value) IsList() bool { return v.kind == KindList }

// IsStruct reports whether v holds a struct.
func (v Value) IsStruct() bool { return v.kind == KindStruct }

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInteger returns the int64 value if Kind is KindInteger.
func (v Value) AsInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// AsDouble returns the float64 value if Kind is KindDouble.
func (v Value) AsDouble() (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return v.f, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsList returns the list if Kind is KindList.
//
// The returned slice shares storage with v and must not be modified.
func (v Value) AsList() (ListValue, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.l, true
}

// AsStruct returns the struct if Kind is KindStruct.
//
// The returned struct is shared with v and must not be modified.
func (v Value) AsStruct() (*Struct, bool) {
	if v.kind != KindStruct {
		return nil, false
	}
	return v.st, true
}

// TryListIter returns an iterator over the list items if v is a list.
//
// The iterator borrows the list; each call to the returned sequence starts
// from the first element again.
func (v Value) TryListIter() (iter.Seq[*Value], bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.l.Iter(), true
}

// GetValue returns the field key if v is a struct containing it.
//
// The lookup is a single level; nested paths are not interpreted.
func (v Value) GetValue(key string) (Value, bool) {
	if v.kind != KindStruct {
		return Value{}, false
	}
	return v.st.Get(key)
}

// Equal reports whether v and other hold the same data.
//
// A value without a tag equals Null. Struct field order is ignored. Doubles
// are compared with ==, so NaN is never equal to itself.
func (v Value) Equal(other Value) bool {
	if v.IsNull() || other.IsNull() {
		return v.IsNull() && other.IsNull()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInteger:
		return v.i == other.i
	case KindDouble:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindList:
		return v.l.Equal(other.l)
	case KindStruct:
		return v.st.Equal(other.st)
	default:
		return false
	}
}
