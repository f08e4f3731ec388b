package value

import (
	"errors"
	"fmt"
	"iter"
)

// ErrNotA matches every *NotAError via errors.Is.
var ErrNotA = errors.New("value: wrong kind")

// NotAError reports that a value did not hold the expected kind.
//
// Deprecated: it is only returned by the deprecated IterList and GetStruct.
type NotAError struct {
	Expected Kind
	Actual   Kind
}

func (e *NotAError) Error() string {
	return fmt.Sprintf("value: not a %s (got %s)", e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrNotA) succeed.
func (e *NotAError) Is(target error) bool { return target == ErrNotA }

// IterList returns an iterator over the list items.
//
// Deprecated: use TryListIter.
func (v Value) IterList() (iter.Seq[*Value], error) {
	seq, ok := v.TryListIter()
	if !ok {
		return nil, &NotAError{Expected: KindList, Actual: v.kind}
	}
	return seq, nil
}

// GetStruct returns the field key of a struct value, or Null if the struct
// has no such field.
//
// Deprecated: use GetValue.
func (v Value) GetStruct(key string) (Value, error) {
	if !v.IsStruct() {
		return Value{}, &NotAError{Expected: KindStruct, Actual: v.kind}
	}
	if fv, ok := v.GetValue(key); ok {
		return fv, nil
	}
	return Null(), nil
}
