package value

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedType is returned by FromAny for Go types that have no Value
// representation.
var ErrUnsupportedType = errors.New("value: unsupported type")

// FromAny converts plain Go data into a typed Value.
//
// This exists as an adapter layer for user input and decoded JSON trees.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case *Struct:
		return StructValue(x), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Double(x), nil
	case float32:
		return Double(float64(x)), nil
	case int:
		return Integer(int64(x)), nil
	case int8:
		return Integer(int64(x)), nil
	case int16:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case uint:
		return fromUint64(uint64(x))
	case uint8:
		return Integer(int64(x)), nil
	case uint16:
		return Integer(int64(x)), nil
	case uint32:
		return Integer(int64(x)), nil
	case uint64:
		return fromUint64(x)
	case []Value:
		return List(x...), nil
	case []any:
		items := make([]Value, len(x))
		for i := range x {
			item, err := FromAny(x[i])
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = item
		}
		return List(items...), nil
	case []string:
		items := make([]Value, len(x))
		for i := range x {
			items[i] = String(x[i])
		}
		return List(items...), nil
	case []int64:
		items := make([]Value, len(x))
		for i := range x {
			items[i] = Integer(x[i])
		}
		return List(items...), nil
	case []float64:
		items := make([]Value, len(x))
		for i := range x {
			items[i] = Double(x[i])
		}
		return List(items...), nil
	case map[string]any:
		s, err := StructFromMap(x)
		if err != nil {
			return Value{}, err
		}
		return StructValue(s), nil
	default:
		return Value{}, fmt.Errorf("%w %T", ErrUnsupportedType, v)
	}
}

func fromUint64(x uint64) (Value, error) {
	if x > math.MaxInt64 {
		// Avoid silently wrapping large values.
		return Value{}, fmt.Errorf("%w: uint64 %d out of int64 range", ErrUnsupportedType, x)
	}
	return Integer(int64(x)), nil
}

// StructFromMap converts a map into a Struct.
//
// Go maps have no order, so the struct's fields follow map iteration order.
func StructFromMap(m map[string]any) (*Struct, error) {
	s := NewStruct()
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		s.Set(k, vv)
	}
	return s, nil
}
