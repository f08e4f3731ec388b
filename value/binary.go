package value

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/pointkit/internal/conv"
)

// maxBinaryDepth bounds list/struct nesting accepted by UnmarshalBinary.
const maxBinaryDepth = 256

var (
	errShortBuffer  = errors.New("value: short buffer")
	errTooDeep      = errors.New("value: nesting too deep")
	errTrailingData = errors.New("value: trailing data")
)

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The format is compact and order-preserving: a uvarint field count followed
// by length-prefixed keys and kind-tagged values.
func (s *Struct) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 4+s.Len()*16)
	return appendStructBinary(buf, s)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Struct) UnmarshalBinary(data []byte) error {
	st, rest, err := parseStructBinary(data, 0)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errTrailingData
	}
	*s = *st
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler for a single value.
func (v Value) MarshalBinary() ([]byte, error) {
	return appendValueBinary(nil, v)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for a single value.
func (v *Value) UnmarshalBinary(data []byte) error {
	val, rest, err := parseValueBinary(data, 0)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errTrailingData
	}
	*v = val
	return nil
}

func appendStructBinary(buf []byte, s *Struct) ([]byte, error) {
	buf = binary.AppendUvarint(buf, uint64(s.Len()))
	for k, v := range s.All() {
		buf = binary.AppendUvarint(buf, uint64(len(k)))
		buf = append(buf, k...)

		var err error
		buf, err = appendValueBinary(buf, v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
	}
	return buf, nil
}

func appendValueBinary(buf []byte, v Value) ([]byte, error) {
	kind := v.kind
	if kind == KindInvalid {
		kind = KindNull
	}
	buf = append(buf, byte(kind))

	switch kind {
	case KindNull:
		// No payload
	case KindBool:
		if v.b {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case KindInteger:
		buf = binary.AppendVarint(buf, v.i)
	case KindDouble:
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.f))
	case KindString:
		buf = binary.AppendUvarint(buf, uint64(len(v.s)))
		buf = append(buf, v.s...)
	case KindList:
		buf = binary.AppendUvarint(buf, uint64(len(v.l)))
		for _, item := range v.l {
			var err error
			buf, err = appendValueBinary(buf, item)
			if err != nil {
				return nil, err
			}
		}
	case KindStruct:
		return appendStructBinary(buf, v.st)
	default:
		return nil, fmt.Errorf("value: unknown kind %d", kind)
	}
	return buf, nil
}

func parseStructBinary(data []byte, depth int) (*Struct, []byte, error) {
	if depth > maxBinaryDepth {
		return nil, nil, errTooDeep
	}
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, nil, errors.New("value: invalid field count")
	}
	data = data[n:]

	// Every field needs at least two bytes, which caps the preallocation for
	// corrupted counts.
	hint, err := conv.Uint64ToInt(min(count, uint64(len(data)/2)))
	if err != nil {
		return nil, nil, err
	}
	s := &Struct{
		keys:   make([]string, 0, hint),
		fields: make(map[string]Value, hint),
	}

	for range count {
		kLen, n := binary.Uvarint(data)
		if n <= 0 {
			return nil, nil, errors.New("value: invalid key length")
		}
		data = data[n:]
		if uint64(len(data)) < kLen {
			return nil, nil, errShortBuffer
		}
		key := string(data[:kLen])
		data = data[kLen:]

		val, rest, err := parseValueBinary(data, depth+1)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		s.Set(key, val)
		data = rest
	}
	return s, data, nil
}

func parseValueBinary(data []byte, depth int) (Value, []byte, error) {
	if depth > maxBinaryDepth {
		return Value{}, nil, errTooDeep
	}
	if len(data) == 0 {
		return Value{}, nil, errShortBuffer
	}
	kind := Kind(data[0])
	data = data[1:]

	switch kind {
	case KindNull:
		return Null(), data, nil
	case KindBool:
		if len(data) == 0 {
			return Value{}, nil, errShortBuffer
		}
		return Bool(data[0] != 0), data[1:], nil
	case KindInteger:
		i, n := binary.Varint(data)
		if n <= 0 {
			return Value{}, nil, errors.New("value: invalid integer")
		}
		return Integer(i), data[n:], nil
	case KindDouble:
		if len(data) < 8 {
			return Value{}, nil, errShortBuffer
		}
		return Double(math.Float64frombits(binary.LittleEndian.Uint64(data))), data[8:], nil
	case KindString:
		sLen, n := binary.Uvarint(data)
		if n <= 0 {
			return Value{}, nil, errors.New("value: invalid string length")
		}
		data = data[n:]
		if uint64(len(data)) < sLen {
			return Value{}, nil, errShortBuffer
		}
		return String(string(data[:sLen])), data[sLen:], nil
	case KindList:
		count, n := binary.Uvarint(data)
		if n <= 0 {
			return Value{}, nil, errors.New("value: invalid list length")
		}
		data = data[n:]
		hint, err := conv.Uint64ToInt(min(count, uint64(len(data))))
		if err != nil {
			return Value{}, nil, err
		}
		items := make([]Value, 0, hint)
		for range count {
			item, rest, err := parseValueBinary(data, depth+1)
			if err != nil {
				return Value{}, nil, err
			}
			items = append(items, item)
			data = rest
		}
		return List(items...), data, nil
	case KindStruct:
		s, rest, err := parseStructBinary(data, depth+1)
		if err != nil {
			return Value{}, nil, err
		}
		return StructValue(s), rest, nil
	default:
		return Value{}, nil, fmt.Errorf("value: unknown kind %d", kind)
	}
}
