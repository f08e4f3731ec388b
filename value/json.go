package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// IntoJSON converts v into the generic Go JSON representation.
//
// The mapping is:
//
//	Null, absent -> nil
//	Bool         -> bool
//	Integer      -> int64
//	Double       -> float64 (nil if NaN or infinite)
//	String       -> string
//	List         -> []any
//	Struct       -> map[string]any
//
// map[string]any does not keep key order; use MarshalJSON when the
// insertion order of struct fields must survive.
func (v Value) IntoJSON() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInteger:
		return v.i
	case KindDouble:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil
		}
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.l))
		for i := range v.l {
			out[i] = v.l[i].IntoJSON()
		}
		return out
	case KindStruct:
		return v.st.IntoJSON()
	default:
		return nil
	}
}

// Interface is an alias for IntoJSON.
func (v Value) Interface() any { return v.IntoJSON() }

// IntoJSON converts the struct into a map with every field converted by
// Value.IntoJSON. The result is never nil.
func (s *Struct) IntoJSON() map[string]any {
	out := make(map[string]any, s.Len())
	for k, v := range s.All() {
		out[k] = v.IntoJSON()
	}
	return out
}

// MarshalJSON implements json.Marshaler. Struct fields are written in
// insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil), nil
}

// MarshalJSON implements json.Marshaler.
func (s *Struct) MarshalJSON() ([]byte, error) {
	return appendStructJSON(nil, s), nil
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Object key order is kept. Numbers without a fraction or exponent that fit
// in an int64 become integers; all other numbers become doubles.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	val, err := decodeValue(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("value: trailing data after JSON value")
	}
	*v = val
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. The input must be a JSON object
// or null.
func (s *Struct) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	if v.IsNull() {
		*s = Struct{}
		return nil
	}
	st, ok := v.AsStruct()
	if !ok {
		return fmt.Errorf("value: expected JSON object, got %s", v.Kind())
	}
	*s = *st
	return nil
}

func (v Value) appendJSON(buf []byte) []byte {
	switch v.kind {
	case KindBool:
		return strconv.AppendBool(buf, v.b)
	case KindInteger:
		return strconv.AppendInt(buf, v.i, 10)
	case KindDouble:
		return appendDoubleJSON(buf, v.f)
	case KindString:
		return appendStringJSON(buf, v.s)
	case KindList:
		buf = append(buf, '[')
		for i := range v.l {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = v.l[i].appendJSON(buf)
		}
		return append(buf, ']')
	case KindStruct:
		return appendStructJSON(buf, v.st)
	default:
		return append(buf, "null"...)
	}
}

func appendStructJSON(buf []byte, s *Struct) []byte {
	buf = append(buf, '{')
	first := true
	for k, v := range s.All() {
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = appendStringJSON(buf, k)
		buf = append(buf, ':')
		buf = v.appendJSON(buf)
	}
	return append(buf, '}')
}

// appendDoubleJSON keeps a fraction marker on whole numbers so that the
// value decodes back as a double.
func appendDoubleJSON(buf []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(buf, "null"...)
	}
	start := len(buf)
	buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
	if !bytes.ContainsAny(buf[start:], ".eE") {
		buf = append(buf, ".0"...)
	}
	return buf
}

func appendStringJSON(buf []byte, s string) []byte {
	// json.Marshal never fails for a string.
	b, _ := json.Marshal(s)
	return append(buf, b...)
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return parseNumber(t.String())
	case json.Delim:
		switch t {
		case '[':
			items := make([]Value, 0)
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(items...), nil
		case '{':
			s := NewStruct()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("value: invalid object key %v", keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				s.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return StructValue(s), nil
		}
	}
	return Value{}, fmt.Errorf("value: unexpected JSON token %v", tok)
}

func parseNumber(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Integer(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("value: invalid number %q: %w", s, err)
	}
	return Double(f), nil
}
