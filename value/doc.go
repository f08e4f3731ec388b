// Package value implements the self-describing payload model used by points.
//
// A Value is a small immutable tagged union over the JSON-like kinds:
//
//   - Null:    value.Null()
//   - Bool:    value.Bool(true)
//   - Integer: value.Integer(42)
//   - Double:  value.Double(3.14)
//   - String:  value.String("tech")
//   - List:    value.List(value.Integer(1), value.Integer(2))
//   - Struct:  value.StructValue(value.NewStruct(value.F("k", value.String("v"))))
//
// The zero Value carries no tag. It is treated exactly like Null everywhere.
//
// # Extraction
//
// Every kind has an IsX and an AsX method. AsX returns (T, ok) and ok is true
// if and only if IsX is true, so callers never need to guard against panics:
//
//	if n, ok := v.AsInteger(); ok {
//	    fmt.Println(n + 1)
//	}
//
// Missing struct fields and mismatched kinds surface as ok == false. The older
// IterList and GetStruct methods report the same condition as *NotAError and
// are deprecated.
//
// # Conversion
//
// IntoJSON converts to the generic Go JSON tree (nil, bool, int64, float64,
// string, []any, map[string]any). MarshalJSON writes struct fields in
// insertion order. String renders a compact human-readable form:
//
//	{"text":"Hi","int":42}
//
// Struct payloads also have a compact binary encoding (MarshalBinary).
package value
