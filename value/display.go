package value

import (
	"math"
	"strconv"
	"strings"
)

// String renders v in a compact, human-readable form.
//
// Scalars print as literals, strings are quoted, lists print as [a,b] and
// structs as {"k":v} in insertion order. Null and absent values print as null.
func (v Value) String() string {
	var sb strings.Builder
	v.appendText(&sb)
	return sb.String()
}

// String renders the struct the same way Value.String renders a struct value.
func (s *Struct) String() string {
	var sb strings.Builder
	appendStructText(&sb, s)
	return sb.String()
}

func (v Value) appendText(sb *strings.Builder) {
	switch v.kind {
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInteger:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindDouble:
		sb.WriteString(formatDouble(v.f))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindList:
		sb.WriteByte('[')
		for i := range v.l {
			if i > 0 {
				sb.WriteByte(',')
			}
			v.l[i].appendText(sb)
		}
		sb.WriteByte(']')
	case KindStruct:
		appendStructText(sb, v.st)
	default:
		sb.WriteString("null")
	}
}

func appendStructText(sb *strings.Builder, s *Struct) {
	sb.WriteByte('{')
	first := true
	for k, fv := range s.All() {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Quote(k))
		sb.WriteByte(':')
		fv.appendText(sb)
	}
	sb.WriteByte('}')
}

// formatDouble prints the shortest decimal that round-trips, never using an
// exponent.
func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
