// value.go — the dynamically-typed runtime value model.
//
// Value is a tagged union over the four kinds the language can produce: nil,
// booleans, 64-bit float numbers, and UTF-8 strings. Every runtime type check
// in the interpreter is a tag match, never a reflective type test.
package lox

import "strconv"

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNil  ValueTag = iota // nil (no payload)
	VTBool                 // bool
	VTNum                  // float64
	VTStr                  // string
)

// Value is the universal runtime carrier. The tag determines which Go type
// Data holds: nil, bool, float64, or string.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

// Primitive constructors.
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }

// Truthy maps a value to its conditional meaning: nil and false are falsey,
// everything else — including 0 and "" — is truthy.
func (v Value) Truthy() bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// Equal is structural equality over the value domain. Values of different
// tags are never equal; a number is never equal to a string.
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	if v.Tag == VTNil {
		return true
	}
	return v.Data == o.Data
}

// FormatValue renders a value for display: nil → "nil", numbers in their
// shortest decimal form with no trailing ".0" for integral values, booleans
// and strings in their natural textual form.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	default:
		return "<unknown>"
	}
}
