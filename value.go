// value.go — the runtime value model.
//
// Value is a tagged sum over nil, boolean, number (float64), string, array
// and function. Arrays share their backing storage on assignment and
// parameter passing (mutation through one alias is visible through all);
// every other kind copies by value. Functions pair their declaration node
// with the environment active at the declaration site (the closure) and are
// immutable after creation.
package aether

import (
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNil ValueTag = iota
	VTBool
	VTNum
	VTStr
	VTArray // []Value; aliases share the backing storage
	VTFunc  // *Function
)

// Value is the universal runtime carrier. Tag determines which Go type Data
// holds: nil, bool, float64, string, []Value or *Function.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil value.
var Nil = Value{Tag: VTNil}

func Boolean(b bool) Value { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value  { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value   { return Value{Tag: VTStr, Data: s} }
func Arr(xs []Value) Value { return Value{Tag: VTArray, Data: xs} }

func FuncVal(f *Function) Value { return Value{Tag: VTFunc, Data: f} }

// Function pairs a declaration with its defining environment. The
// declaration node is shared, never duplicated.
type Function struct {
	Decl    *FuncDecl
	Closure *Env
}

// Truthy maps any value to a boolean: nil, numeric zero and the empty
// string are falsy; booleans count at face value; everything else
// (including arrays and functions) is truthy.
func Truthy(v Value) bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTNum:
		return v.Data.(float64) != 0
	case VTStr:
		return v.Data.(string) != ""
	default:
		return true
	}
}

// valuesEqual implements ==: nil equals only nil, and there is no coercion
// between kinds. Arrays compare element-wise.
func valuesEqual(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNil:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTArray:
		xs, ys := a.Data.([]Value), b.Data.([]Value)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !valuesEqual(xs[i], ys[i]) {
				return false
			}
		}
		return true
	case VTFunc:
		return a.Data.(*Function) == b.Data.(*Function)
	}
	return false
}

// Stringify renders a value for print and string concatenation: nil →
// "nil", booleans → "true"/"false", whole numbers without a decimal point,
// other numbers in their shortest decimal form, arrays as "[a, b]",
// strings as-is.
func Stringify(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'f', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTArray:
		elems := v.Data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = Stringify(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTFunc:
		return "<fun " + v.Data.(*Function).Decl.Name.Lexeme + ">"
	}
	return "<unknown>"
}
