/*
File    : treewalk/lox/interp/value.go
Author  : amaji
*/

package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is anything a Lox expression can evaluate to. Unlike the
// teacher's GoMixObject (go-mix/objects/objects.go), Lox has no
// interface method table of its own — runtime values are plain Go
// types (nil, bool, float64, string, *Function, *NativeFunction,
// *Class, *Instance) and the evaluator type-switches on them, mirroring
// how lox/ast and lox/resolve dispatch on node type rather than method.
type Value = interface{}

// isTruthy implements Lox truthiness: nil and false are falsy,
// everything else — including 0 and "" — is truthy. This is the
// correct Lox semantics (spec.md §9 calls out and rejects the
// alternative "everything but false is truthy" reading some toy
// interpreters use).
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's `==`: nil equals only nil, numbers and
// strings and bools compare by value, everything else (functions,
// classes, instances) compares by identity.
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// stringify renders a Value the way `print` writes it. Integral doubles drop their trailing ".0" (Lox has one numeric
// type, but whole numbers should print like integers).
func stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if strings.HasSuffix(s, ".0") {
			return strings.TrimSuffix(s, ".0")
		}
		return s
	case string:
		return val
	case *Function:
		return fmt.Sprintf("<fn %s>", val.decl.Name.Lexeme)
	case *NativeFunction:
		return fmt.Sprintf("<native fn %s>", val.name)
	case *Class:
		return val.Name
	case *Instance:
		return val.Class.Name + " instance"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// typeName renders a Value's Lox-facing type name. The operator
// diagnostics in interp.go do not include it; their messages name the
// expected operand types instead.
func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Function, *NativeFunction:
		return "function"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	default:
		return "value"
	}
}
