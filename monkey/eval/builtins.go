/*
File    : treewalk/monkey/eval/builtins.go
Author  : amaji
*/

package eval

import (
	"fmt"

	"github.com/amaji/treewalk/monkey/object"
)

// builtins is Monkey's fixed native function table: len, first, last,
// rest, push, puts — the standard set from spec.md §4.4's Monkey
// supplement, grounded in shape on the teacher's std.Builtins registry
// (go-mix/std/builtins.go) but not its callback signature, since
// Monkey builtins don't need a Runtime callback (none of them call
// back into user code).
var builtins = map[string]*object.Builtin{
	"len": {Name: "len", Fn: func(args ...object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("wrong number of arguments. got=%d, want=1", len(args))
		}
		switch a := args[0].(type) {
		case *object.String:
			return &object.Integer{Value: int64(len(a.Value))}, nil
		case *object.Array:
			return &object.Integer{Value: int64(len(a.Elements))}, nil
		default:
			return nil, fmt.Errorf("argument to `len` not supported, got %s", a.Type())
		}
	}},

	"first": {Name: "first", Fn: func(args ...object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("wrong number of arguments. got=%d, want=1", len(args))
		}
		arr, ok := args[0].(*object.Array)
		if !ok {
			return nil, fmt.Errorf("argument to `first` must be ARRAY, got %s", args[0].Type())
		}
		if len(arr.Elements) == 0 {
			return object.NilVal, nil
		}
		return arr.Elements[0], nil
	}},

	"last": {Name: "last", Fn: func(args ...object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("wrong number of arguments. got=%d, want=1", len(args))
		}
		arr, ok := args[0].(*object.Array)
		if !ok {
			return nil, fmt.Errorf("argument to `last` must be ARRAY, got %s", args[0].Type())
		}
		if len(arr.Elements) == 0 {
			return object.NilVal, nil
		}
		return arr.Elements[len(arr.Elements)-1], nil
	}},

	"rest": {Name: "rest", Fn: func(args ...object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("wrong number of arguments. got=%d, want=1", len(args))
		}
		arr, ok := args[0].(*object.Array)
		if !ok {
			return nil, fmt.Errorf("argument to `rest` must be ARRAY, got %s", args[0].Type())
		}
		if len(arr.Elements) == 0 {
			return object.NilVal, nil
		}
		rest := make([]object.Object, len(arr.Elements)-1)
		copy(rest, arr.Elements[1:])
		return &object.Array{Elements: rest}, nil
	}},

	"push": {Name: "push", Fn: func(args ...object.Object) (object.Object, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("wrong number of arguments. got=%d, want=2", len(args))
		}
		arr, ok := args[0].(*object.Array)
		if !ok {
			return nil, fmt.Errorf("argument to `push` must be ARRAY, got %s", args[0].Type())
		}
		extended := make([]object.Object, len(arr.Elements)+1)
		copy(extended, arr.Elements)
		extended[len(arr.Elements)] = args[1]
		return &object.Array{Elements: extended}, nil
	}},
}

// Puts is registered by the evaluator's caller (it needs the output
// writer, which the fixed table above has no access to); see
// newBuiltinsWithOutput.
func newBuiltinsWithOutput(write func(string)) map[string]*object.Builtin {
	all := make(map[string]*object.Builtin, len(builtins)+1)
	for k, v := range builtins {
		all[k] = v
	}
	all["puts"] = &object.Builtin{Name: "puts", Fn: func(args ...object.Object) (object.Object, error) {
		for _, a := range args {
			write(a.Inspect())
		}
		return object.NilVal, nil
	}}
	return all
}
