/*
File    : treewalk/lox/interp/callable.go
Author  : amaji
*/

package interp

import "github.com/amaji/treewalk/lox/ast"

// callable is anything that can appear on the left of a Call
// expression: user functions/methods, natives, and classes (whose
// call constructs and initializes an Instance).
type callable interface {
	arity() int
	call(in *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function or method: the declaration plus
// the environment it closed over at definition time, grounded on the
// teacher's Function (go-mix/function/function.go, `Scp` field) but
// adapted for two Lox-specific needs: bound `this` (via bind, used for
// every method lookup) and the initializer special case, where calling
// `init` always yields the instance regardless of its own return.
type Function struct {
	decl          *ast.FunctionDecl
	closure       *Environment
	isInitializer bool
}

func (f *Function) arity() int { return len(f.decl.Params) }

// call runs the function body in a fresh environment bound to its
// closure, recovering the returnSignal panic that a `return` anywhere
// inside the body (however deeply nested in blocks/ifs/loops) unwinds
// through. This is the one place in the interpreter that catches it —
// see executeBlock's comment for why plain blocks must not.
func (f *Function) call(in *Interpreter, args []Value) (val Value, err error) {
	env := newEnvironment(f.closure)
	for i, p := range f.decl.Params {
		env.define(p.Lexeme, args[i])
	}

	returned := func() (rv Value) {
		defer func() {
			if r := recover(); r != nil {
				if rs, ok := r.(returnSignal); ok {
					rv = rs.value
					return
				}
				panic(r)
			}
		}()
		in.executeBlock(f.decl.Body, env)
		return nil
	}()

	if f.isInitializer {
		return f.closure.getAt(0, "this"), nil
	}
	return returned, nil
}

// bind returns a copy of f whose closure is extended with `this` bound
// to instance, used both for plain method calls and for super-method
// calls (which must still see the original receiver as `this`).
func (f *Function) bind(instance *Instance) *Function {
	env := newEnvironment(f.closure)
	env.define("this", instance)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// NativeFunction wraps a Go function as a callable Lox value, the
// mechanism natives like clock() use to cross into the interpreter.
type NativeFunction struct {
	name string
	n    int
	fn   func(in *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) arity() int { return n.n }

func (n *NativeFunction) call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}

// Class is a runtime class object: its method table plus an optional
// superclass link for single inheritance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.arity()
	}
	return 0
}

// call constructs a new Instance and, if the class (or an ancestor)
// defines `init`, runs it bound to the new instance before returning.
func (c *Class) call(in *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.bind(instance).call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// findMethod looks up name on c, then walks the superclass chain.
func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil, false
}

// Instance is a runtime object: a class pointer plus its own field
// table. Fields shadow methods of the same name on property access.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (i *Instance) get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.findMethod(name); ok {
		return m.bind(i), true
	}
	return nil, false
}

func (i *Instance) set(name string, value Value) {
	i.Fields[name] = value
}
