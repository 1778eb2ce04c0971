/*
File    : treewalk/lox/interp/interp.go
Author  : amaji
*/

// Package interp evaluates a resolved Lox program, producing the
// program's printed output and any runtime diagnostics. It is the
// counterpart to the teacher's eval package (go-mix/eval/evaluator.go)
// generalized to Lox's object model: classes/instances/bound methods,
// static-distance variable resolution via lox/resolve's side-table,
// and non-local control transfer for `return` implemented with Go
// panic/recover rather than an explicit signal object threaded through
// every exec call: exec returns nothing, and runtime errors unwind by
// panic as well.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/amaji/treewalk/internal/diag"
	"github.com/amaji/treewalk/lox/ast"
	"github.com/amaji/treewalk/lox/resolve"
	"github.com/amaji/treewalk/lox/token"
)

// returnSignal is panicked by a ReturnStmt and recovered by the
// nearest enclosing function call, carrying the returned value.
type returnSignal struct{ value Value }

// runtimeError is panicked for any Lox-level runtime fault (type
// mismatch, undefined variable, arity mismatch, ...) and recovered at
// the top of Interpret, converting it into a diag.Diagnostic.
type runtimeError struct {
	line    int
	message string
}

// Interpreter walks a resolved AST, evaluating statements for effect
// and expressions for value. An Interpreter may serve many Interpret
// calls (the REPL keeps one for a whole session); globals and the
// side-table persist between them.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  resolve.Locals
	out     io.Writer
}

// New creates an Interpreter with its global environment pre-seeded
// with natives (currently just clock(), per spec.md §4.4 and
// original_source/lox-tree-walker/lox/objects/natives.py).
func New(out io.Writer) *Interpreter {
	globals := newEnvironment(nil)
	globals.define("clock", &NativeFunction{
		name: "clock", n: 0,
		fn: func(*Interpreter, []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
	return &Interpreter{globals: globals, env: globals, out: out}
}

// Interpret runs every statement in order, writing `print` output to
// the Interpreter's writer and returning the first runtime diagnostic
// encountered — execution stops at the first runtime error, matching
// spec.md §4.4's fail-fast runtime semantics (unlike parsing/resolving,
// which collect every diagnostic before giving up).
//
// locals is merged into the interpreter's side-table rather than
// replacing it: a REPL drives one Interpreter across many calls, each
// parsing and resolving a fresh line with its own expression nodes, so
// there is never a colliding key to worry about.
func (in *Interpreter) Interpret(stmts []ast.Stmt, locals resolve.Locals) []diag.Diagnostic {
	if in.locals == nil {
		in.locals = make(resolve.Locals)
	}
	for k, v := range locals {
		in.locals[k] = v
	}
	var diags []diag.Diagnostic
	func() {
		defer func() {
			if r := recover(); r != nil {
				if rerr, ok := r.(runtimeError); ok {
					diags = append(diags, diag.Diagnostic{
						Kind: diag.RuntimeError, Line: rerr.line, Message: rerr.message,
					})
					return
				}
				panic(r)
			}
		}()
		for _, s := range stmts {
			in.exec(s)
		}
	}()
	return diags
}

func (in *Interpreter) exec(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		in.eval(s.Expr)

	case *ast.PrintStmt:
		v := in.eval(s.Expr)
		fmt.Fprintln(in.out, stringify(v))

	case *ast.VarDecl:
		var v Value
		if s.Initializer != nil {
			v = in.eval(s.Initializer)
		}
		in.env.define(s.Name.Lexeme, v)

	case *ast.Block:
		in.executeBlock(s.Stmts, newEnvironment(in.env))


	case *ast.If:
		if isTruthy(in.eval(s.Cond)) {
			in.exec(s.Then)
		} else if s.Else != nil {
			in.exec(s.Else)
		}

	case *ast.While:
		for isTruthy(in.eval(s.Cond)) {
			in.exec(s.Body)
		}

	case *ast.FunctionDecl:
		fn := &Function{decl: s, closure: in.env}
		in.env.define(s.Name.Lexeme, fn)

	case *ast.ReturnStmt:
		var v Value
		if s.Value != nil {
			v = in.eval(s.Value)
		}
		panic(returnSignal{value: v})

	case *ast.ClassDecl:
		in.execClassDecl(s)

	default:
		in.fail(0, "unhandled statement type")
	}
}

func (in *Interpreter) execClassDecl(s *ast.ClassDecl) {
	var super *Class
	if s.Superclass != nil {
		v := in.eval(s.Superclass)
		cls, ok := v.(*Class)
		if !ok {
			in.fail(s.Superclass.Name.Line, "Superclass must be a class.")
		}
		super = cls
	}

	in.env.define(s.Name.Lexeme, nil)

	methodEnv := in.env
	if super != nil {
		methodEnv = newEnvironment(in.env)
		methodEnv.define("super", super)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			decl: m, closure: methodEnv, isInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: super, Methods: methods}
	in.env.assign(s.Name.Lexeme, class)
}

// executeBlock runs stmts in env, always restoring the interpreter's
// previous environment on the way out — including when a `return`
// panics through it, mirroring the teacher's defer-based cleanup idiom
// (go-mix/eval/evaluator.go) rather than try/finally. It does NOT
// recover returnSignal itself: a return inside a nested block must
// keep unwinding past every enclosing block until it reaches the
// function-call boundary that actually catches it (Function.call).
// Catching it here too would make `return` exit only its innermost
// block instead of the whole function.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		in.exec(s)
	}
}

func (in *Interpreter) eval(expr ast.Expr) Value {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value

	case *ast.Grouping:
		return in.eval(e.Inner)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		left := in.eval(e.Left)
		if e.Op.Type == token.OR {
			if isTruthy(left) {
				return left
			}
		} else if !isTruthy(left) {
			return left
		}
		return in.eval(e.Right)

	case *ast.Variable:
		return in.lookupVariable(e.Name, e)

	case *ast.Assign:
		v := in.eval(e.Value)
		if dist, ok := in.locals[e]; ok {
			in.env.assignAt(dist, e.Name.Lexeme, v)
		} else if !in.globals.assign(e.Name.Lexeme, v) {
			in.fail(e.Name.Line, "Undefined variable '"+e.Name.Lexeme+"'.")
		}
		return v

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		obj := in.eval(e.Object)
		inst, ok := obj.(*Instance)
		if !ok {
			in.fail(e.Name.Line, "Only instances have properties.")
		}
		v, ok := inst.get(e.Name.Lexeme)
		if !ok {
			in.fail(e.Name.Line, "Undefined property '"+e.Name.Lexeme+"'.")
		}
		return v

	case *ast.Set:
		obj := in.eval(e.Object)
		inst, ok := obj.(*Instance)
		if !ok {
			in.fail(e.Name.Line, "Only instances have fields.")
		}
		v := in.eval(e.Value)
		inst.set(e.Name.Lexeme, v)
		return v

	case *ast.This:
		return in.lookupVariable(e.Keyword, e)

	case *ast.Super:
		return in.evalSuper(e)

	default:
		in.fail(0, "unhandled expression type")
		return nil
	}
}

func (in *Interpreter) lookupVariable(name token.Token, expr ast.Expr) Value {
	if dist, ok := in.locals[expr]; ok {
		return in.env.getAt(dist, name.Lexeme)
	}
	v, ok := in.globals.get(name.Lexeme)
	if !ok {
		in.fail(name.Line, "Undefined variable '"+name.Lexeme+"'.")
	}
	return v
}

func (in *Interpreter) evalSuper(e *ast.Super) Value {
	dist := in.locals[e]
	super := in.env.getAt(dist, "super").(*Class)
	instance := in.env.getAt(dist-1, "this").(*Instance)

	method, ok := super.findMethod(e.Method.Lexeme)
	if !ok {
		in.fail(e.Method.Line, "Undefined property '"+e.Method.Lexeme+"'.")
	}
	return method.bind(instance)
}

func (in *Interpreter) evalCall(e *ast.Call) Value {
	callee := in.eval(e.Callee)

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		args[i] = in.eval(a)
	}

	fn, ok := callee.(callable)
	if !ok {
		in.fail(e.Paren.Line, "Can only call functions and classes.")
	}
	if len(args) != fn.arity() {
		in.fail(e.Paren.Line, fmt.Sprintf("Expected %d arguments but got %d.", fn.arity(), len(args)))
	}
	v, err := fn.call(in, args)
	if err != nil {
		if rerr, ok := err.(runtimeError); ok {
			panic(rerr)
		}
		in.fail(e.Paren.Line, err.Error())
	}
	return v
}

func (in *Interpreter) evalUnary(e *ast.Unary) Value {
	right := in.eval(e.Right)
	switch e.Op.Type {
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			in.fail(e.Op.Line, "Operand must be a number.")
		}
		return -n
	case token.BANG:
		return !isTruthy(right)
	default:
		in.fail(e.Op.Line, "Unknown unary operator.")
		return nil
	}
}

func (in *Interpreter) evalBinary(e *ast.Binary) Value {
	left := in.eval(e.Left)
	right := in.eval(e.Right)

	switch e.Op.Type {
	case token.PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs
			}
		}
		in.fail(e.Op.Line, "Operands must be two numbers or two strings.")
	case token.MINUS:
		return in.arith(e, left, right, func(a, b float64) float64 { return a - b })
	case token.STAR:
		return in.arith(e, left, right, func(a, b float64) float64 { return a * b })
	case token.SLASH:
		ln, rn := in.numbers(e, left, right)
		if rn == 0 {
			in.fail(e.Op.Line, "Division by zero.")
		}
		return ln / rn
	case token.GREATER:
		ln, rn := in.numbers(e, left, right)
		return ln > rn
	case token.GREATER_EQUAL:
		ln, rn := in.numbers(e, left, right)
		return ln >= rn
	case token.LESS:
		ln, rn := in.numbers(e, left, right)
		return ln < rn
	case token.LESS_EQUAL:
		ln, rn := in.numbers(e, left, right)
		return ln <= rn
	case token.EQUAL_EQUAL:
		return isEqual(left, right)
	case token.BANG_EQUAL:
		return !isEqual(left, right)
	}
	in.fail(e.Op.Line, "Unknown binary operator.")
	return nil
}

func (in *Interpreter) arith(e *ast.Binary, left, right Value, op func(a, b float64) float64) Value {
	ln, rn := in.numbers(e, left, right)
	return op(ln, rn)
}

func (in *Interpreter) numbers(e *ast.Binary, left, right Value) (float64, float64) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		in.fail(e.Op.Line, "Operands must be numbers.")
	}
	return ln, rn
}

// fail panics with a runtimeError, unwinding through any function
// calls (Function.call re-panics it) to Interpret, which turns it into
// a diagnostic. Every runtime fault funnels through here so
// diagnostics stay uniformly shaped.
func (in *Interpreter) fail(line int, message string) {
	panic(runtimeError{line: line, message: message})
}

// Error satisfies the error interface so runtimeError can also be
// returned through the callable.call signature when a native wants to
// report a fault without panicking directly.
func (r runtimeError) Error() string { return r.message }
