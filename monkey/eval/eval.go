/*
File    : treewalk/monkey/eval/eval.go
Author  : amaji
*/

// Package eval evaluates a Monkey program directly off the AST — no
// resolver, no static side-table, just late-bound environment-chain
// lookup, since Monkey (unlike Lox) never promised lexical distance
// resolution in spec.md §4.3 (that section is Lox-only). The one
// Monkey-specific wrinkle an evaluator must get right is the
// evalProgram vs evalBlockStatement distinction: a `return` must
// unwrap all the way out of a top-level program but only partially
// unwrap out of a nested block, so an outer block can still see that a
// return happened and itself stop early.
package eval

import (
	"fmt"
	"io"

	"github.com/amaji/treewalk/internal/diag"
	"github.com/amaji/treewalk/monkey/ast"
	"github.com/amaji/treewalk/monkey/object"
)

// Evaluator walks a Monkey program, writing `puts` output to out and
// collecting the first runtime diagnostic encountered.
type Evaluator struct {
	out      io.Writer
	diags    []diag.Diagnostic
	builtins map[string]*object.Builtin
}

// New creates an Evaluator. Run supplies the output writer per call,
// so a single Evaluator can be reused across a REPL session.
func New() *Evaluator {
	return &Evaluator{}
}

// Run evaluates prog in env (a fresh object.NewEnvironment() for a
// top-level run, or a carried-over one for REPL-style incremental
// evaluation) and returns any runtime diagnostics.
func (e *Evaluator) Run(out io.Writer, prog *ast.Program, env *object.Environment) []diag.Diagnostic {
	e.out = out
	e.diags = nil
	e.builtins = newBuiltinsWithOutput(func(s string) { fmt.Fprintln(out, s) })
	e.evalProgram(prog, env)
	return e.diags
}

// evalProgram evaluates top-level statements, unwrapping a
// ReturnValue the instant one appears — a `return` at the top level
// ends the whole program.
func (e *Evaluator) evalProgram(prog *ast.Program, env *object.Environment) object.Object {
	var result object.Object = object.NilVal
	for _, s := range prog.Stmts {
		result = e.eval(s, env)
		if result == nil {
			return nil
		}
		if rv, ok := result.(*object.ReturnValue); ok {
			return rv.Value
		}
		if e.failed() {
			return nil
		}
	}
	return result
}

// evalBlockStatement evaluates a nested block's statements but leaves
// a ReturnValue WRAPPED when one is produced, so the caller (an `if`
// branch, a function body one level up) can tell a return happened
// and itself stop evaluating further statements instead of continuing
// past it.
func (e *Evaluator) evalBlockStatement(block *ast.BlockStmt, env *object.Environment) object.Object {
	var result object.Object = object.NilVal
	for _, s := range block.Stmts {
		result = e.eval(s, env)
		if result == nil {
			return nil
		}
		if result.Type() == object.ReturnValueObj {
			return result
		}
		if e.failed() {
			return nil
		}
	}
	return result
}

func (e *Evaluator) failed() bool { return len(e.diags) > 0 }

func (e *Evaluator) eval(node ast.Node, env *object.Environment) object.Object {
	switch n := node.(type) {
	case *ast.ExpressionStmt:
		return e.eval(n.Expr, env)

	case *ast.IntegerLiteral:
		return &object.Integer{Value: n.Value}

	case *ast.StringLiteral:
		return &object.String{Value: n.Value}

	case *ast.Boolean:
		return object.NativeBool(n.Value)

	case *ast.PrefixExpr:
		right := e.eval(n.Right, env)
		if e.failed() {
			return nil
		}
		return e.evalPrefix(n, right)

	case *ast.InfixExpr:
		left := e.eval(n.Left, env)
		if e.failed() {
			return nil
		}
		right := e.eval(n.Right, env)
		if e.failed() {
			return nil
		}
		return e.evalInfix(n, left, right)

	case *ast.BlockStmt:
		return e.evalBlockStatement(n, env)

	case *ast.IfExpr:
		return e.evalIf(n, env)

	case *ast.ReturnStmt:
		var v object.Object = object.NilVal
		if n.Value != nil {
			v = e.eval(n.Value, env)
			if e.failed() {
				return nil
			}
		}
		return &object.ReturnValue{Value: v}

	case *ast.LetStmt:
		v := e.eval(n.Value, env)
		if e.failed() {
			return nil
		}
		env.Set(n.Name.Value, v)
		return v

	case *ast.Identifier:
		return e.evalIdentifier(n, env)

	case *ast.FunctionLiteral:
		return &object.Function{Params: n.Params, Body: n.Body, Env: env, Name: n.Name}

	case *ast.CallExpr:
		return e.evalCall(n, env)

	case *ast.ArrayLiteral:
		elems := e.evalExprList(n.Elements, env)
		if e.failed() {
			return nil
		}
		return &object.Array{Elements: elems}

	case *ast.IndexExpr:
		return e.evalIndex(n, env)

	case *ast.HashLiteral:
		return e.evalHash(n, env)

	default:
		e.fail(0, fmt.Sprintf("cannot evaluate node %T", n))
		return nil
	}
}

func (e *Evaluator) evalPrefix(n *ast.PrefixExpr, right object.Object) object.Object {
	switch n.Operator {
	case "!":
		return object.NativeBool(!isTruthy(right))
	case "-":
		i, ok := right.(*object.Integer)
		if !ok {
			e.fail(0, "unknown operator: -"+string(right.Type()))
			return nil
		}
		return &object.Integer{Value: -i.Value}
	default:
		e.fail(0, "unknown operator: "+n.Operator+string(right.Type()))
		return nil
	}
}

func (e *Evaluator) evalInfix(n *ast.InfixExpr, left, right object.Object) object.Object {
	switch {
	case left.Type() == object.IntegerObj && right.Type() == object.IntegerObj:
		return e.evalIntegerInfix(n, left.(*object.Integer), right.(*object.Integer))
	case left.Type() == object.StringObj && right.Type() == object.StringObj:
		return e.evalStringInfix(n, left.(*object.String), right.(*object.String))
	case n.Operator == "==":
		return object.NativeBool(left == right)
	case n.Operator == "!=":
		return object.NativeBool(left != right)
	case left.Type() != right.Type():
		e.fail(0, fmt.Sprintf("type mismatch: %s %s %s", left.Type(), n.Operator, right.Type()))
		return nil
	default:
		e.fail(0, fmt.Sprintf("unknown operator: %s %s %s", left.Type(), n.Operator, right.Type()))
		return nil
	}
}

func (e *Evaluator) evalIntegerInfix(n *ast.InfixExpr, left, right *object.Integer) object.Object {
	switch n.Operator {
	case "+":
		return &object.Integer{Value: left.Value + right.Value}
	case "-":
		return &object.Integer{Value: left.Value - right.Value}
	case "*":
		return &object.Integer{Value: left.Value * right.Value}
	case "/":
		if right.Value == 0 {
			e.fail(0, "division by zero")
			return nil
		}
		return &object.Integer{Value: left.Value / right.Value}
	case "<":
		return object.NativeBool(left.Value < right.Value)
	case ">":
		return object.NativeBool(left.Value > right.Value)
	case "==":
		return object.NativeBool(left.Value == right.Value)
	case "!=":
		return object.NativeBool(left.Value != right.Value)
	default:
		e.fail(0, "unknown operator: "+string(left.Type())+" "+n.Operator+" "+string(right.Type()))
		return nil
	}
}

func (e *Evaluator) evalStringInfix(n *ast.InfixExpr, left, right *object.String) object.Object {
	switch n.Operator {
	case "+":
		return &object.String{Value: left.Value + right.Value}
	case "==":
		return object.NativeBool(left.Value == right.Value)
	case "!=":
		return object.NativeBool(left.Value != right.Value)
	default:
		e.fail(0, "unknown operator: "+string(left.Type())+" "+n.Operator+" "+string(right.Type()))
		return nil
	}
}

func (e *Evaluator) evalIf(n *ast.IfExpr, env *object.Environment) object.Object {
	cond := e.eval(n.Condition, env)
	if e.failed() {
		return nil
	}
	if isTruthy(cond) {
		return e.eval(n.Consequence, env)
	}
	if n.Alternative != nil {
		return e.eval(n.Alternative, env)
	}
	return object.NilVal
}

func (e *Evaluator) evalIdentifier(n *ast.Identifier, env *object.Environment) object.Object {
	if v, ok := env.Get(n.Value); ok {
		return v
	}
	if b, ok := e.builtins[n.Value]; ok {
		return b
	}
	e.fail(0, "identifier not found: "+n.Value)
	return nil
}

func (e *Evaluator) evalCall(n *ast.CallExpr, env *object.Environment) object.Object {
	fn := e.eval(n.Function, env)
	if e.failed() {
		return nil
	}
	args := e.evalExprList(n.Arguments, env)
	if e.failed() {
		return nil
	}
	return e.applyFunction(fn, args)
}

func (e *Evaluator) applyFunction(fn object.Object, args []object.Object) object.Object {
	switch f := fn.(type) {
	case *object.Function:
		if len(args) != len(f.Params) {
			e.fail(0, fmt.Sprintf("wrong number of arguments: want=%d, got=%d", len(f.Params), len(args)))
			return nil
		}
		extended := object.NewEnclosedEnvironment(f.Env)
		for i, p := range f.Params {
			extended.Set(p.Value, args[i])
		}
		evaluated := e.evalBlockStatement(f.Body, extended)
		if e.failed() {
			return nil
		}
		if rv, ok := evaluated.(*object.ReturnValue); ok {
			return rv.Value
		}
		return evaluated

	case *object.Builtin:
		v, err := f.Fn(args...)
		if err != nil {
			e.fail(0, err.Error())
			return nil
		}
		return v

	default:
		e.fail(0, "not a function: "+string(fn.Type()))
		return nil
	}
}

func (e *Evaluator) evalExprList(exprs []ast.Expr, env *object.Environment) []object.Object {
	result := make([]object.Object, 0, len(exprs))
	for _, x := range exprs {
		v := e.eval(x, env)
		if e.failed() {
			return nil
		}
		result = append(result, v)
	}
	return result
}

func (e *Evaluator) evalIndex(n *ast.IndexExpr, env *object.Environment) object.Object {
	left := e.eval(n.Left, env)
	if e.failed() {
		return nil
	}
	index := e.eval(n.Index, env)
	if e.failed() {
		return nil
	}

	switch {
	case left.Type() == object.ArrayObj && index.Type() == object.IntegerObj:
		arr := left.(*object.Array)
		i := index.(*object.Integer).Value
		if i < 0 || i >= int64(len(arr.Elements)) {
			return object.NilVal
		}
		return arr.Elements[i]

	case left.Type() == object.HashObj:
		hash := left.(*object.Hash)
		key, ok := index.(object.Hashable)
		if !ok {
			e.fail(0, "unusable as hash key: "+string(index.Type()))
			return nil
		}
		pair, ok := hash.Pairs[key.HashKey()]
		if !ok {
			return object.NilVal
		}
		return pair.Value

	default:
		e.fail(0, "index operator not supported: "+string(left.Type()))
		return nil
	}
}

func (e *Evaluator) evalHash(n *ast.HashLiteral, env *object.Environment) object.Object {
	pairs := make(map[object.HashKey]object.HashPair, len(n.Pairs))
	for keyNode, valNode := range n.Pairs {
		key := e.eval(keyNode, env)
		if e.failed() {
			return nil
		}
		hashable, ok := key.(object.Hashable)
		if !ok {
			e.fail(0, "unusable as hash key: "+string(key.Type()))
			return nil
		}
		val := e.eval(valNode, env)
		if e.failed() {
			return nil
		}
		pairs[hashable.HashKey()] = object.HashPair{Key: key, Value: val}
	}
	return &object.Hash{Pairs: pairs}
}

// isTruthy implements Monkey truthiness: nil and false are falsy,
// everything else is truthy — including the integer 0, same rule as
// Lox (lox/interp/value.go's isTruthy).
func isTruthy(v object.Object) bool {
	switch v {
	case object.NilVal:
		return false
	case object.TrueVal:
		return true
	case object.FalseVal:
		return false
	default:
		return true
	}
}

// fail records a single runtime diagnostic. Monkey reports only the
// first, same fail-fast contract as lox/interp.
func (e *Evaluator) fail(line int, message string) {
	if e.failed() {
		return
	}
	e.diags = append(e.diags, diag.Diagnostic{Kind: diag.RuntimeError, Line: line, Message: message})
}
