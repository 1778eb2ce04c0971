/*
File    : treewalk/lox/resolve/resolve.go
Author  : amaji
*/

// Package resolve performs the static scope-analysis pass over a
// parsed Lox program. It runs after parsing and before evaluation,
// walking every statement and expression once to compute, for each
// Variable/Assign/This/Super reference, how many enclosing block
// scopes separate it from the scope that declares it. The evaluator
// consults this side-table instead of re-walking the environment
// chain at runtime, giving variables proper lexical (rather than
// dynamic) scoping — see spec.md §4.3 and §9.
//
// Grounded in sam-decook-lox/codecrafters/cmd/resolver.go's shape
// (a stack of scopes plus a `locals map[Expr]int` side-table), but
// completed: that repo's parser never produced class/get/set/this/
// super nodes, so its resolver never exercised those paths. Dispatch
// here is by type switch rather than node methods, for the same
// reason lox/ast documents (ast/resolve/interp are separate packages).
package resolve

import (
	"github.com/amaji/treewalk/internal/diag"
	"github.com/amaji/treewalk/lox/ast"
	"github.com/amaji/treewalk/lox/token"
)

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcInitializer
	funcMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Locals maps an expression node (Variable, Assign, This, or Super) to
// the number of enclosing scopes between its use and its declaration.
// An entry's absence means "resolve in the global environment".
type Locals map[ast.Expr]int

// Resolver walks a parsed program once, computing Locals and
// collecting diagnostics for scoping mistakes the evaluator should
// never have to detect at runtime (self-reference in an initializer,
// top-level return, this/super outside a class, and so on).
type Resolver struct {
	scopes      []map[string]bool
	locals      Locals
	diags       []diag.Diagnostic
	currentFunc functionType
	currentCls  classType
}

// New creates a Resolver ready to process top-level statements.
func New() *Resolver {
	return &Resolver{locals: make(Locals)}
}

// Resolve runs the pass over a whole program and returns the computed
// side-table plus any diagnostics raised along the way.
func Resolve(stmts []ast.Stmt) (Locals, []diag.Diagnostic) {
	r := New()
	r.resolveStmts(stmts)
	return r.locals, r.diags
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.VarDecl:
		r.declareName(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.defineName(s.Name.Lexeme)

	case *ast.FunctionDecl:
		r.declareName(s.Name)
		r.defineName(s.Name.Lexeme)
		r.resolveFunction(s, funcFunction)

	case *ast.ClassDecl:
		r.resolveClass(s)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)

	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.ReturnStmt:
		if r.currentFunc == funcNone {
			r.report(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunc == funcInitializer {
				r.report(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	}
}

func (r *Resolver) resolveClass(s *ast.ClassDecl) {
	enclosingCls := r.currentCls
	r.currentCls = classClass

	r.declareName(s.Name)
	r.defineName(s.Name.Lexeme)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.report(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentCls = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range s.Methods {
		ft := funcMethod
		if m.Name.Lexeme == "init" {
			ft = funcInitializer
		}
		r.resolveFunction(m, ft)
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}

	r.currentCls = enclosingCls
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDecl, ft functionType) {
	enclosingFunc := r.currentFunc
	r.currentFunc = ft

	r.beginScope()
	for _, p := range fn.Params {
		r.declareName(p)
		r.defineName(p.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosingFunc
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.report(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.This:
		if r.currentCls == classNone {
			r.report(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")

	case *ast.Super:
		switch r.currentCls {
		case classNone:
			r.report(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.report(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, "super")
	}
}

func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: left unresolved, the evaluator falls back
	// to the global environment.
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declareName(tok token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[tok.Lexeme]; ok {
		r.report(tok, "Already a variable with this name in this scope.")
	}
	scope[tok.Lexeme] = false
}

func (r *Resolver) defineName(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// report records a static-scoping diagnostic at the given token. It
// renders identically to a ParseError since both are reported before
// evaluation begins and both suppress the run (spec.md §4.3/§4.5).
func (r *Resolver) report(tok token.Token, message string) {
	r.diags = append(r.diags, diag.Diagnostic{
		Kind: diag.ResolveError, Line: tok.Line,
		Lexeme: tok.Lexeme, AtEOF: tok.Type == token.EOF,
		Message: message,
	})
}
