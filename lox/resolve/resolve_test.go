package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaji/treewalk/lox/ast"
	"github.com/amaji/treewalk/lox/lexer"
	"github.com/amaji/treewalk/lox/parser"
)

func resolveSource(t *testing.T, source string) (Locals, []string) {
	t.Helper()
	toks, lexDiags := lexer.New(source).ScanTokens()
	assert.Empty(t, lexDiags)
	stmts, parseDiags := parser.New(toks).Parse()
	assert.Empty(t, parseDiags)
	locals, diags := Resolve(stmts)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return locals, msgs
}

func TestResolve_BlockShadowingDistance(t *testing.T) {
	src := `
		var a = "global";
		{
			var a = "block";
			print a;
		}
	`
	locals, diags := resolveSource(t, src)
	assert.Empty(t, diags)
	// The `a` read inside the block is the block's own `a`: distance 0.
	found := false
	for expr, dist := range locals {
		if v, ok := expr.(*ast.Variable); ok && v.Name.Lexeme == "a" {
			found = true
			assert.Equal(t, 0, dist)
		}
	}
	assert.True(t, found)
}

func TestResolve_SelfReferenceInInitializerIsAnError(t *testing.T) {
	src := `
		var a = "outer";
		{
			var a = a;
		}
	`
	_, diags := resolveSource(t, src)
	assert.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "own initializer")
}

func TestResolve_RedeclaringNameInSameLocalScopeIsAnError(t *testing.T) {
	src := `
		{
			var a = "first";
			var a = "second";
		}
	`
	_, diags := resolveSource(t, src)
	assert.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "Already a variable with this name in this scope.")
}

func TestResolve_RedeclaringParamNameIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `fun f(a, a) { print a; }`)
	assert.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "Already a variable with this name in this scope.")
}

func TestResolve_RedeclaringNameAtGlobalScopeIsAllowed(t *testing.T) {
	src := `
		var a = "first";
		var a = "second";
	`
	_, diags := resolveSource(t, src)
	assert.Empty(t, diags)
}

func TestResolve_ReturnOutsideFunctionIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `return 1;`)
	assert.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "top-level code")
}

func TestResolve_ReturnValueInInitializerIsAnError(t *testing.T) {
	src := `
		class Foo {
			init() { return 1; }
		}
	`
	_, diags := resolveSource(t, src)
	assert.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "initializer")
}

func TestResolve_ClassInheritingFromItselfIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `class Foo < Foo {}`)
	assert.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "inherit from itself")
}

func TestResolve_ThisOutsideClassIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `print this;`)
	assert.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "'this'")
}

func TestResolve_SuperWithoutSuperclassIsAnError(t *testing.T) {
	src := `
		class Foo {
			bar() { super.bar(); }
		}
	`
	_, diags := resolveSource(t, src)
	assert.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "no superclass")
}

func TestResolve_GlobalReadFromNestedFunctionIsNotInLocals(t *testing.T) {
	src := `
		var a = 1;
		fun f() {
			fun g() {
				print a;
			}
		}
	`
	stmts, parseDiags := parseFor(t, src)
	assert.Empty(t, parseDiags)
	locals, diags := Resolve(stmts)
	assert.Empty(t, diags)
	// "a" is global, so it must NOT appear in the locals side-table.
	for expr := range locals {
		if v, ok := expr.(*ast.Variable); ok {
			assert.NotEqual(t, "a", v.Name.Lexeme)
		}
	}
}

func parseFor(t *testing.T, source string) ([]ast.Stmt, []string) {
	t.Helper()
	toks, lexDiags := lexer.New(source).ScanTokens()
	assert.Empty(t, lexDiags)
	stmts, diags := parser.New(toks).Parse()
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return stmts, msgs
}
