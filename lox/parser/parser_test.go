package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaji/treewalk/lox/ast"
	"github.com/amaji/treewalk/lox/lexer"
)

func parse(t *testing.T, source string) ([]ast.Stmt, []string) {
	t.Helper()
	toks, lexDiags := lexer.New(source).ScanTokens()
	assert.Empty(t, lexDiags)
	stmts, diags := New(toks).Parse()
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return stmts, msgs
}

func TestParse_VarDecl(t *testing.T) {
	stmts, diags := parse(t, `var a = 1;`)
	assert.Empty(t, diags)
	assert.Len(t, stmts, 1)
	v, ok := stmts[0].(*ast.VarDecl)
	assert.True(t, ok)
	assert.Equal(t, "a", v.Name.Lexeme)
	lit, ok := v.Initializer.(*ast.Literal)
	assert.True(t, ok)
	assert.Equal(t, 1.0, lit.Value)
}

func TestParse_BinaryPrecedence(t *testing.T) {
	stmts, diags := parse(t, `1 + 2 * 3;`)
	assert.Empty(t, diags)
	es := stmts[0].(*ast.ExpressionStmt)
	bin := es.Expr.(*ast.Binary)
	// top-level operator should be + (lower precedence than *)
	assert.Equal(t, "+", bin.Op.Lexeme)
	_, ok := bin.Right.(*ast.Binary)
	assert.True(t, ok, "right side of + should be the * sub-expression")
}

func TestParse_ClassWithSuperclassAndMethods(t *testing.T) {
	src := `
		class Animal {
			speak() { print "..."; }
		}
		class Dog < Animal {
			speak() { print "Woof"; }
		}
	`
	stmts, diags := parse(t, src)
	assert.Empty(t, diags)
	assert.Len(t, stmts, 2)

	dog := stmts[1].(*ast.ClassDecl)
	assert.Equal(t, "Dog", dog.Name.Lexeme)
	assert.NotNil(t, dog.Superclass)
	assert.Equal(t, "Animal", dog.Superclass.Name.Lexeme)
	assert.Len(t, dog.Methods, 1)
	assert.Equal(t, "speak", dog.Methods[0].Name.Lexeme)
}

func TestParse_GetSetThisSuper(t *testing.T) {
	src := `
		class Base { init() { this.x = 1; } }
		class Sub < Base {
			init() { super.init(); this.y = this.x + 1; }
		}
	`
	_, diags := parse(t, src)
	assert.Empty(t, diags)
}

func TestParse_ForDesugarsToWhile(t *testing.T) {
	stmts, diags := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	assert.Empty(t, diags)
	block, ok := stmts[0].(*ast.Block)
	assert.True(t, ok, "for loop should desugar into a block")
	assert.Len(t, block.Stmts, 2)
	_, ok = block.Stmts[0].(*ast.VarDecl)
	assert.True(t, ok)
	_, ok = block.Stmts[1].(*ast.While)
	assert.True(t, ok)
}

func TestParse_InvalidAssignmentTargetReportsButDoesNotAbort(t *testing.T) {
	_, diags := parse(t, `1 + 2 = 3;`)
	assert.NotEmpty(t, diags)
}

func TestParse_SynchronizeRecoversAtNextStatement(t *testing.T) {
	stmts, diags := parse(t, `1 + ; var b = 2;`)
	assert.NotEmpty(t, diags)
	found := false
	for _, s := range stmts {
		if v, ok := s.(*ast.VarDecl); ok && v.Name.Lexeme == "b" {
			found = true
		}
	}
	assert.True(t, found, "parser should recover at the ';' and still parse the second declaration")
}
