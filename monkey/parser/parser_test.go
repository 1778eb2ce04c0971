package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaji/treewalk/monkey/ast"
)

func TestParseProgram_LetAndReturn(t *testing.T) {
	prog, diags := New(`
		let x = 5;
		let y = true;
		return x;
	`).ParseProgram()
	assert.Empty(t, diags)
	assert.Len(t, prog.Stmts, 3)

	let1, ok := prog.Stmts[0].(*ast.LetStmt)
	assert.True(t, ok)
	assert.Equal(t, "x", let1.Name.Value)

	_, ok = prog.Stmts[2].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParseProgram_OperatorPrecedence(t *testing.T) {
	prog, diags := New(`1 + 2 * 3;`).ParseProgram()
	assert.Empty(t, diags)
	es := prog.Stmts[0].(*ast.ExpressionStmt)
	infix := es.Expr.(*ast.InfixExpr)
	assert.Equal(t, "+", infix.Operator)
	_, ok := infix.Right.(*ast.InfixExpr)
	assert.True(t, ok, "right side of + should be the * sub-expression")
}

func TestParseProgram_IfExpressionWithElse(t *testing.T) {
	prog, diags := New(`if (x < y) { x } else { y };`).ParseProgram()
	assert.Empty(t, diags)
	es := prog.Stmts[0].(*ast.ExpressionStmt)
	ifExpr := es.Expr.(*ast.IfExpr)
	assert.NotNil(t, ifExpr.Consequence)
	assert.NotNil(t, ifExpr.Alternative)
}

func TestParseProgram_FunctionLiteralParams(t *testing.T) {
	prog, diags := New(`fn(x, y) { x + y; };`).ParseProgram()
	assert.Empty(t, diags)
	es := prog.Stmts[0].(*ast.ExpressionStmt)
	fn := es.Expr.(*ast.FunctionLiteral)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, "x", fn.Params[0].Value)
	assert.Equal(t, "y", fn.Params[1].Value)
}

func TestParseProgram_LetBindsFunctionLiteralName(t *testing.T) {
	prog, diags := New(`let add = fn(x, y) { x + y; };`).ParseProgram()
	assert.Empty(t, diags)
	let := prog.Stmts[0].(*ast.LetStmt)
	fn := let.Value.(*ast.FunctionLiteral)
	assert.Equal(t, "add", fn.Name)
}

func TestParseProgram_CallExpressionArguments(t *testing.T) {
	prog, diags := New(`add(1, 2 * 3, 4 + 5);`).ParseProgram()
	assert.Empty(t, diags)
	es := prog.Stmts[0].(*ast.ExpressionStmt)
	call := es.Expr.(*ast.CallExpr)
	assert.Equal(t, "add", call.Function.(*ast.Identifier).Value)
	assert.Len(t, call.Arguments, 3)
}

func TestParseProgram_ArrayAndIndex(t *testing.T) {
	prog, diags := New(`[1, 2, 3][1 + 1];`).ParseProgram()
	assert.Empty(t, diags)
	es := prog.Stmts[0].(*ast.ExpressionStmt)
	idx := es.Expr.(*ast.IndexExpr)
	arr := idx.Left.(*ast.ArrayLiteral)
	assert.Len(t, arr.Elements, 3)
}

func TestParseProgram_HashLiteral(t *testing.T) {
	prog, diags := New(`{"one": 1, "two": 2};`).ParseProgram()
	assert.Empty(t, diags)
	es := prog.Stmts[0].(*ast.ExpressionStmt)
	hash := es.Expr.(*ast.HashLiteral)
	assert.Len(t, hash.Pairs, 2)
}

func TestParseProgram_MissingClosingParenReportsDiagnostic(t *testing.T) {
	_, diags := New(`(1 + 2;`).ParseProgram()
	assert.NotEmpty(t, diags)
}
