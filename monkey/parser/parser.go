/*
File    : treewalk/monkey/parser/parser.go
Author  : amaji
*/

// Package parser implements a Pratt (precedence-climbing) parser for
// Monkey, the standard approach for an expression-oriented grammar
// where `if`, function literals, and calls are all expressions rather
// than statements. Unlike lox/parser, there is no synchronize-based
// recovery: Monkey's grammar is small enough, and spec.md §4.2 scopes
// Monkey's parser to collecting diagnostics without Lox's class/get/
// set surface, so a first syntax error here simply stops the current
// statement and the parser moves on to the next token past it.
package parser

import (
	"fmt"
	"strconv"

	"github.com/amaji/treewalk/internal/diag"
	"github.com/amaji/treewalk/monkey/ast"
	"github.com/amaji/treewalk/monkey/lexer"
	"github.com/amaji/treewalk/monkey/token"
)

type precedence int

const (
	lowest precedence = iota
	equalsP
	lessgreaterP
	sumP
	productP
	prefixP
	callP
	indexP
)

var precedences = map[token.Type]precedence{
	token.EQ:       equalsP,
	token.NOT_EQ:   equalsP,
	token.LT:       lessgreaterP,
	token.GT:       lessgreaterP,
	token.PLUS:     sumP,
	token.MINUS:    sumP,
	token.SLASH:    productP,
	token.ASTERISK: productP,
	token.LPAREN:   callP,
	token.LBRACKET: indexP,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser builds a Monkey AST from a token stream with two-token
// lookahead, the classic Pratt-parser shape.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	diags []diag.Diagnostic

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New creates a Parser over source, priming both lookahead tokens.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source)}

	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntegerLiteral,
		token.STRING:   p.parseStringLiteral,
		token.BANG:     p.parsePrefixExpr,
		token.MINUS:    p.parsePrefixExpr,
		token.TRUE:     p.parseBoolean,
		token.FALSE:    p.parseBoolean,
		token.LPAREN:   p.parseGroupedExpr,
		token.IF:       p.parseIfExpr,
		token.FUNCTION: p.parseFunctionLiteral,
		token.LBRACKET: p.parseArrayLiteral,
		token.LBRACE:   p.parseHashLiteral,
	}
	p.infixFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseInfixExpr,
		token.MINUS:    p.parseInfixExpr,
		token.SLASH:    p.parseInfixExpr,
		token.ASTERISK: p.parseInfixExpr,
		token.EQ:       p.parseInfixExpr,
		token.NOT_EQ:   p.parseInfixExpr,
		token.LT:       p.parseInfixExpr,
		token.GT:       p.parseInfixExpr,
		token.LPAREN:   p.parseCallExpr,
		token.LBRACKET: p.parseIndexExpr,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// ParseProgram parses the full token stream and returns the program
// plus any diagnostics collected along the way.
func (p *Parser) ParseProgram() (*ast.Program, []diag.Diagnostic) {
	prog := &ast.Program{}
	for p.cur.Type != token.EOF {
		if s := p.parseStatement(); s != nil {
			prog.Stmts = append(prog.Stmts, s)
		}
		p.nextToken()
	}
	return prog, p.diags
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case token.LET:
		return p.parseLetStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	tok := p.cur
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(lowest)
	if fl, ok := value.(*ast.FunctionLiteral); ok {
		fl.Name = name.Value
	}
	if p.peek.Type == token.SEMICOLON {
		p.nextToken()
	}
	return &ast.LetStmt{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	tok := p.cur
	p.nextToken()
	value := p.parseExpression(lowest)
	if p.peek.Type == token.SEMICOLON {
		p.nextToken()
	}
	return &ast.ReturnStmt{Token: tok, Value: value}
}

func (p *Parser) parseExpressionStmt() ast.Stmt {
	tok := p.cur
	expr := p.parseExpression(lowest)
	if p.peek.Type == token.SEMICOLON {
		p.nextToken()
	}
	return &ast.ExpressionStmt{Token: tok, Expr: expr}
}

func (p *Parser) parseExpression(prec precedence) ast.Expr {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.report(fmt.Sprintf("no prefix parse function for %s found.", p.cur.Type))
		return nil
	}
	left := prefix()

	for p.peek.Type != token.SEMICOLON && prec < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	return &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expr {
	v, err := strconv.ParseInt(p.cur.Literal, 10, 64)
	if err != nil {
		p.report("could not parse " + p.cur.Literal + " as integer.")
		return nil
	}
	return &ast.IntegerLiteral{Token: p.cur, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	return &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseBoolean() ast.Expr {
	return &ast.Boolean{Token: p.cur, Value: p.cur.Type == token.TRUE}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	tok := p.cur
	p.nextToken()
	right := p.parseExpression(prefixP)
	return &ast.PrefixExpr{Token: tok, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.InfixExpr{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken()
	expr := p.parseExpression(lowest)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpr() ast.Expr {
	tok := p.cur
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(lowest)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	consequence := p.parseBlockStmt()

	expr := &ast.IfExpr{Token: tok, Condition: cond, Consequence: consequence}
	if p.peek.Type == token.ELSE {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		expr.Alternative = p.parseBlockStmt()
	}
	return expr
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	block := &ast.BlockStmt{Token: p.cur}
	p.nextToken()
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		if s := p.parseStatement(); s != nil {
			block.Stmts = append(block.Stmts, s)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseFunctionLiteral() ast.Expr {
	tok := p.cur
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseFunctionParams()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStmt()
	return &ast.FunctionLiteral{Token: tok, Params: params, Body: body}
}

func (p *Parser) parseFunctionParams() []*ast.Identifier {
	var params []*ast.Identifier
	if p.peek.Type == token.RPAREN {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
	for p.peek.Type == token.COMMA {
		p.nextToken()
		p.nextToken()
		params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseCallExpr(fn ast.Expr) ast.Expr {
	tok := p.cur
	args := p.parseExprList(token.RPAREN)
	return &ast.CallExpr{Token: tok, Function: fn, Arguments: args}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	tok := p.cur
	elements := p.parseExprList(token.RBRACKET)
	return &ast.ArrayLiteral{Token: tok, Elements: elements}
}

func (p *Parser) parseExprList(end token.Type) []ast.Expr {
	var list []ast.Expr
	if p.peek.Type == end {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(lowest))
	for p.peek.Type == token.COMMA {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(lowest))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseIndexExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	p.nextToken()
	index := p.parseExpression(lowest)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.IndexExpr{Token: tok, Left: left, Index: index}
}

func (p *Parser) parseHashLiteral() ast.Expr {
	tok := p.cur
	pairs := make(map[ast.Expr]ast.Expr)
	for p.peek.Type != token.RBRACE {
		p.nextToken()
		key := p.parseExpression(lowest)
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(lowest)
		pairs[key] = value
		if p.peek.Type != token.RBRACE && !p.expectPeek(token.COMMA) {
			return nil
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.HashLiteral{Token: tok, Pairs: pairs}
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peek.Type == t {
		p.nextToken()
		return true
	}
	p.report(fmt.Sprintf("expected next token to be %s, got %s instead.", t, p.peek.Type))
	return false
}

func (p *Parser) peekPrecedence() precedence {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return lowest
}

func (p *Parser) curPrecedence() precedence {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return lowest
}

func (p *Parser) report(message string) {
	p.diags = append(p.diags, diag.Diagnostic{
		Kind: diag.ParseError, Line: p.cur.Line,
		Lexeme: p.cur.Literal, AtEOF: p.cur.Type == token.EOF,
		Message: message,
	})
}
