package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/amaji/treewalk/lox/token"
)

func TestScanTokens_Punctuation(t *testing.T) {
	toks, diags := New("(){},.-+;*").ScanTokens()
	assert.Empty(t, diags)

	want := []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
		token.EOF,
	}
	assert.Equal(t, len(want), len(toks))
	for i, wt := range want {
		assert.Equal(t, wt, toks[i].Type)
	}
}

func TestScanTokens_TwoCharOperators(t *testing.T) {
	toks, diags := New("!= == <= >= ! < > =").ScanTokens()
	assert.Empty(t, diags)
	want := []token.Type{
		token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.BANG, token.LESS, token.GREATER, token.EQUAL, token.EOF,
	}
	assert.Equal(t, len(want), len(toks))
	for i, wt := range want {
		assert.Equal(t, wt, toks[i].Type)
	}
}

func TestScanTokens_StringLiteral(t *testing.T) {
	toks, diags := New(`"hello world"`).ScanTokens()
	assert.Empty(t, diags)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	_, diags := New(`"oops`).ScanTokens()
	assert.Len(t, diags, 1)
	assert.Equal(t, "Unterminated string.", diags[0].Message)
	assert.True(t, diags[0].AtEOF)
}

func TestScanTokens_Number(t *testing.T) {
	toks, diags := New("123.45").ScanTokens()
	assert.Empty(t, diags)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, 123.45, toks[0].Literal)
}

func TestScanTokens_KeywordsAndIdentifiers(t *testing.T) {
	toks, diags := New("var class fun foo").ScanTokens()
	assert.Empty(t, diags)
	assert.Equal(t, token.VAR, toks[0].Type)
	assert.Equal(t, token.CLASS, toks[1].Type)
	assert.Equal(t, token.FUN, toks[2].Type)
	assert.Equal(t, token.IDENTIFIER, toks[3].Type)
	assert.Equal(t, "foo", toks[3].Lexeme)
}

func TestScanTokens_LineCommentIgnored(t *testing.T) {
	toks, diags := New("1 // comment\n2").ScanTokens()
	assert.Empty(t, diags)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, token.NUMBER, toks[1].Type)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanTokens_UnexpectedCharacter(t *testing.T) {
	_, diags := New("@").ScanTokens()
	assert.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Unexpected character")
}

func TestScanTokens_FullTokenTypeSequence(t *testing.T) {
	toks, diags := New(`var x = "hi" + 1.5;`).ScanTokens()
	assert.Empty(t, diags)

	want := []token.Type{
		token.VAR, token.IDENTIFIER, token.EQUAL, token.STRING, token.PLUS,
		token.NUMBER, token.SEMICOLON, token.EOF,
	}
	got := make([]token.Type, len(toks))
	for i, tok := range toks {
		got[i] = tok.Type
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token type sequence mismatch (-want +got):\n%s", diff)
	}
}
