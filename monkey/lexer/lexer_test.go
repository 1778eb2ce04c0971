package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaji/treewalk/monkey/token"
)

func TestNextToken_Basics(t *testing.T) {
	input := `let five = 5;
let add = fn(x, y) {
  x + y;
};
let result = add(five, 10);
!-/*5;
5 < 10 > 5;
if (5 < 10) {
	return true;
} else {
	return false;
}
10 == 10;
10 != 9;
"foobar"
"foo bar"
[1, 2];
{"a": 1}
`

	want := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON,
		token.LET, token.IDENT, token.ASSIGN, token.FUNCTION, token.LPAREN, token.IDENT, token.COMMA, token.IDENT, token.RPAREN,
		token.LBRACE, token.IDENT, token.PLUS, token.IDENT, token.SEMICOLON, token.RBRACE, token.SEMICOLON,
		token.LET, token.IDENT, token.ASSIGN, token.IDENT, token.LPAREN, token.IDENT, token.COMMA, token.INT, token.RPAREN, token.SEMICOLON,
		token.BANG, token.MINUS, token.SLASH, token.ASTERISK, token.INT, token.SEMICOLON,
		token.INT, token.LT, token.INT, token.GT, token.INT, token.SEMICOLON,
		token.IF, token.LPAREN, token.INT, token.LT, token.INT, token.RPAREN, token.LBRACE,
		token.RETURN, token.TRUE, token.SEMICOLON, token.RBRACE, token.ELSE, token.LBRACE,
		token.RETURN, token.FALSE, token.SEMICOLON, token.RBRACE,
		token.INT, token.EQ, token.INT, token.SEMICOLON,
		token.INT, token.NOT_EQ, token.INT, token.SEMICOLON,
		token.STRING, token.STRING,
		token.LBRACKET, token.INT, token.COMMA, token.INT, token.RBRACKET, token.SEMICOLON,
		token.LBRACE, token.STRING, token.COLON, token.INT, token.RBRACE,
		token.EOF,
	}

	l := New(input)
	for i, wt := range want {
		tok := l.NextToken()
		assert.Equal(t, wt, tok.Type, "token %d", i)
	}
}

func TestNextToken_Strings(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	assert.Equal(t, token.STRING, tok.Type)
	assert.Equal(t, "hello world", tok.Literal)
}
