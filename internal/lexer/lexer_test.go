package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rox/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var a = 3;
while (a > 0) {
  print a;
  a = a - 1;
}
// a comment
"foo" + "bar"
1.5 != 2
`

	tests := []struct {
		expectedType   token.Type
		expectedLexeme string
	}{
		{token.Var, "var"},
		{token.Identifier, "a"},
		{token.Equal, "="},
		{token.Number, "3"},
		{token.Semicolon, ";"},
		{token.While, "while"},
		{token.LeftParen, "("},
		{token.Identifier, "a"},
		{token.Greater, ">"},
		{token.Number, "0"},
		{token.RightParen, ")"},
		{token.LeftBrace, "{"},
		{token.Print, "print"},
		{token.Identifier, "a"},
		{token.Semicolon, ";"},
		{token.Identifier, "a"},
		{token.Equal, "="},
		{token.Identifier, "a"},
		{token.Minus, "-"},
		{token.Number, "1"},
		{token.Semicolon, ";"},
		{token.RightBrace, "}"},
		{token.String, "foo"},
		{token.Plus, "+"},
		{token.String, "bar"},
		{token.Number, "1.5"},
		{token.BangEqual, "!="},
		{token.Number, "2"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		assert.Equalf(t, tt.expectedType, tok.Type, "token %d: type", i)
		assert.Equalf(t, tt.expectedLexeme, tok.Lexeme, "token %d: lexeme", i)
	}
	assert.False(t, l.HadError())
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"never closes`)
	tok := l.NextToken()
	assert.Equal(t, token.Error, tok.Type)
	assert.Equal(t, "unterminated string", tok.Lexeme)
	assert.True(t, l.HadError())
}

func TestNumberDotMethodStyle(t *testing.T) {
	l := New("3.sqrt")
	assert.Equal(t, token.Number, l.NextToken().Type)
	dot := l.NextToken()
	assert.Equal(t, token.Dot, dot.Type)
	assert.Equal(t, token.Identifier, l.NextToken().Type)
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("a\nbb")
	first := l.NextToken()
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 1, first.Column)
	second := l.NextToken()
	assert.Equal(t, 2, second.Line)
	assert.Equal(t, 1, second.Column)
}
