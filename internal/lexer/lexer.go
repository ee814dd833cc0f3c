// Package lexer implements the scanner: a UTF-safe tokenizer that turns
// source text into a finite sequence of tokens ending in exactly one EOF.
package lexer

import (
	"rox/internal/token"
)

type Lexer struct {
	input        string
	position     int // current position in input (points to current char)
	readPosition int // current reading position in input (after current char)
	ch           byte
	line         int
	column       int

	hadError bool
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// HadError reports whether any Error token has been produced so far. It is
// sticky: once set it never clears for the lifetime of the Lexer.
func (l *Lexer) HadError() bool {
	return l.hadError
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken scans and returns the next token. Calling it again after an EOF
// token keeps returning EOF.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	startLine := l.line
	startColumn := l.column

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Line: startLine, Column: startColumn}
	}

	if isLetter(l.ch) {
		lit := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(lit), Lexeme: lit, Line: startLine, Column: startColumn}
	}
	if isDigit(l.ch) {
		lit := l.readNumber()
		return token.Token{Type: token.Number, Lexeme: lit, Line: startLine, Column: startColumn}
	}

	var tok token.Token
	switch l.ch {
	case '(':
		tok = l.simple(token.LeftParen)
	case ')':
		tok = l.simple(token.RightParen)
	case '{':
		tok = l.simple(token.LeftBrace)
	case '}':
		tok = l.simple(token.RightBrace)
	case ',':
		tok = l.simple(token.Comma)
	case '.':
		tok = l.simple(token.Dot)
	case '-':
		tok = l.simple(token.Minus)
	case '+':
		tok = l.simple(token.Plus)
	case ';':
		tok = l.simple(token.Semicolon)
	case '*':
		tok = l.simple(token.Star)
	case '/':
		tok = l.simple(token.Slash)
	case '!':
		tok = l.twoChar('=', token.BangEqual, token.Bang)
	case '=':
		tok = l.twoChar('=', token.EqualEqual, token.Equal)
	case '<':
		tok = l.twoChar('=', token.LessEqual, token.Less)
	case '>':
		tok = l.twoChar('=', token.GreaterEqual, token.Greater)
	case '"':
		lit, ok := l.readString()
		if !ok {
			l.hadError = true
			tok = token.Token{Type: token.Error, Lexeme: "unterminated string"}
		} else {
			tok = token.Token{Type: token.String, Lexeme: lit}
		}
	default:
		l.hadError = true
		ch := l.ch
		l.readChar()
		return token.Token{Type: token.Error, Lexeme: "unexpected character '" + string(ch) + "'", Line: startLine, Column: startColumn}
	}

	tok.Line = startLine
	tok.Column = startColumn
	return tok
}

// simple consumes the current one-character token and advances past it.
func (l *Lexer) simple(t token.Type) token.Token {
	lit := string(l.ch)
	l.readChar()
	return token.Token{Type: t, Lexeme: lit}
}

// twoChar recognizes the family of operators disambiguated by one
// character of lookahead (!= == <= >=).
func (l *Lexer) twoChar(second byte, two, one token.Type) token.Token {
	first := l.ch
	if l.peekChar() == second {
		l.readChar()
		l.readChar()
		return token.Token{Type: two, Lexeme: string(first) + string(second)}
	}
	l.readChar()
	return token.Token{Type: one, Lexeme: string(first)}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\n':
			l.line++
			l.column = 0
			l.readChar()
		case '/':
			if l.peekChar() == '/' {
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber scans a run of digits with at most one '.'. A '.' not
// followed by a digit is left unconsumed so it scans as its own Dot token
// (e.g. "3.sqrt" is NUMBER(3) DOT IDENTIFIER(sqrt), not a malformed float).
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

func (l *Lexer) readString() (string, bool) {
	l.readChar() // skip opening quote
	position := l.position
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return "", false
		}
		l.readChar()
	}
	lit := l.input[position:l.position]
	l.readChar() // skip closing quote
	return lit, true
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
