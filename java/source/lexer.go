package source

import (
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input  string
	pos    int
	line   int
	column int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

// Tokenize returns all tokens of input up to but excluding EOF. Comments
// are kept, whitespace is not.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	newline := false
	for {
		if l.skipWhitespace() {
			newline = true
		}
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tok.NewlineBefore = newline
		newline = false
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) Position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) peek() byte {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// skipWhitespace reports whether a line break was skipped.
func (l *Lexer) skipWhitespace() bool {
	newline := false
	for {
		switch l.peek() {
		case '\n':
			newline = true
			l.advance()
		case ' ', '\t', '\r', '\f':
			l.advance()
		default:
			return newline
		}
	}
}

// NextToken scans the next token, skipping leading whitespace.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	start := l.Position()
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Start: start, End: start}
	}

	ch := l.peek()
	switch {
	case ch == '/' && l.peekN(1) == '/':
		return l.scanLineComment(start)
	case ch == '/' && l.peekN(1) == '*':
		return l.scanBlockComment(start)
	case isJavaLetter(ch):
		return l.scanIdentOrKeyword(start)
	case isDigit(ch), ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	case ch == '\'':
		return l.scanQuoted(start, '\'', TokenCharLiteral)
	case ch == '"':
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(start)
		}
		return l.scanQuoted(start, '"', TokenStringLiteral)
	}
	return l.scanOperator(start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{Kind: kind, Start: start, End: end, Literal: l.input[start.Offset:end.Offset]}
}

func (l *Lexer) scanLineComment(start Position) Token {
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for l.peek() != 0 {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return l.token(TokenComment, start)
		}
		l.advance()
	}
	return l.token(TokenError, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isJavaLetterOrDigit(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	if IsKeyword(tok.Literal) {
		tok.Kind = TokenKeyword
	}
	return tok
}

func (l *Lexer) scanDigits(hex bool) {
	for isDigit(l.peek()) || l.peek() == '_' || (hex && isHexDigit(l.peek())) {
		l.advance()
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	hex := false
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X' || l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		hex = l.peekN(1) == 'x' || l.peekN(1) == 'X'
		l.advanceN(2)
	}

	isFloat := false
	l.scanDigits(hex)
	if l.peek() == '.' && (isDigit(l.peekN(1)) || !isJavaLetter(l.peekN(1))) && l.peekN(1) != '.' {
		isFloat = true
		l.advance()
		l.scanDigits(hex)
	}
	exp := l.peek()
	if (!hex && (exp == 'e' || exp == 'E')) || (hex && (exp == 'p' || exp == 'P')) {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.scanDigits(false)
	}

	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		isFloat = true
		l.advance()
	case 'l', 'L':
		l.advance()
	}

	if isFloat {
		return l.token(TokenFloatLiteral, start)
	}
	return l.token(TokenIntLiteral, start)
}

func (l *Lexer) scanQuoted(start Position, quote byte, kind TokenKind) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != quote && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() != quote {
		return l.token(TokenError, start)
	}
	l.advance()
	return l.token(kind, start)
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for l.peek() != 0 {
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			return l.token(TokenTextBlock, start)
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	return l.token(TokenError, start)
}

// operators lists multi-character operators longest first.
var operators = []string{
	">>>=", "<<=", ">>=", ">>>", "...",
	"::", "->", "==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<",
}

func (l *Lexer) scanOperator(start Position) Token {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) >= len(op) && rest[:len(op)] == op {
			l.advanceN(len(op))
			return l.token(TokenOperator, start)
		}
	}
	switch l.peek() {
	case '(', ')', '{', '}', '[', ']', ';', ',', '.', '@', '~', '?', ':',
		'=', '!', '<', '>', '&', '|', '^', '+', '-', '*', '/', '%':
		l.advance()
		return l.token(TokenOperator, start)
	}
	_, size := utf8.DecodeRuneInString(rest)
	l.advanceN(size)
	return l.token(TokenError, start)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaLetter(ch byte) bool {
	if ch >= utf8.RuneSelf {
		return true
	}
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isJavaLetterOrDigit(ch byte) bool {
	if ch >= utf8.RuneSelf {
		return true
	}
	return isJavaLetter(ch) || isDigit(ch)
}

// IsIdentifier reports whether s is a valid Java identifier.
func IsIdentifier(s string) bool {
	if s == "" || IsKeyword(s) {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
