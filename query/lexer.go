package query

import (
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes query strings
type Lexer struct {
	input   string
	pos     int  // offset of ch
	readPos int  // offset of the next character
	ch      byte // current character, valid while pos < len(input)
}

// NewLexer creates a new lexer over the trimmed input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: strings.TrimSpace(input)}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input)
		return
	}
	l.ch = l.input[l.readPos]
	l.pos = l.readPos
	l.readPos++
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isSpace(l.ch) {
		l.readChar()
	}
}

// readString reads a quoted string. The value is the raw text between the
// quotes; there are no escape sequences.
func (l *Lexer) readString() (Token, error) {
	start := l.pos
	quote := l.ch
	l.readChar() // skip opening quote

	for !l.atEnd() && l.ch != quote {
		l.readChar()
	}

	if l.atEnd() {
		return Token{}, &LexError{Err: ErrUnterminatedString, Offset: start}
	}

	value := l.input[start+1 : l.pos]
	l.readChar() // skip closing quote
	return Token{Type: TokenString, Value: value, Offset: start}, nil
}

// readNumber reads digits with at most one decimal point
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	sawDot := false

	for !l.atEnd() {
		if isDigit(l.ch) {
			l.readChar()
		} else if l.ch == '.' && !sawDot {
			sawDot = true
			l.readChar()
		} else {
			break
		}
	}

	value := l.input[start:l.pos]
	if strings.HasSuffix(value, ".") {
		return Token{}, &LexError{Err: ErrInvalidNumber, Char: value, Offset: l.pos - 1}
	}
	return Token{Type: TokenNumber, Value: value, Offset: start}, nil
}

// readIdentifier reads an identifier or keyword. Dots are part of the
// identifier, so a field path like meta.city is a single token.
func (l *Lexer) readIdentifier() Token {
	start := l.pos
	for !l.atEnd() && (isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '.') {
		l.readChar()
	}

	value := l.input[start:l.pos]
	return Token{Type: identifierType(value), Value: value, Offset: start}
}

var twoCharTokens = map[byte]TokenType{
	'!': TokenNotEqual,
	'>': TokenGreaterEqual,
	'<': TokenLessEqual,
}

var singleCharTokens = map[byte]TokenType{
	'*': TokenStar,
	'>': TokenGreater,
	'<': TokenLess,
	'=': TokenEqual,
	',': TokenComma,
	'(': TokenLeftParen,
	')': TokenRightParen,
}

// NextToken returns the next token. After the end of input it keeps
// returning TokenEOF.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	start := l.pos
	if l.atEnd() {
		return Token{Type: TokenEOF, Value: "", Offset: len(l.input)}, nil
	}

	// two-character operators win over their one-character prefixes
	if l.peekChar() == '=' {
		if typ, ok := twoCharTokens[l.ch]; ok {
			value := l.input[start : start+2]
			l.readChar()
			l.readChar()
			return Token{Type: typ, Value: value, Offset: start}, nil
		}
	}

	if typ, ok := singleCharTokens[l.ch]; ok {
		value := string(l.ch)
		l.readChar()
		return Token{Type: typ, Value: value, Offset: start}, nil
	}

	switch {
	case l.ch == '"' || l.ch == '\'':
		return l.readString()
	case isDigit(l.ch):
		return l.readNumber()
	case isLetter(l.ch) || l.ch == '_':
		return l.readIdentifier(), nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[start:])
	return Token{}, &LexError{Err: ErrUnexpectedCharacter, Char: string(r), Offset: start}
}

var keywords = map[string]TokenType{
	"SELECT": TokenSelect,
	"FROM":   TokenFrom,
	"WHERE":  TokenWhere,
	"AS":     TokenAs,
	"AND":    TokenAnd,
	"OR":     TokenOr,
}

// identifierType determines if an identifier is a keyword
func identifierType(ident string) TokenType {
	if tokType, ok := keywords[strings.ToUpper(ident)]; ok {
		return tokType
	}
	return TokenIdent
}

func isDigit(ch byte) bool  { return '0' <= ch && ch <= '9' }
func isLetter(ch byte) bool { return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' }

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Tokenize returns all tokens from the input, ending with exactly one
// TokenEOF. It stops at the first lexical error.
func Tokenize(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}
