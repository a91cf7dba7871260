package query

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnexpectedCharacter is returned when the query contains a character
	// outside the supported set.
	ErrUnexpectedCharacter = errors.New("unexpected character")

	// ErrUnterminatedString is returned when a string literal is never closed.
	ErrUnterminatedString = errors.New("unterminated string literal")

	// ErrInvalidNumber is returned when a number literal ends with '.'.
	ErrInvalidNumber = errors.New("invalid number format")

	// ErrSyntax is matched by every *SyntaxError.
	ErrSyntax = errors.New("syntax error")

	// ErrPathNotFound is returned when the FROM path does not resolve.
	ErrPathNotFound = errors.New("path not found")

	// ErrSourceNotIterable is returned when the FROM path resolves to
	// something other than an array.
	ErrSourceNotIterable = errors.New("source is not iterable")
)

// LexError reports a tokenizer failure at a byte offset of the trimmed query.
type LexError struct {
	Err    error // ErrUnexpectedCharacter, ErrUnterminatedString or ErrInvalidNumber
	Char   string
	Offset int
}

func (e *LexError) Error() string {
	if e.Char != "" {
		return fmt.Sprintf("%v %q at position %d", e.Err, e.Char, e.Offset)
	}
	return fmt.Sprintf("%v at position %d", e.Err, e.Offset)
}

func (e *LexError) Unwrap() error { return e.Err }

// SyntaxError reports a parser failure at the offending token.
type SyntaxError struct {
	Message string
	Offset  int
	Found   string    // value of the offending token, "" at end of input
	Type    TokenType // type of the offending token
}

func (e *SyntaxError) Error() string {
	var found string
	switch e.Type {
	case TokenEOF:
		found = "end of query"
	case TokenString:
		found = "'" + strconv.Quote(e.Found) + "'"
	default:
		found = "'" + e.Found + "'"
	}
	return fmt.Sprintf("syntax error: %s at position %d, found %s", e.Message, e.Offset, found)
}

// Is makes errors.Is(err, ErrSyntax) match.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// PathError reports a FROM path that cannot serve as a record source.
type PathError struct {
	Path string
	Err  error // ErrPathNotFound or ErrSourceNotIterable
}

func (e *PathError) Error() string {
	if errors.Is(e.Err, ErrSourceNotIterable) {
		return fmt.Sprintf("%v: '%s' is not an array", e.Err, e.Path)
	}
	return fmt.Sprintf("%v: '%s' does not exist in the document", e.Err, e.Path)
}

func (e *PathError) Unwrap() error { return e.Err }
