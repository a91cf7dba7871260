package query

import (
	"fmt"
	"strings"

	"github.com/vegasq/jsonq/document"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenFrom
	TokenWhere
	TokenAs
	TokenAnd
	TokenOr

	// Literals
	TokenIdent
	TokenString
	TokenNumber

	// Operators
	TokenStar         // *
	TokenGreater      // >
	TokenLess         // <
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenGreaterEqual // >=
	TokenLessEqual    // <=

	// Delimiters
	TokenComma      // ,
	TokenLeftParen  // (
	TokenRightParen // )

	// Special
	TokenEOF
)

var tokenNames = map[TokenType]string{
	TokenSelect:       "SELECT",
	TokenFrom:         "FROM",
	TokenWhere:        "WHERE",
	TokenAs:           "AS",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenIdent:        "IDENTIFIER",
	TokenString:       "STRING_LITERAL",
	TokenNumber:       "NUMBER_LITERAL",
	TokenStar:         "*",
	TokenGreater:      ">",
	TokenLess:         "<",
	TokenEqual:        "=",
	TokenNotEqual:     "!=",
	TokenGreaterEqual: ">=",
	TokenLessEqual:    "<=",
	TokenComma:        ",",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenEOF:          "EOF",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsComparison reports whether t is one of the six comparison operators.
func (t TokenType) IsComparison() bool {
	switch t {
	case TokenEqual, TokenNotEqual, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual:
		return true
	}
	return false
}

// Token represents a lexical token
type Token struct {
	Type   TokenType
	Value  string
	Offset int // byte index in the trimmed query
}

// SelectStatement represents a parsed query
type SelectStatement struct {
	All    bool     // SELECT *
	Fields []string // projected field paths in query order, duplicates kept
	From   FromClause
	Where  Expression // nil when the query has no WHERE clause
}

// FromClause names the collection a query reads from
type FromClause struct {
	Path  string // dotted path into the document
	Alias string // "" when no AS clause was given
}

// String renders the statement as canonical query text.
func (s *SelectStatement) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if s.All {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(s.Fields, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(s.From.Path)
	if s.From.Alias != "" {
		b.WriteString(" AS ")
		b.WriteString(s.From.Alias)
	}
	if s.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(s.Where.String())
	}
	return b.String()
}

// Expression represents a boolean expression in the WHERE clause
type Expression interface {
	// Evaluate reports whether rec satisfies the expression.
	Evaluate(rec Record) bool
	// String renders the expression as query text.
	String() string
}

// LogicalExpr represents an AND/OR of two expressions
type LogicalExpr struct {
	Left     Expression
	Operator TokenType // TokenAnd or TokenOr
	Right    Expression
}

// ComparisonExpr compares a field of the current record with a literal
type ComparisonExpr struct {
	Field    string // dotted field path, possibly alias-prefixed
	Operator TokenType
	Value    document.Value // number or string
}

// Evaluate evaluates both sides and combines them. Both sides are always
// evaluated.
func (l *LogicalExpr) Evaluate(rec Record) bool {
	left := l.Left.Evaluate(rec)
	right := l.Right.Evaluate(rec)

	switch l.Operator {
	case TokenAnd:
		return left && right
	case TokenOr:
		return left || right
	default:
		return false
	}
}

func (l *LogicalExpr) String() string {
	return "(" + l.Left.String() + " " + l.Operator.String() + " " + l.Right.String() + ")"
}

// Evaluate evaluates a comparison expression
func (c *ComparisonExpr) Evaluate(rec Record) bool {
	return compare(rec.Lookup(c.Field), c.Operator, c.Value)
}

func (c *ComparisonExpr) String() string {
	return c.Field + " " + c.Operator.String() + " " + formatLiteral(c.Value)
}

func formatLiteral(v document.Value) string {
	if s, ok := v.AsString(); ok {
		if strings.ContainsRune(s, '"') {
			return "'" + s + "'"
		}
		return `"` + s + `"`
	}
	return v.String()
}
