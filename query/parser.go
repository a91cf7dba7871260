package query

import (
	"fmt"
	"strconv"

	"github.com/vegasq/jsonq/document"
)

// Parser parses a token sequence into a SelectStatement
type Parser struct {
	tokens       []Token
	pos          int
	depthCounter *ExpressionDepthCounter
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:       tokens,
		pos:          0,
		depthCounter: NewExpressionDepthCounter(),
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		offset := 0
		if n := len(p.tokens); n > 0 {
			last := p.tokens[n-1]
			offset = last.Offset + len(last.Value)
		}
		return Token{Type: TokenEOF, Value: "", Offset: offset}
	}
	return p.tokens[p.pos]
}

// advance moves past the current token and returns it. It never moves past EOF.
func (p *Parser) advance() Token {
	tok := p.current()
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it has the given type, and otherwise
// fails with message pinned at the current token
func (p *Parser) expect(tokType TokenType, message string) (Token, error) {
	if p.current().Type != tokType {
		return Token{}, p.syntaxError(message)
	}
	return p.advance(), nil
}

func (p *Parser) syntaxError(message string) error {
	tok := p.current()
	return &SyntaxError{Message: message, Offset: tok.Offset, Found: tok.Value, Type: tok.Type}
}

// Parse tokenizes and parses a query
func Parse(query string) (*SelectStatement, error) {
	// Validate query length
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}

	// Validate token count
	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	return NewParser(tokens).Parse()
}

// Parse parses: SELECT fields FROM path [AS alias] [WHERE expr]
func (p *Parser) Parse() (*SelectStatement, error) {
	if _, err := p.expect(TokenSelect, "expected SELECT"); err != nil {
		return nil, err
	}

	stmt := &SelectStatement{}
	if p.current().Type == TokenStar {
		p.advance()
		stmt.All = true
	} else {
		fields, err := p.parseFieldList()
		if err != nil {
			return nil, err
		}
		stmt.Fields = fields
	}

	if _, err := p.expect(TokenFrom, "expected FROM after field list"); err != nil {
		return nil, err
	}

	source, err := p.expect(TokenIdent, "expected data source path after FROM")
	if err != nil {
		return nil, err
	}
	if err := ValidatePath(source.Value); err != nil {
		return nil, err
	}
	stmt.From.Path = source.Value

	if p.current().Type == TokenAs {
		p.advance()
		alias, err := p.expect(TokenIdent, "expected alias after AS")
		if err != nil {
			return nil, err
		}
		stmt.From.Alias = alias.Value
	}

	// Parse WHERE clause (optional)
	if p.current().Type == TokenWhere {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	if _, err := p.expect(TokenEOF, "expected end of query"); err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseFieldList parses: identifier (, identifier)*
func (p *Parser) parseFieldList() ([]string, error) {
	var fields []string
	for {
		field, err := p.expect(TokenIdent, "expected field name")
		if err != nil {
			return nil, err
		}
		if err := ValidatePath(field.Value); err != nil {
			return nil, err
		}
		fields = append(fields, field.Value)

		if p.current().Type != TokenComma {
			return fields, nil
		}
		p.advance()
	}
}

// parseOr parses OR expressions (lowest precedence)
func (p *Parser) parseOr() (Expression, error) {
	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{
			Left:     left,
			Operator: TokenOr,
			Right:    right,
		}
	}

	return left, nil
}

// parseAnd parses AND expressions (higher precedence than OR)
func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{
			Left:     left,
			Operator: TokenAnd,
			Right:    right,
		}
	}

	return left, nil
}

// parseComparison parses a parenthesized expression or field op literal
func (p *Parser) parseComparison() (Expression, error) {
	if p.current().Type == TokenLeftParen {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	}

	field, err := p.expect(TokenIdent, "expected field name")
	if err != nil {
		return nil, err
	}
	if err := ValidatePath(field.Value); err != nil {
		return nil, err
	}

	operator := p.current().Type
	if !operator.IsComparison() {
		return nil, p.syntaxError("expected comparison operator")
	}
	p.advance()

	value, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}

	return &ComparisonExpr{
		Field:    field.Value,
		Operator: operator,
		Value:    value,
	}, nil
}

// parseLiteral parses a number, string or bare identifier. Numbers are
// converted here, once; everything else stays a string.
func (p *Parser) parseLiteral() (document.Value, error) {
	tok := p.current()
	switch tok.Type {
	case TokenNumber:
		n, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return document.Value{}, &SyntaxError{
				Message: fmt.Sprintf("invalid number: %v", err),
				Offset:  tok.Offset,
				Found:   tok.Value,
				Type:    tok.Type,
			}
		}
		p.advance()
		return document.NumberValue(n), nil
	case TokenString, TokenIdent:
		p.advance()
		return document.StringValue(tok.Value), nil
	default:
		return document.Value{}, p.syntaxError("expected literal value")
	}
}
