// Package query provides parsing and execution of SELECT queries over JSON
// documents.
//
// The language is a small SQL subset:
//
//	SELECT <fields> FROM <path> [AS <alias>] [WHERE <predicate>]
//
// A query runs in three stages:
//   - Tokenize turns the query string into tokens ending with TokenEOF
//   - Parser builds a SelectStatement by recursive descent
//   - Execute resolves the FROM path, filters its records and projects them
//
// # Basic Usage
//
// Parse and execute a query against a decoded document:
//
//	doc, err := document.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := query.Run(doc, `SELECT name, meta.city FROM users WHERE meta.age > 25`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Field Paths
//
// Field paths are dot-separated member names such as meta.city. The FROM
// path must lead to an array; each array element is one record. With an
// alias, paths inside the query may be written with the alias as prefix:
//
//	SELECT u.name FROM data.users AS u WHERE u.meta.city = 'Pune'
//
// Projected fields are keyed by the last path segment, so meta.city becomes
// city. Fields that do not resolve on a record are projected as null.
//
// # Filter Operations
//
// WHERE supports =, !=, <, <=, >, >= between a field and a number or string
// literal, combined with AND, OR and parentheses. AND binds tighter than OR.
// A bare word on the right-hand side is a string literal.
//
// Comparisons never fail. Numbers compare numerically and strings compare
// byte-wise; any other pairing, including a field missing from the record,
// is not equal and not ordered:
//
//	nonexistent = 1    false
//	nonexistent != 1   true
//	name > 3           false when name is a string
//
// Existing row sets can be filtered directly:
//
//	stmt, _ := query.Parse(`SELECT * FROM rows WHERE age > 28`)
//	matched := query.ApplyFilter(records, stmt.Where, stmt.From.Alias)
//
// # Errors
//
// Tokenizer failures are *LexError values wrapping ErrUnexpectedCharacter,
// ErrUnterminatedString or ErrInvalidNumber. Parser failures are
// *SyntaxError values, matched by ErrSyntax. A FROM path that does not
// resolve, or resolves to something other than an array, yields a
// *PathError wrapping ErrPathNotFound or ErrSourceNotIterable. All carry the
// byte offset or path needed for a precise message:
//
//	_, err := query.Parse(`SELECT FROM users`)
//	var syn *query.SyntaxError
//	if errors.As(err, &syn) {
//	    fmt.Println(syn.Offset) // 7
//	}
//
// Parse also enforces MaxQueryLength, MaxTokens, MaxExpressionDepth and
// MaxPathLength.
//
// # Concurrency
//
// Every call builds its own lexer and parser and nothing in the package keeps
// state between calls. A parsed SelectStatement is read-only during
// execution and may be executed concurrently against documents that are not
// being modified.
package query
