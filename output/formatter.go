package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/jsonq/document"
)

// ErrUnknownFormat is returned by New for an unrecognized format name
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to convert result rows to the target
// format and SetOutput to change the output destination.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows []document.Value) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Options tune the formatters that support them.
type Options struct {
	// Pretty indents JSON output
	Pretty bool
}

// Formats lists the names accepted by New.
var Formats = []string{"json", "jsonl", "csv", "yaml", "table"}

// New returns the formatter registered under name, writing to w.
func New(name string, w io.Writer, opts Options) (Formatter, error) {
	switch strings.ToLower(name) {
	case "json":
		return NewJSONFormatter(w, opts.Pretty), nil
	case "jsonl":
		return NewJSONLinesFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "yaml", "yml":
		return NewYAMLFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, name, strings.Join(Formats, ", "))
	}
}

// valueColumn names the single column used for rows that are not objects.
const valueColumn = "value"

// columns collects member names across rows in first-seen order. Rows may
// be heterogeneous, so every row contributes the names it adds.
func columns(rows []document.Value) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, row := range rows {
		obj, ok := row.AsObject()
		if !ok {
			if !seen[valueColumn] {
				seen[valueColumn] = true
				cols = append(cols, valueColumn)
			}
			continue
		}
		for _, key := range obj.Keys() {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	return cols
}

// cell returns the member of row shown under col.
func cell(row document.Value, col string) document.Value {
	if row.Kind() != document.Object {
		if col == valueColumn {
			return row
		}
		return document.Value{}
	}
	return row.Get(col)
}

// formatValue converts a value to its text form for tabular output
func formatValue(v document.Value) string {
	switch v.Kind() {
	case document.Missing, document.Null:
		return ""
	case document.String:
		s, _ := v.AsString()
		return s
	case document.Number:
		n, _ := v.AsNumber()
		return document.FormatNumber(n)
	case document.Bool:
		b, _ := v.AsBool()
		return fmt.Sprintf("%t", b)
	default:
		// For complex types, use JSON representation
		return v.String()
	}
}
