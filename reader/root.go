package reader

import (
	"errors"
	"fmt"

	"github.com/theory/jsonpath"
	"github.com/vegasq/jsonq/document"
)

var (
	// ErrInvalidRoot is returned for a JSONPath expression that does not parse
	ErrInvalidRoot = errors.New("invalid root expression")

	// ErrRootNotFound is returned when a root expression selects nothing
	ErrRootNotFound = errors.New("root expression matched nothing")
)

// SelectRoot narrows doc to the nodes selected by a JSONPath expression
// such as "$.data" or "$.items[0]". A single match becomes the new document;
// several matches are collected into an array in selection order.
//
// Objects in the result have sorted member names.
func SelectRoot(doc document.Value, expr string) (document.Value, error) {
	if expr == "" {
		return doc, nil
	}

	path, err := jsonpath.Parse(expr)
	if err != nil {
		return document.Value{}, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, expr, err)
	}

	nodes := path.Select(doc.Interface())
	switch len(nodes) {
	case 0:
		return document.Value{}, fmt.Errorf("%w: %s", ErrRootNotFound, expr)
	case 1:
		return document.FromInterface(nodes[0])
	default:
		items := make([]interface{}, len(nodes))
		for i, node := range nodes {
			items[i] = node
		}
		return document.FromInterface(items)
	}
}
