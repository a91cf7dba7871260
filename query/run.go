package query

import (
	"github.com/vegasq/jsonq/document"
)

// Run parses q and executes it against doc. The result is an array value
// holding one entry per matching record.
func Run(doc document.Value, q string) (document.Value, error) {
	stmt, err := Parse(q)
	if err != nil {
		return document.Value{}, err
	}

	results, err := Execute(doc, stmt)
	if err != nil {
		return document.Value{}, err
	}
	return document.ArrayValue(results), nil
}

// RunJSON decodes data as a JSON document, runs q against it and returns the
// result encoded as compact JSON.
func RunJSON(data []byte, q string) ([]byte, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return nil, err
	}

	result, err := Run(doc, q)
	if err != nil {
		return nil, err
	}
	return result.MarshalJSON()
}
