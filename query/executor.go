package query

import (
	"strings"

	"github.com/vegasq/jsonq/document"
)

// Record is a single element of the source collection as seen by WHERE and
// projection. Field paths starting with "Alias." are resolved with that
// prefix removed.
type Record struct {
	Value document.Value
	Alias string
}

// Lookup resolves a field path against the record. A path that does not
// resolve yields the missing value.
func (r Record) Lookup(path string) document.Value {
	if r.Alias != "" && strings.HasPrefix(path, r.Alias+".") {
		path = path[len(r.Alias)+1:]
	}
	v, _ := r.Value.Lookup(path)
	return v
}

// Execute runs stmt against doc and returns the projected records in source
// order. doc is never modified; with SELECT * the returned records share
// structure with it.
func Execute(doc document.Value, stmt *SelectStatement) ([]document.Value, error) {
	source, err := resolveSource(doc, stmt.From.Path)
	if err != nil {
		return nil, err
	}

	matched := ApplyFilter(source, stmt.Where, stmt.From.Alias)

	results := make([]document.Value, 0, len(matched))
	for _, value := range matched {
		results = append(results, project(Record{Value: value, Alias: stmt.From.Alias}, stmt))
	}
	return results, nil
}

// resolveSource descends path one member or array index per segment and requires
// the result to be an array
func resolveSource(doc document.Value, path string) ([]document.Value, error) {
	value, ok := doc.Lookup(path)
	if !ok {
		return nil, &PathError{Path: path, Err: ErrPathNotFound}
	}

	items, ok := value.AsArray()
	if !ok {
		return nil, &PathError{Path: path, Err: ErrSourceNotIterable}
	}
	return items, nil
}

// project builds the output record. Each field is keyed by the last segment
// of its path; later fields overwrite earlier ones with the same key.
// Unresolved fields are projected as null.
func project(rec Record, stmt *SelectStatement) document.Value {
	if stmt.All {
		return rec.Value
	}

	out := document.NewMap()
	for _, field := range stmt.Fields {
		value := rec.Lookup(field)
		if value.IsMissing() {
			value = document.NullValue()
		}
		out.Set(lastSegment(field), value)
	}
	return document.ObjectValue(out)
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
