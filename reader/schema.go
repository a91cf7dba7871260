package reader

import (
	"strings"

	"github.com/vegasq/jsonq/document"
)

// SchemaInfo describes one leaf field found in a document.
type SchemaInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Repeated bool   `json:"repeated"`
	Count    int    `json:"count"`
}

// ExtractSchemaInfo walks a document and reports every leaf field it holds.
//
// Field names use dot notation (e.g., "meta.city") and are reported in the
// order they are first seen. Objects inside arrays are walked with the
// array's own name as prefix and their fields are marked repeated. A field
// seen with several kinds reports them joined by "|" (e.g., "number|null").
func ExtractSchemaInfo(doc document.Value) []SchemaInfo {
	c := &schemaCollector{index: make(map[string]int)}
	c.walk(doc, "", false)

	infos := make([]SchemaInfo, len(c.fields))
	for i, f := range c.fields {
		infos[i] = SchemaInfo{
			Name:     f.name,
			Type:     strings.Join(f.kinds, "|"),
			Repeated: f.repeated,
			Count:    f.count,
		}
	}
	return infos
}

type schemaField struct {
	name     string
	kinds    []string
	repeated bool
	count    int
}

type schemaCollector struct {
	fields []*schemaField
	index  map[string]int
}

func (c *schemaCollector) walk(v document.Value, prefix string, parentRepeated bool) {
	switch v.Kind() {
	case document.Object:
		obj, _ := v.AsObject()
		obj.Range(func(key string, member document.Value) bool {
			name := key
			if prefix != "" {
				name = prefix + "." + key
			}
			c.walk(member, name, parentRepeated)
			return true
		})
		return

	case document.Array:
		items, _ := v.AsArray()
		walked := false
		for _, item := range items {
			if item.Kind() == document.Object {
				c.walk(item, prefix, true)
				walked = true
			}
		}
		if walked {
			return
		}
	}

	// top-level scalars have no name to report
	if prefix == "" {
		return
	}
	c.add(prefix, v.Kind().String(), parentRepeated)
}

func (c *schemaCollector) add(name, kind string, repeated bool) {
	i, ok := c.index[name]
	if !ok {
		c.index[name] = len(c.fields)
		c.fields = append(c.fields, &schemaField{name: name, kinds: []string{kind}, repeated: repeated, count: 1})
		return
	}

	f := c.fields[i]
	f.count++
	f.repeated = f.repeated || repeated
	for _, k := range f.kinds {
		if k == kind {
			return
		}
	}
	f.kinds = append(f.kinds, kind)
}

// Row renders a schema info as a document so it can go through any
// output formatter.
func (s SchemaInfo) Row() document.Value {
	m := document.NewMap()
	m.Set("name", document.StringValue(s.Name))
	m.Set("type", document.StringValue(s.Type))
	m.Set("repeated", document.BoolValue(s.Repeated))
	m.Set("count", document.NumberValue(float64(s.Count)))
	return document.ObjectValue(m)
}
