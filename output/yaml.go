package output

import (
	"io"
	"math"

	"github.com/goccy/go-yaml"
	"github.com/vegasq/jsonq/document"
)

// YAMLFormatter outputs rows as a YAML sequence
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// SetOutput sets the output writer
func (y *YAMLFormatter) SetOutput(w io.Writer) {
	y.writer = w
}

// Format writes rows as one YAML sequence. Mapping keys keep member order.
func (y *YAMLFormatter) Format(rows []document.Value) error {
	items := make([]interface{}, len(rows))
	for i, row := range rows {
		items[i] = toYAML(row)
	}

	data, err := yaml.Marshal(items)
	if err != nil {
		return err
	}
	_, err = y.writer.Write(data)
	return err
}

// toYAML converts a value into data goccy/go-yaml encodes in order.
func toYAML(v document.Value) interface{} {
	switch v.Kind() {
	case document.Object:
		obj, _ := v.AsObject()
		out := make(yaml.MapSlice, 0, obj.Len())
		obj.Range(func(key string, member document.Value) bool {
			out = append(out, yaml.MapItem{Key: key, Value: toYAML(member)})
			return true
		})
		return out
	case document.Array:
		items, _ := v.AsArray()
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = toYAML(item)
		}
		return out
	case document.Number:
		n, _ := v.AsNumber()
		// whole numbers are written without a fractional part
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n)
		}
		return n
	case document.String:
		s, _ := v.AsString()
		return s
	case document.Bool:
		b, _ := v.AsBool()
		return b
	default:
		return nil
	}
}
