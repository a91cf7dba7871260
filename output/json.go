package output

import (
	"io"

	"github.com/vegasq/jsonq/document"
)

// JSONFormatter outputs rows as a single JSON array
type JSONFormatter struct {
	writer io.Writer
	pretty bool
}

// NewJSONFormatter creates a new JSON array formatter. When pretty is set
// the array is indented by two spaces.
func NewJSONFormatter(w io.Writer, pretty bool) *JSONFormatter {
	return &JSONFormatter{writer: w, pretty: pretty}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as one JSON array followed by a newline
func (j *JSONFormatter) Format(rows []document.Value) error {
	result := document.ArrayValue(rows)

	var data []byte
	var err error
	if j.pretty {
		data, err = document.MarshalIndent(result, "  ")
	} else {
		data, err = result.MarshalJSON()
	}
	if err != nil {
		return err
	}

	_, err = j.writer.Write(append(data, '\n'))
	return err
}

// JSONLinesFormatter outputs rows as JSON Lines format
type JSONLinesFormatter struct {
	writer io.Writer
}

// NewJSONLinesFormatter creates a new JSON Lines formatter
func NewJSONLinesFormatter(w io.Writer) *JSONLinesFormatter {
	return &JSONLinesFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONLinesFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON value per line)
func (j *JSONLinesFormatter) Format(rows []document.Value) error {
	for _, row := range rows {
		data, err := row.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err := j.writer.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}
