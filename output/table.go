package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/vegasq/jsonq/document"
)

// TableFormatter outputs rows as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes rows as a bordered table with a header row. Nothing is
// written for an empty result.
func (t *TableFormatter) Format(rows []document.Value) error {
	if len(rows) == 0 {
		return nil
	}

	cols := columns(rows)

	table := tablewriter.NewWriter(t.writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(cols)

	for _, row := range rows {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = formatValue(cell(row, col))
		}
		table.Append(record)
	}

	table.Render()
	return nil
}
