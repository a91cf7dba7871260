package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/jsonq/document"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes rows as CSV with a header row. Columns follow the order in
// which member names first appear; nested values are written as JSON.
func (c *CSVFormatter) Format(rows []document.Value) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(rows) == 0 {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return fmt.Errorf("failed to flush CSV writer: %w", err)
		}
		return nil
	}

	cols := columns(rows)

	// Write header
	if err := csvWriter.Write(cols); err != nil {
		return err
	}

	// Write rows
	for _, row := range rows {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = sanitizeCSV(cell(row, col))
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// sanitizeCSV guards string cells against formula injection by prefixing
// characters that spreadsheet applications would evaluate.
func sanitizeCSV(v document.Value) string {
	text := formatValue(v)
	if v.Kind() != document.String || text == "" {
		return text
	}

	switch text[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		// Escape existing single quotes and prefix with quote
		return "'" + strings.ReplaceAll(text, "'", "''")
	}
	return text
}
