// Package output provides formatters for writing query results.
//
// This package defines the Formatter interface and implementations for
// JSON, JSON Lines, CSV, YAML and text tables. All formatters work with
// result rows represented as []document.Value.
//
// # Supported Formats
//
//   - json: one JSON array, compact or indented
//   - jsonl: one JSON value per line (suitable for streaming)
//   - csv: comma-separated values with a header row
//   - yaml: one YAML sequence
//   - table: bordered text table
//
// # Basic Usage
//
// Picking a formatter by name:
//
//	formatter, err := output.New("csv", os.Stdout, output.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(rows); err != nil {
//	    log.Fatal(err)
//	}
//
// Write to a bytes buffer to get string output:
//
//	var buf bytes.Buffer
//	formatter := output.NewJSONFormatter(&buf, true)
//	if err := formatter.Format(rows); err != nil {
//	    log.Fatal(err)
//	}
//
// # Type Handling
//
// Object member order is kept by every format. The tabular formats (csv and
// table) take their columns from member names in first-seen order, write
// nested objects and arrays as JSON text, and leave null and absent members
// empty. Rows that are not objects appear under a single "value" column.
package output
