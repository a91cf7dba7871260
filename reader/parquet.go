package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/segmentio/parquet-go"
	"github.com/vegasq/jsonq/document"
)

// RowsKey is the member under which Parquet rows appear in the document, so
// a Parquet file is queried with FROM rows.
const RowsKey = "rows"

// FileKey is the member added to each row when a glob pattern matched more
// than one file.
const FileKey = "_file"

// ParquetReader reads parquet files and returns rows as documents.
//
// It keeps the underlying file handle, when it owns one, so Close can
// release it.
type ParquetReader struct {
	file   io.Closer
	pqFile *parquet.File
}

// NewParquetReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
func NewParquetReader(path string) (*ParquetReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	r, err := OpenParquet(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	r.file = file
	return r, nil
}

// OpenParquet reads parquet data from r, which holds size bytes. The caller
// keeps ownership of r.
func OpenParquet(r io.ReaderAt, size int64) (*ParquetReader, error) {
	pqFile, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	return &ParquetReader{pqFile: pqFile}, nil
}

// Columns returns the top-level column names in schema order.
func (r *ParquetReader) Columns() []string {
	fields := r.pqFile.Schema().Fields()
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		columns = append(columns, field.Name())
	}
	return columns
}

// NumRows returns the number of rows recorded in the file metadata.
func (r *ParquetReader) NumRows() int64 {
	return r.pqFile.NumRows()
}

// ReadAll reads all rows into memory. Each row becomes an object whose
// members follow the schema's column order.
func (r *ParquetReader) ReadAll() ([]document.Value, error) {
	columns := r.Columns()
	rows := make([]document.Value, 0, r.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			// Use errors.Is for proper EOF detection
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		value, err := rowToValue(row, columns)
		if err != nil {
			return nil, fmt.Errorf("failed to convert row %d: %w", len(rows), err)
		}
		rows = append(rows, value)
	}

	return rows, nil
}

// Close closes the underlying file if the reader opened it. It is safe to
// call Close multiple times.
func (r *ParquetReader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// rowToValue orders row members by columns; members not named by the schema
// follow in sorted order.
func rowToValue(row map[string]interface{}, columns []string) (document.Value, error) {
	m := document.NewMap()
	seen := make(map[string]bool, len(columns))

	for _, col := range columns {
		raw, ok := row[col]
		if !ok {
			continue
		}
		v, err := document.FromInterface(raw)
		if err != nil {
			return document.Value{}, fmt.Errorf("column %s: %w", col, err)
		}
		m.Set(col, v)
		seen[col] = true
	}

	var rest []string
	for col := range row {
		if !seen[col] {
			rest = append(rest, col)
		}
	}
	sort.Strings(rest)
	for _, col := range rest {
		v, err := document.FromInterface(row[col])
		if err != nil {
			return document.Value{}, fmt.Errorf("column %s: %w", col, err)
		}
		m.Set(col, v)
	}

	return document.ObjectValue(m), nil
}

func rowsDocument(rows []document.Value) document.Value {
	m := document.NewMap()
	m.Set(RowsKey, document.ArrayValue(rows))
	return document.ObjectValue(m)
}

// ReadMultipleFiles reads all rows from the parquet files matching a glob
// pattern, returning the rows and the total bytes of the files read.
//
// The pattern can include wildcards:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// When the pattern contains wildcards each row is tagged with a "_file"
// member holding its source path. Returns an error if no files match the
// pattern or if any file fails to read.
func ReadMultipleFiles(pattern string) ([]document.Value, int64, error) {
	// Check if pattern contains glob wildcards
	if !strings.ContainsAny(pattern, "*?[]") {
		rows, size, err := readParquetFile(pattern)
		if err != nil {
			return nil, 0, err
		}
		return rows, size, nil
	}

	// Expand glob pattern
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid glob pattern: %w", err)
	}

	if len(matches) == 0 {
		return nil, 0, fmt.Errorf("no files match pattern: %s", pattern)
	}

	// Limit number of files to prevent resource exhaustion
	const maxFiles = 1000
	if len(matches) > maxFiles {
		return nil, 0, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	var allRows []document.Value
	var total int64
	for _, filePath := range matches {
		rows, size, err := readParquetFile(filePath)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		total += size

		// Tag each row with the source file
		for _, row := range rows {
			if obj, ok := row.AsObject(); ok {
				obj.Set(FileKey, document.StringValue(filePath))
			}
		}

		allRows = append(allRows, rows...)
	}

	return allRows, total, nil
}

func readParquetFile(path string) ([]document.Value, int64, error) {
	r, err := NewParquetReader(path)
	if err != nil {
		return nil, 0, err
	}

	var size int64
	if f, ok := r.file.(*os.File); ok {
		if stat, err := f.Stat(); err == nil {
			size = stat.Size()
		}
	}

	rows, readErr := r.ReadAll()
	closeErr := r.Close()

	// Preserve the first error encountered
	if readErr != nil {
		return nil, 0, fmt.Errorf("failed to read rows from %s: %w", path, readErr)
	}
	if closeErr != nil {
		return nil, 0, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}

	return rows, size, nil
}
