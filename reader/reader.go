package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegasq/jsonq/document"
)

// Format identifies how an input is decoded into a document.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatParquet Format = "parquet"
)

var (
	// ErrUnsupportedFormat is returned for an unknown input format name
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrInputTooLarge is returned when an input exceeds MaxInputSize
	ErrInputTooLarge = errors.New("input too large")
)

// MaxInputSize bounds the bytes read from a single input (1GB).
const MaxInputSize = 1 << 30

// ParseFormat validates a format name. The empty string means FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatJSON, FormatYAML, FormatParquet:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: auto, json, yaml, parquet)", ErrUnsupportedFormat, name)
	}
}

// DetectFormat picks a format from the file extension, defaulting to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".parquet":
		return FormatParquet
	default:
		return FormatJSON
	}
}

// Input is a fully loaded document together with facts about its source.
type Input struct {
	Value  document.Value
	Format Format
	Size   int64 // bytes read from the source
}

// Load reads the document at path. Parquet paths may be glob patterns; the
// matched files are read as one table.
func Load(path string, format Format) (*Input, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}

	if format == FormatParquet {
		rows, size, err := ReadMultipleFiles(path)
		if err != nil {
			return nil, err
		}
		return &Input{Value: rowsDocument(rows), Format: FormatParquet, Size: size}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file, format)
}

// Read loads a document from r. FormatAuto is treated as JSON, since a
// stream has no extension to go by.
func Read(r io.Reader, format Format) (*Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, MaxInputSize)
	}

	if format == FormatAuto || format == "" {
		format = FormatJSON
	}

	var value document.Value
	switch format {
	case FormatJSON:
		value, err = document.Parse(data)
	case FormatYAML:
		value, err = decodeYAML(data)
	case FormatParquet:
		var pr *ParquetReader
		pr, err = OpenParquet(bytes.NewReader(data), int64(len(data)))
		if err == nil {
			var rows []document.Value
			rows, err = pr.ReadAll()
			value = rowsDocument(rows)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s input: %w", format, err)
	}

	return &Input{Value: value, Format: format, Size: int64(len(data))}, nil
}
