package reader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vegasq/jsonq/document"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"parquet", FormatParquet, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"data.json":           FormatJSON,
		"data.YAML":           FormatYAML,
		"conf.yml":            FormatYAML,
		"dir/part-0.parquet":  FormatParquet,
		"data/*.parquet":      FormatParquet,
		"no-extension":        FormatJSON,
		"weird.ndjson.backup": FormatJSON,
	}

	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestRead_JSON(t *testing.T) {
	src := `{"users": [{"z": 1, "a": 2}]}`
	in, err := Read(strings.NewReader(src), FormatAuto)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if in.Format != FormatJSON {
		t.Errorf("Format = %s, want json", in.Format)
	}
	if in.Size != int64(len(src)) {
		t.Errorf("Size = %d, want %d", in.Size, len(src))
	}
	if got := in.Value.String(); got != `{"users":[{"z":1,"a":2}]}` {
		t.Errorf("Value = %s", got)
	}
}

func TestRead_InvalidJSON(t *testing.T) {
	_, err := Read(strings.NewReader(`{"users": [`), FormatJSON)
	if !errors.Is(err, document.ErrInvalidJSON) {
		t.Errorf("Read() error = %v, want ErrInvalidJSON", err)
	}
}

func TestRead_YAML(t *testing.T) {
	src := `
users:
  - name: Alice
    zip: 411001
    meta:
      city: Pune
      active: true
  - name: Bob
    score: -2.5
    tags: [a, b]
    note: ~
`
	in, err := Read(strings.NewReader(src), FormatYAML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := `{"users":[{"name":"Alice","zip":411001,"meta":{"city":"Pune","active":true}},` +
		`{"name":"Bob","score":-2.5,"tags":["a","b"],"note":null}]}`
	if got := in.Value.String(); got != want {
		t.Errorf("Value =\n%s\nwant\n%s", got, want)
	}
}

func TestRead_InvalidYAML(t *testing.T) {
	if _, err := Read(strings.NewReader("users: [unclosed"), FormatYAML); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestRead_UnsupportedFormat(t *testing.T) {
	_, err := Read(strings.NewReader("{}"), Format("xml"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Read() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad_DetectsByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "users.yml")
	if err := os.WriteFile(yamlPath, []byte("users:\n  - id: 1\n"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	in, err := Load(yamlPath, FormatAuto)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if in.Format != FormatYAML {
		t.Errorf("Format = %s, want yaml", in.Format)
	}
	if got := in.Value.String(); got != `{"users":[{"id":1}]}` {
		t.Errorf("Value = %s", got)
	}

	// An explicit format wins over the extension
	jsonPath := filepath.Join(dir, "users.txt")
	if err := os.WriteFile(jsonPath, []byte(`{"a": 1}`), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := Load(jsonPath, FormatJSON); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), FormatAuto)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not exist", err)
	}
}

func TestSelectRoot(t *testing.T) {
	doc := mustParse(t, `{"response": {"data": {"users": [{"id": 1}, {"id": 2}]}}, "items": [10, 20]}`)

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"empty keeps document", "", doc.String()},
		{"single object", "$.response.data", `{"users":[{"id":1},{"id":2}]}`},
		{"index", "$.items[1]", `20`},
		{"several matches", "$.response.data.users[*].id", `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectRoot(doc, tt.expr)
			if err != nil {
				t.Fatalf("SelectRoot() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("SelectRoot(%q) = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}
}

func TestSelectRoot_Errors(t *testing.T) {
	doc := mustParse(t, `{"a": 1}`)

	if _, err := SelectRoot(doc, "$.missing"); !errors.Is(err, ErrRootNotFound) {
		t.Errorf("SelectRoot() error = %v, want ErrRootNotFound", err)
	}
	if _, err := SelectRoot(doc, "$[?"); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("SelectRoot() error = %v, want ErrInvalidRoot", err)
	}
}

func TestLoad_JSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := Load(filepath.Join("..", "testdata", "users.json"), FormatAuto)
	if err != nil {
		t.Fatalf("Load(json) error = %v", err)
	}
	fromYAML, err := Load(filepath.Join("..", "testdata", "users.yaml"), FormatAuto)
	if err != nil {
		t.Fatalf("Load(yaml) error = %v", err)
	}

	if fromJSON.Value.String() != fromYAML.Value.String() {
		t.Errorf("documents differ:\njson %s\nyaml %s", fromJSON.Value, fromYAML.Value)
	}
}
