package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/vegasq/jsonq/document"
)

func mustRows(t *testing.T, src string) []document.Value {
	t.Helper()
	v, err := document.Parse([]byte(src))
	if err != nil {
		t.Fatalf("document.Parse() error = %v", err)
	}
	rows, ok := v.AsArray()
	if !ok {
		t.Fatalf("expected array, got %v", v.Kind())
	}
	return rows
}

func TestNew(t *testing.T) {
	for _, name := range append(Formats, "YAML", "yml") {
		t.Run(name, func(t *testing.T) {
			f, err := New(name, &bytes.Buffer{}, Options{})
			if err != nil {
				t.Fatalf("New(%q) error = %v", name, err)
			}
			if f == nil {
				t.Fatal("New() returned nil formatter")
			}
		})
	}

	if _, err := New("xml", &bytes.Buffer{}, Options{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New(xml) error = %v, want ErrUnknownFormat", err)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	rows := mustRows(t, `[{"id": 1, "name": "alice"}, {"id": 2, "name": null}]`)

	tests := []struct {
		name   string
		rows   []document.Value
		pretty bool
		want   string
	}{
		{"empty rows", nil, false, "[]\n"},
		{"compact", rows, false, `[{"id":1,"name":"alice"},{"id":2,"name":null}]` + "\n"},
		{
			"pretty",
			rows[:1],
			true,
			"[\n  {\n    \"id\": 1,\n    \"name\": \"alice\"\n  }\n]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewJSONFormatter(&buf, tt.pretty).Format(tt.rows); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Format() =\n%q\nwant\n%q", buf.String(), tt.want)
			}
		})
	}
}

func TestJSONLinesFormatter_Format(t *testing.T) {
	rows := mustRows(t, `[{"z": 1, "a": [1, 2]}, "text", {"b": {"c": true}}]`)

	var buf bytes.Buffer
	if err := NewJSONLinesFormatter(&buf).Format(rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `{"z":1,"a":[1,2]}` + "\n" + `"text"` + "\n" + `{"b":{"c":true}}` + "\n"
	if buf.String() != want {
		t.Errorf("Format() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestJSONLinesFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONLinesFormatter(&buf).Format(nil); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	tests := []struct {
		name string
		rows string
		want [][]string
	}{
		{
			name: "columns in first-seen order",
			rows: `[{"name": "alice", "id": 1}, {"id": 2, "active": true}]`,
			want: [][]string{
				{"name", "id", "active"},
				{"alice", "1", ""},
				{"", "2", "true"},
			},
		},
		{
			name: "nested values as JSON",
			rows: `[{"id": 1, "meta": {"city": "Pune"}, "tags": ["a"], "score": 2.5}]`,
			want: [][]string{
				{"id", "meta", "tags", "score"},
				{"1", `{"city":"Pune"}`, `["a"]`, "2.5"},
			},
		},
		{
			name: "non-object rows",
			rows: `[3, "x", null]`,
			want: [][]string{{"value"}, {"3"}, {"x"}, {""}},
		},
		{
			name: "formula injection",
			rows: `[{"f": "=SUM(A1)", "n": -5, "q": "@it's"}]`,
			want: [][]string{
				{"f", "n", "q"},
				{"'=SUM(A1)", "-5", "'@it''s"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewCSVFormatter(&buf).Format(mustRows(t, tt.rows)); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			records, err := csv.NewReader(&buf).ReadAll()
			if err != nil {
				t.Fatalf("failed to parse CSV output: %v", err)
			}
			if len(records) != len(tt.want) {
				t.Fatalf("got %d records, want %d: %v", len(records), len(tt.want), records)
			}
			for i := range tt.want {
				if strings.Join(records[i], "|") != strings.Join(tt.want[i], "|") {
					t.Errorf("record %d = %v, want %v", i, records[i], tt.want[i])
				}
			}
		})
	}
}

func TestCSVFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVFormatter(&buf).Format(nil); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	rows := mustRows(t, `[{"name": "alice", "age": 30, "score": 9.5, "meta": {"z": null, "a": [true]}}]`)

	var buf bytes.Buffer
	if err := NewYAMLFormatter(&buf).Format(rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"name: alice", "age: 30", "score: 9.5", "z: null"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "name:") > strings.Index(out, "age:") {
		t.Errorf("member order not kept:\n%s", out)
	}

	var decoded []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["name"] != "alice" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestTableFormatter_Format(t *testing.T) {
	rows := mustRows(t, `[{"name": "alice", "id": 1}, {"name": "bob", "meta": {"x": 1}}]`)

	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format(rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"name", "id", "meta", "alice", "bob", `{"x":1}`} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	// header names are kept as written
	if strings.Contains(out, "NAME") {
		t.Errorf("header was reformatted:\n%s", out)
	}
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format(nil); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestFormatter_SetOutput(t *testing.T) {
	rows := mustRows(t, `[{"id": 1}]`)

	for _, name := range Formats {
		t.Run(name, func(t *testing.T) {
			var first, second bytes.Buffer
			f, err := New(name, &first, Options{})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			f.SetOutput(&second)
			if err := f.Format(rows); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if first.Len() != 0 || second.Len() == 0 {
				t.Errorf("output went to the wrong writer: first=%d second=%d", first.Len(), second.Len())
			}
		})
	}
}
