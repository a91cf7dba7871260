package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vegasq/jsonq/document"
	"github.com/vegasq/jsonq/output"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	doc, err := document.Parse([]byte(usersJSON))
	if err != nil {
		t.Fatalf("document.Parse() error = %v", err)
	}

	var out, errOut bytes.Buffer
	return &shell{
		doc:       doc,
		formatter: output.NewJSONLinesFormatter(io.Discard),
		out:       &out,
		errOut:    &errOut,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, &out, &errOut
}

func TestShell_Exec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantQuit bool
		wantOut  string
		wantErr  string
	}{
		{name: "empty", input: "   "},
		{name: "quit", input: `\q`, wantQuit: true},
		{name: "exit", input: "EXIT", wantQuit: true},
		{
			name:    "query",
			input:   "SELECT name FROM users WHERE id = 3;",
			wantOut: `{"name":"Carol"}` + "\n",
		},
		{name: "help", input: `\help`, wantOut: "Commands:"},
		{name: "schema", input: `\schema`, wantOut: `"name":"users.meta.city"`},
		{name: "explain", input: `\explain SELECT * FROM users WHERE id = 1`, wantOut: "source: users"},
		{name: "unknown command", input: `\tables`, wantErr: "unknown command"},
		{name: "syntax error keeps going", input: "SELECT FROM users", wantErr: "syntax error"},
		{name: "path error with hint", input: "SELECT * FROM people", wantErr: "Available members of the document root: users, org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, out, errOut := newTestShell(t)

			if quit := sh.exec(tt.input); quit != tt.wantQuit {
				t.Errorf("exec(%q) quit = %v, want %v", tt.input, quit, tt.wantQuit)
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out.String())
			}
			if tt.wantErr != "" && !strings.Contains(errOut.String(), tt.wantErr) {
				t.Errorf("errors missing %q:\n%s", tt.wantErr, errOut.String())
			}
			if tt.wantErr == "" && errOut.Len() != 0 {
				t.Errorf("unexpected errors: %s", errOut.String())
			}
		})
	}
}

func TestShell_ExecAppliesLimit(t *testing.T) {
	sh, out, _ := newTestShell(t)
	sh.limit = 2

	sh.exec("SELECT id FROM users")
	if got := out.String(); got != `{"id":1}`+"\n"+`{"id":2}`+"\n" {
		t.Errorf("output = %q", got)
	}
}

func TestShell_Complete(t *testing.T) {
	sh, _, _ := newTestShell(t)

	tests := []struct {
		line string
		want []string
	}{
		{"sel", []string{"SELECT"}},
		{"SELECT * FROM u", []string{"SELECT * FROM users"}},
		{"SELECT * FROM users WH", []string{"SELECT * FROM users WHERE"}},
		{"SELECT id,o", []string{"SELECT id,OR", "SELECT id,org"}},
		{"SELECT ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := sh.complete(tt.line)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("complete(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestShell_CompleteResultFields(t *testing.T) {
	sh, _, _ := newTestShell(t)
	sh.exec("SELECT * FROM org.teams")

	got := sh.complete("SELECT na")
	if strings.Join(got, "|") != "SELECT name" {
		t.Errorf("complete() = %q, want [SELECT name]", got)
	}
}
