package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/vegasq/jsonq/document"
	"github.com/vegasq/jsonq/output"
	"github.com/vegasq/jsonq/query"
	"github.com/vegasq/jsonq/reader"
)

const shellHelp = `Enter a query, e.g. SELECT name FROM users WHERE age > 30
Commands:
  \schema   list the fields of the document
  \explain  <query> print the parsed query
  \help     show this help
  \q        quit (also exit, quit, Ctrl-D)
`

// shell is the interactive query loop over one loaded document.
type shell struct {
	doc       document.Value
	formatter output.Formatter
	limit     int
	out       io.Writer
	errOut    io.Writer
	log       *slog.Logger

	// fields of the last result, offered by the completer
	fields []string
}

// run reads lines with liner until the user quits. History is loaded from
// and saved to historyPath when it is set.
func (s *shell) run(historyPath string) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	fmt.Fprintf(s.out, "jsonq interactive shell, \\help for help\n")
	for {
		input, err := line.Prompt("jsonq> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if s.exec(input) {
			break
		}
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}

// exec handles one line of input and reports whether the shell should quit.
// Query errors are printed and the loop goes on.
func (s *shell) exec(input string) bool {
	input = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(input), ";"))

	switch {
	case input == "":
		return false
	case input == `\q`, strings.EqualFold(input, "exit"), strings.EqualFold(input, "quit"):
		return true
	case input == `\help`, input == `\h`, input == "?":
		fmt.Fprint(s.out, shellHelp)
		return false
	case input == `\schema`:
		infos := reader.ExtractSchemaInfo(s.doc)
		rows := make([]document.Value, len(infos))
		for i, info := range infos {
			rows[i] = info.Row()
		}
		s.write(rows)
		return false
	case strings.HasPrefix(input, `\explain `):
		stmt, err := query.Parse(strings.TrimPrefix(input, `\explain `))
		if err != nil {
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		fmt.Fprint(s.out, explain(stmt))
		return false
	case strings.HasPrefix(input, `\`):
		fmt.Fprintf(s.errOut, "Error: unknown command %s (try \\help)\n", input)
		return false
	}

	stmt, err := query.Parse(input)
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return false
	}

	rows, err := query.Execute(s.doc, stmt)
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		printPathHint(s.errOut, s.doc, err)
		return false
	}
	s.log.Debug("shell query", "statement", stmt.String(), "rows", len(rows))
	s.fields = query.GetFieldNames(rows)

	s.write(applyLimit(rows, s.limit))
	return false
}

func (s *shell) write(rows []document.Value) {
	s.formatter.SetOutput(s.out)
	if err := s.formatter.Format(rows); err != nil {
		fmt.Fprintf(s.errOut, "Error formatting output: %v\n", err)
	}
}

// complete offers keywords, top-level member names and the fields of the
// last result for the last word.
func (s *shell) complete(line string) []string {
	start := strings.LastIndexAny(line, " ,(") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	candidates := []string{"SELECT", "FROM", "WHERE", "AS", "AND", "OR"}
	if obj, ok := s.doc.AsObject(); ok {
		candidates = append(candidates, obj.Keys()...)
	}
	candidates = append(candidates, s.fields...)

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToUpper(c), strings.ToUpper(word)) {
			out = append(out, prefix+c)
		}
	}
	return out
}

// historyPath returns the shell history file, or "" when there is no home
// directory.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jsonq_history")
}
