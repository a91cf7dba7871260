package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/vegasq/jsonq/document"
	"github.com/vegasq/jsonq/internal/batch"
	"github.com/vegasq/jsonq/internal/config"
	"github.com/vegasq/jsonq/internal/logger"
	"github.com/vegasq/jsonq/output"
	"github.com/vegasq/jsonq/query"
	"github.com/vegasq/jsonq/reader"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// flagKeys maps flags to the config keys they override.
var flagKeys = map[string]string{
	"f":         "format",
	"pretty":    "pretty",
	"limit":     "limit",
	"root":      "root",
	"input":     "input",
	"workers":   "workers",
	"log-level": "log.level",
}

type options struct {
	query       string
	batchFile   string
	interactive bool
	explain     bool
	schema      bool
	stats       bool
	configFile  string
}

// run executes one CLI invocation and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsonq", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.query, "q", "", "Query (e.g., \"SELECT name FROM users WHERE age > 30\")")
	fs.StringVar(&opts.batchFile, "batch", "", "File of queries, one per line, run concurrently")
	fs.BoolVar(&opts.interactive, "i", false, "Start an interactive query shell")
	fs.BoolVar(&opts.explain, "explain", false, "Print the parsed query instead of running it")
	fs.BoolVar(&opts.schema, "schema", false, "Show the fields of the document instead of querying")
	fs.BoolVar(&opts.stats, "stats", false, "Print row count and input size to stderr")
	fs.StringVar(&opts.configFile, "config", "", "Config file (yaml, json, toml, ...)")
	fs.String("f", "json", "Output format: "+strings.Join(output.Formats, ", "))
	fs.Bool("pretty", false, "Indent JSON output (default on when stdout is a terminal)")
	fs.Int("limit", 0, "Limit number of rows (0 = unlimited)")
	fs.String("root", "", "JSONPath selecting the document root (e.g., \"$.data\")")
	fs.String("input", "auto", "Input format: auto, json, yaml, parquet")
	fs.Int("workers", 4, "Concurrent queries in -batch mode")
	fs.String("log-level", "WARN", "Log level: DEBUG, INFO, WARN, ERROR")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: jsonq [options] [file]\n\n")
		fmt.Fprintf(stderr, "Query JSON, YAML and Parquet documents with SELECT statements.\n")
		fmt.Fprintf(stderr, "The document is read from standard input when file is missing or \"-\".\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE the file argument.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  jsonq -q \"SELECT * FROM users\" data.json\n")
		fmt.Fprintf(stderr, "  jsonq -q \"SELECT u.name FROM users AS u WHERE u.meta.city = 'Pune'\" data.json\n")
		fmt.Fprintf(stderr, "  cat data.yaml | jsonq -input yaml -f table -q \"SELECT id, name FROM users\"\n")
		fmt.Fprintf(stderr, "  jsonq -f csv -q \"SELECT * FROM rows WHERE age > 30\" data.parquet\n")
		fmt.Fprintf(stderr, "  jsonq -root '$.response' -q \"SELECT id FROM items\" response.json\n")
		fmt.Fprintf(stderr, "  jsonq -batch queries.sql data.json\n")
		fmt.Fprintf(stderr, "  jsonq -i data.json\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	// Validate flag combinations
	modes := 0
	for _, set := range []bool{opts.query != "", opts.batchFile != "", opts.interactive, opts.schema} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		fmt.Fprintf(stderr, "Error: -q, -batch, -i and -schema cannot be used together\n")
		return 1
	}
	if modes == 0 {
		fmt.Fprintf(stderr, "Error: missing -q query\n\n")
		fs.Usage()
		return 1
	}
	if opts.explain && opts.query == "" {
		fmt.Fprintf(stderr, "Error: -explain requires -q\n")
		return 1
	}
	if opts.stats && opts.query == "" && opts.batchFile == "" {
		fmt.Fprintf(stderr, "Error: -stats requires -q or -batch\n")
		return 1
	}

	overrides := make(map[string]interface{})
	fs.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if getter, ok := f.Value.(flag.Getter); ok {
			overrides[key] = getter.Get()
		}
	})

	cfg, err := config.Load(config.Options{
		File:      opts.configFile,
		Defaults:  map[string]interface{}{"pretty": isTerminal(stdout)},
		Overrides: overrides,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	log, runID := logger.WithRunID(logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: stderr,
	}))
	log.Debug("starting", "run_id", runID, "format", cfg.Format, "input", cfg.Input)

	if opts.explain {
		return explainQuery(opts.query, stdout, stderr)
	}

	filename := "-"
	if fs.NArg() >= 1 {
		filename = fs.Arg(0)
	}
	if opts.interactive && filename == "-" {
		fmt.Fprintf(stderr, "Error: -i needs a file argument, standard input is the terminal\n")
		return 1
	}

	start := time.Now()
	in, err := loadDocument(filename, cfg, stdin)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "Error: file '%s' not found\n", filename)
			fmt.Fprintf(stderr, "Please check the file path and try again.\n")
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	log.Debug("document loaded",
		"file", filename,
		"format", in.Format,
		"bytes", in.Size,
		"duration", time.Since(start))

	formatter, err := output.New(cfg.Format, stdout, output.Options{Pretty: cfg.Pretty})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	switch {
	case opts.schema:
		infos := reader.ExtractSchemaInfo(in.Value)
		rows := make([]document.Value, len(infos))
		for i, info := range infos {
			rows[i] = info.Row()
		}
		if err := formatter.Format(rows); err != nil {
			fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
			return 1
		}
		return 0

	case opts.interactive:
		sh := &shell{doc: in.Value, formatter: formatter, limit: cfg.Limit, out: stdout, errOut: stderr, log: log}
		if err := sh.run(historyPath()); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0

	case opts.batchFile != "":
		code, matched, written := runBatch(opts.batchFile, in, cfg, formatter, stderr, log)
		if opts.stats {
			printStats(stderr, in, matched, written, time.Since(start))
		}
		return code
	}

	stmt, err := query.Parse(opts.query)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing query: %v\n\n", err)
		fmt.Fprintf(stderr, "Query format: SELECT <fields> FROM <path> [AS alias] [WHERE <condition>]\n")
		fmt.Fprintf(stderr, "Example: SELECT name FROM users WHERE age > 30\n")
		return 1
	}
	log.Debug("query parsed", "statement", stmt.String())

	rows, err := query.Execute(in.Value, stmt)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printPathHint(stderr, in.Value, err)
		return 1
	}

	matched := len(rows)
	rows = applyLimit(rows, cfg.Limit)

	if err := formatter.Format(rows); err != nil {
		fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
		return 1
	}

	if opts.stats {
		printStats(stderr, in, matched, len(rows), time.Since(start))
	}
	return 0
}

func loadDocument(filename string, cfg *config.Config, stdin io.Reader) (*reader.Input, error) {
	format, err := reader.ParseFormat(cfg.Input)
	if err != nil {
		return nil, err
	}

	var in *reader.Input
	if filename == "-" {
		in, err = reader.Read(stdin, format)
	} else {
		in, err = reader.Load(filename, format)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Root != "" {
		root, err := reader.SelectRoot(in.Value, cfg.Root)
		if err != nil {
			return nil, err
		}
		in.Value = root
	}
	return in, nil
}

// runBatch runs every query in the batch file and writes each result set in
// file order. It also returns the rows matched and written across the
// queries that succeeded.
func runBatch(path string, in *reader.Input, cfg *config.Config, formatter output.Formatter, stderr io.Writer, log *slog.Logger) (code, matched, written int) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1, 0, 0
	}
	queries, err := batch.ReadQueries(f)
	_ = f.Close()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1, 0, 0
	}

	runner, err := batch.New(cfg.Workers, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1, 0, 0
	}
	defer runner.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := runner.Run(ctx, in.Value, queries)
	if err != nil {
		fmt.Fprintf(stderr, "Error: batch interrupted: %v\n", err)
	}

	if err != nil {
		code = 1
	}
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(stderr, "Error in query %d (%s): %v\n", res.Index+1, res.Query, res.Err)
			code = 1
			continue
		}
		rows := applyLimit(res.Rows, cfg.Limit)
		if err := formatter.Format(rows); err != nil {
			fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
			return 1, matched, written
		}
		matched += len(res.Rows)
		written += len(rows)
	}
	return code, matched, written
}

func explainQuery(q string, stdout, stderr io.Writer) int {
	stmt, err := query.Parse(q)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing query: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, explain(stmt))
	return 0
}

// explain renders a statement as an indented outline.
func explain(stmt *query.SelectStatement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "query:  %s\n", stmt)
	if stmt.All {
		b.WriteString("fields: *\n")
	} else {
		fmt.Fprintf(&b, "fields: %s\n", strings.Join(stmt.Fields, ", "))
	}
	fmt.Fprintf(&b, "source: %s\n", stmt.From.Path)
	if stmt.From.Alias != "" {
		fmt.Fprintf(&b, "alias:  %s\n", stmt.From.Alias)
	}
	if stmt.Where != nil {
		b.WriteString("where:\n")
		explainExpr(&b, stmt.Where, 1)
	}
	return b.String()
}

func explainExpr(b *strings.Builder, expr query.Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := expr.(type) {
	case *query.LogicalExpr:
		fmt.Fprintf(b, "%s%s\n", indent, e.Operator)
		explainExpr(b, e.Left, depth+1)
		explainExpr(b, e.Right, depth+1)
	default:
		fmt.Fprintf(b, "%s%s\n", indent, expr)
	}
}

func applyLimit(rows []document.Value, limit int) []document.Value {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// printPathHint lists the members available where a FROM path stopped
// resolving.
func printPathHint(w io.Writer, doc document.Value, err error) {
	var pathErr *query.PathError
	if !errors.As(err, &pathErr) || !errors.Is(err, query.ErrPathNotFound) {
		return
	}

	// walk to the deepest object the path reaches
	parent := ""
	current := doc
	for _, seg := range strings.Split(pathErr.Path, ".") {
		next := current.Get(seg)
		if next.Kind() != document.Object {
			break
		}
		if parent != "" {
			parent += "."
		}
		parent += seg
		current = next
	}

	obj, ok := current.AsObject()
	if !ok || obj.Len() == 0 {
		return
	}
	where := "the document root"
	if parent != "" {
		where = "'" + parent + "'"
	}
	fmt.Fprintf(w, "Available members of %s: %s\n", where, strings.Join(obj.Keys(), ", "))
}

func printStats(w io.Writer, in *reader.Input, matched, written int, elapsed time.Duration) {
	fmt.Fprintf(w, "# %s rows matched, %s written, %s %s input, %s\n",
		humanize.Comma(int64(matched)),
		humanize.Comma(int64(written)),
		humanize.Bytes(uint64(in.Size)),
		in.Format,
		elapsed.Round(time.Microsecond))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
