// Package batch runs many queries against one document on a bounded
// worker pool.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/vegasq/jsonq/document"
	"github.com/vegasq/jsonq/query"
)

// ErrQueryPanic is recorded for a query whose evaluation panicked
var ErrQueryPanic = errors.New("query evaluation panicked")

// Result is the outcome of one query in a batch.
type Result struct {
	Index int
	Query string
	Rows  []document.Value
	Err   error
}

// Runner evaluates queries concurrently. The document passed to Run is only
// read, so a Runner can be shared by one caller at a time per document.
type Runner struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// New creates a runner with at most workers queries in flight.
func New(workers int, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	return &Runner{pool: pool, logger: logger}, nil
}

// Run evaluates every query against doc and returns one Result per query in
// input order. Query errors are kept in their Result; the returned error is
// only set when ctx ended before every query was submitted, in which case
// the unsubmitted queries carry ctx's error.
func (r *Runner) Run(ctx context.Context, doc document.Value, queries []string) ([]Result, error) {
	results := make([]Result, len(queries))
	for i, q := range queries {
		results[i] = Result{Index: i, Query: q}
	}

	var wg sync.WaitGroup
	var cancelled error

	for i := range queries {
		if err := ctx.Err(); err != nil {
			cancelled = err
			for j := i; j < len(queries); j++ {
				results[j].Err = err
			}
			break
		}

		res := &results[i]
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			r.evaluate(doc, res)
		})
		if err != nil {
			wg.Done()
			res.Err = fmt.Errorf("failed to submit query: %w", err)
		}
	}

	wg.Wait()
	return results, cancelled
}

func (r *Runner) evaluate(doc document.Value, res *Result) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res.Rows = nil
			res.Err = fmt.Errorf("%w: %v", ErrQueryPanic, p)
			r.logger.Error("query panicked", "index", res.Index, "panic", p)
		}
	}()

	stmt, err := query.Parse(res.Query)
	if err == nil {
		res.Rows, err = query.Execute(doc, stmt)
	}
	res.Err = err

	r.logger.Debug("query evaluated",
		"index", res.Index,
		"rows", len(res.Rows),
		"duration", time.Since(start),
		"error", err)
}

// Close releases the worker pool, waiting briefly for running queries.
func (r *Runner) Close() {
	_ = r.pool.ReleaseTimeout(3 * time.Second)
}

// ReadQueries reads one query per line. Blank lines and lines starting with
// "--" or "#" are skipped.
func ReadQueries(rd io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), query.MaxQueryLength+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	return queries, nil
}
