// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the arXiv API and returns a deduplicated candidate
// set tagged with the query that produced each paper.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// Backend fetches papers for a single query. The production implementation
// is Client; tests substitute a mock.
type Backend interface {
	Fetch(ctx context.Context, q Query, cfg types.SearchConfig) ([]types.Paper, error)
}

// Query is one search task: the query text and how it originated.
type Query struct {
	Text string
	Type types.SourceType
}

// SplitQueries parses the configured query string into individual queries.
// Commas and semicolons both separate; blanks are dropped.
func SplitQueries(s string) []string {
	var out []string
	for _, q := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// Output holds the merged candidate set and per-query statistics.
type Output struct {
	Papers      []types.Paper
	DupsRemoved int
	QueryErrors []string
}

// Run fans the queries out to the backend concurrently, merges the results,
// and deduplicates by arXiv ID. A paper found by both a manual and a derived
// query is counted as manual. Individual query failures are reported on w
// and in Output.QueryErrors; Run fails only when every query fails.
func Run(ctx context.Context, queries []Query, backend Backend, cfg types.SearchConfig, w io.Writer) (Output, error) {
	if len(queries) == 0 {
		return Output{}, fmt.Errorf("no search queries: set a query string or a profile")
	}

	type queryResult struct {
		papers []types.Paper
		err    error
		query  Query
	}

	ch := make(chan queryResult, len(queries))
	var wg sync.WaitGroup

	for i, q := range queries {
		if i > 0 && cfg.InterQueryDelay > 0 {
			time.Sleep(cfg.InterQueryDelay)
		}
		wg.Add(1)
		go func(q Query) {
			defer wg.Done()
			papers, err := backend.Fetch(ctx, q, cfg)
			ch <- queryResult{papers: papers, err: err, query: q}
		}(q)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.Paper
	var queryErrors []string
	failed := 0
	for qr := range ch {
		if qr.err != nil {
			failed++
			msg := fmt.Sprintf("%q: %v", qr.query.Text, qr.err)
			queryErrors = append(queryErrors, msg)
			fmt.Fprintf(w, "warning: query %s failed\n", msg)
			continue
		}
		all = append(all, qr.papers...)
	}

	if failed == len(queries) {
		return Output{QueryErrors: queryErrors}, fmt.Errorf("all %d queries failed", failed)
	}

	merged, removed := deduplicate(all)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Published.After(merged[j].Published)
	})

	return Output{
		Papers:      merged,
		DupsRemoved: removed,
		QueryErrors: queryErrors,
	}, nil
}

// deduplicate merges papers sharing an arXiv ID. The first occurrence wins,
// except that a later manual hit upgrades a derived one: the report should
// credit the user's own query, not the expansion.
func deduplicate(papers []types.Paper) ([]types.Paper, int) {
	seen := make(map[string]int) // arXiv ID → index in merged
	var merged []types.Paper
	removed := 0

	for _, p := range papers {
		idx, ok := seen[p.ID]
		if !ok {
			seen[p.ID] = len(merged)
			merged = append(merged, p)
			continue
		}
		removed++
		if p.SourceType == types.SourceManual && merged[idx].SourceType == types.SourceDerived {
			merged[idx].SourceType = types.SourceManual
			merged[idx].SourceQuery = p.SourceQuery
		}
	}
	return merged, removed
}

// FormatTable writes papers as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-14s  %-56s  %-20s  %-10s  %s\n",
		"Rank", "ID", "Title", "Authors", "Date", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 118))

	for i, p := range out.Papers {
		title := truncate(p.Title, 56)
		date := ""
		if !p.Published.IsZero() {
			date = p.Published.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-14s  %-56s  %-20s  %-10s  %s\n",
			i+1, p.ID, title, formatAuthors(p.Authors), date, p.SourceType)
	}

	fmt.Fprintf(w, "\n%d papers", len(out.Papers))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes papers as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Papers)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
