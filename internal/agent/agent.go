// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent wires the pipeline stages into the one-shot batch run:
// fetch, filter, format, send.
package agent

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/arxiv-agent/internal/analyze"
	"github.com/pdiddy/arxiv-agent/internal/history"
	"github.com/pdiddy/arxiv-agent/internal/profile"
	"github.com/pdiddy/arxiv-agent/internal/report"
	"github.com/pdiddy/arxiv-agent/internal/scan"
	"github.com/pdiddy/arxiv-agent/internal/search"
	"github.com/pdiddy/arxiv-agent/internal/stats"
	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// Mailer sends the finished report. The production implementation is
// report.Sender; tests substitute a mock.
type Mailer interface {
	Validate() error
	Send(subject, htmlBody string, chartPNG []byte) error
}

// Agent holds the wired pipeline stages. Client may be nil (no API key);
// Inspector, Auditor, and History may be nil when their stages are
// disabled.
type Agent struct {
	Cfg types.Config

	Searcher  search.Backend
	Client    analyze.Client
	Inspector *scan.Inspector
	Auditor   *scan.Auditor
	Mailer    Mailer
	History   *history.Store

	// Progress receives human-readable stage output.
	Progress io.Writer
}

// Options adjusts a single run.
type Options struct {
	// IncludeSeen reports papers even when a previous run already did.
	IncludeSeen bool

	// DryRun renders the report to Progress instead of sending it.
	DryRun bool
}

// Run executes the full pipeline once. Configuration errors and SMTP
// delivery failures abort; per-paper failures inside a stage degrade.
func (a *Agent) Run(ctx context.Context, opts Options) error {
	w := a.Progress
	if w == nil {
		w = io.Discard
	}

	// Fail on broken delivery config before spending API calls.
	if !opts.DryRun {
		if err := a.Mailer.Validate(); err != nil {
			return err
		}
	}

	prof, err := profile.Load(a.Cfg.ProfilePath)
	if err != nil {
		return err
	}

	queries := a.buildQueries(ctx, prof, w)
	if len(queries) == 0 {
		return fmt.Errorf("no search queries: set ARXIV_QUERY or provide a profile")
	}
	var derived []string
	for _, q := range queries {
		if q.Type == types.SourceDerived {
			derived = append(derived, q.Text)
		}
	}

	// The personal track and the trend track are independent; run them
	// in parallel.
	var (
		wg        sync.WaitGroup
		out       search.Output
		searchErr error
		counts    stats.Counts
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		out, searchErr = search.Run(ctx, queries, a.Searcher, a.Cfg.Search, w)
	}()
	if a.Cfg.Stats.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			counts, err = stats.Collect(ctx, a.Searcher, a.Cfg.Stats, a.Cfg.Search.HTTPConfig)
			if err != nil {
				fmt.Fprintf(w, "warning: trend sampling failed: %v\n", err)
			}
		}()
	}
	wg.Wait()

	if searchErr != nil {
		return searchErr
	}
	found := len(out.Papers)
	fmt.Fprintf(w, "found %d papers (%d duplicates removed)\n", found, out.DupsRemoved)

	papers := out.Papers
	if a.History != nil && !opts.IncludeSeen {
		var seen int
		papers, seen, err = a.History.FilterSeen(ctx, papers)
		if err != nil {
			return err
		}
		if seen > 0 {
			fmt.Fprintf(w, "skipping %d papers reported in earlier runs\n", seen)
		}
	}

	if len(papers) == 0 {
		fmt.Fprintln(w, "no new papers; nothing to send")
		return nil
	}

	if a.Cfg.Scan.Enabled && a.Inspector != nil {
		fmt.Fprintf(w, "scanning %d LaTeX sources\n", len(papers))
		papers = scan.Annotate(ctx, a.Inspector, a.Auditor, papers)
	}

	analyzer := &analyze.Analyzer{
		Client:        a.Client,
		Interests:     profile.InterestsContext(prof, a.Cfg.Analysis.Interest),
		Publications:  profile.PublicationsContext(prof),
		Language:      a.Cfg.Analysis.Language,
		MaxConcurrent: a.Cfg.Analysis.MaxConcurrent,
	}
	fmt.Fprintf(w, "analyzing %d papers with %s\n", len(papers), a.Cfg.Analysis.Model)
	papers = analyzer.Batch(ctx, papers, w)

	briefing, err := analyzer.Briefing(ctx, papers, counts.Describe(3))
	if err != nil {
		fmt.Fprintf(w, "warning: briefing generation failed: %v\n", err)
		briefing = ""
	}

	var chartPNG []byte
	if a.Cfg.Stats.Enabled {
		chartPNG, err = stats.RenderChart(counts)
		if err != nil {
			fmt.Fprintf(w, "warning: chart rendering failed: %v\n", err)
			chartPNG = nil
		}
	}

	html, err := report.RenderHTML(report.Report{
		Query:          a.Cfg.Search.Query,
		Papers:         papers,
		Briefing:       briefing,
		DerivedQueries: derived,
		HasChart:       len(chartPNG) > 0,
		GeneratedAt:    time.Now(),
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("arXiv Report: %d papers (%d high relevance)",
		len(papers), countHighScores(papers))

	if opts.DryRun {
		fmt.Fprintln(w, html)
		return nil
	}

	if err := a.Mailer.Send(subject, html, chartPNG); err != nil {
		return err
	}
	fmt.Fprintf(w, "report sent to %s\n", a.Cfg.Email.Recipient)

	if a.History != nil {
		if err := a.History.RecordRun(ctx, a.Cfg.Search.Query, found, papers); err != nil {
			fmt.Fprintf(w, "warning: recording run history failed: %v\n", err)
		}
	}
	return nil
}

// buildQueries merges the configured queries with profile-derived ones.
// Derivation failures degrade to the manual queries alone.
func (a *Agent) buildQueries(ctx context.Context, prof types.Profile, w io.Writer) []search.Query {
	var queries []search.Query
	for _, text := range search.SplitQueries(a.Cfg.Search.Query) {
		queries = append(queries, search.Query{Text: text, Type: types.SourceManual})
	}

	if a.Client == nil || prof.IsEmpty() {
		return queries
	}

	derived, err := profile.DeriveQueries(ctx, a.Client, prof, a.Cfg.Analysis.Interest)
	if err != nil {
		fmt.Fprintf(w, "warning: query derivation failed: %v\n", err)
		return queries
	}
	for _, text := range derived {
		fmt.Fprintf(w, "derived query: %s\n", text)
		queries = append(queries, search.Query{Text: text, Type: types.SourceDerived})
	}
	return queries
}

func countHighScores(papers []types.Paper) int {
	n := 0
	for _, p := range papers {
		if p.Score >= 8 {
			n++
		}
	}
	return n
}
