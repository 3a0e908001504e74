// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-agent/internal/history"
	"github.com/pdiddy/arxiv-agent/internal/search"
	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// fakeSearcher returns canned papers for personal queries and a category
// sample for trend queries.
type fakeSearcher struct {
	papers []types.Paper
	sample []types.Paper
	err    error
}

func (f *fakeSearcher) Fetch(ctx context.Context, q search.Query, cfg types.SearchConfig) ([]types.Paper, error) {
	if f.err != nil {
		return nil, f.err
	}
	if strings.HasPrefix(q.Text, "cat:") && strings.HasSuffix(q.Text, ".*") {
		return f.sample, nil
	}
	return f.papers, nil
}

// fakeLLM answers every scoring call with a fixed score and every prose call
// with a fixed briefing.
type fakeLLM struct {
	score    int
	briefing string
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	if strings.Contains(user, "Generate") {
		return `{"queries": ["derived one"]}`, nil
	}
	return fmt.Sprintf(`{"score": %d, "tldr": "t", "topic": "x", "reasoning": "r"}`, f.score), nil
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string) (string, error) {
	return f.briefing, nil
}

// fakeMailer records the last send.
type fakeMailer struct {
	validateErr error
	sendErr     error
	subject     string
	body        string
	chart       []byte
	sends       int
}

func (f *fakeMailer) Validate() error { return f.validateErr }

func (f *fakeMailer) Send(subject, htmlBody string, chartPNG []byte) error {
	f.sends++
	f.subject = subject
	f.body = htmlBody
	f.chart = chartPNG
	return f.sendErr
}

func testConfig(t *testing.T) types.Config {
	t.Helper()
	return types.Config{
		ProfilePath: "does-not-exist.json",
		Search:      types.SearchConfig{Query: "llm agents", MaxResults: 10},
		Analysis:    types.AnalysisConfig{Model: "test-model"},
		Stats:       types.StatsConfig{Enabled: true, Category: "cs"},
		Email:       types.EmailConfig{Sender: "a@b", Password: "p", Recipient: "c@d"},
	}
}

func TestRunSendsReport(t *testing.T) {
	searcher := &fakeSearcher{
		papers: []types.Paper{
			{ID: "2501.00001", Title: "Great Paper", Published: time.Now(), SourceType: types.SourceManual},
			{ID: "2501.00002", Title: "Meh Paper", SourceType: types.SourceManual},
		},
		sample: []types.Paper{{PrimaryCategory: "cs.LG"}, {PrimaryCategory: "cs.LG"}},
	}
	mailer := &fakeMailer{}
	a := &Agent{
		Cfg:      testConfig(t),
		Searcher: searcher,
		Client:   &fakeLLM{score: 9, briefing: "busy day"},
		Mailer:   mailer,
	}

	if err := a.Run(context.Background(), Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if mailer.sends != 1 {
		t.Fatalf("sends = %d, want 1", mailer.sends)
	}
	if mailer.subject != "arXiv Report: 2 papers (2 high relevance)" {
		t.Errorf("subject = %q", mailer.subject)
	}
	if !strings.Contains(mailer.body, "Great Paper") {
		t.Error("report body missing paper title")
	}
	if !strings.Contains(mailer.body, "busy day") {
		t.Error("report body missing briefing")
	}
	if len(mailer.chart) == 0 {
		t.Error("expected a trend chart with stats enabled")
	}
}

func TestRunValidateFailsFast(t *testing.T) {
	mailer := &fakeMailer{validateErr: fmt.Errorf("no recipient")}
	a := &Agent{
		Cfg:      testConfig(t),
		Searcher: &fakeSearcher{err: fmt.Errorf("must not be called")},
		Mailer:   mailer,
	}

	err := a.Run(context.Background(), Options{})
	if err == nil || !strings.Contains(err.Error(), "no recipient") {
		t.Fatalf("err = %v, want validation failure", err)
	}
	if mailer.sends != 0 {
		t.Error("nothing should be sent")
	}
}

func TestRunDryRun(t *testing.T) {
	mailer := &fakeMailer{validateErr: fmt.Errorf("broken smtp")}
	var buf strings.Builder
	a := &Agent{
		Cfg:      testConfig(t),
		Searcher: &fakeSearcher{papers: []types.Paper{{ID: "1", Title: "P"}}},
		Client:   &fakeLLM{score: 5},
		Mailer:   mailer,
		Progress: &buf,
	}
	a.Cfg.Stats.Enabled = false

	if err := a.Run(context.Background(), Options{DryRun: true}); err != nil {
		t.Fatalf("dry run should skip SMTP validation, got %v", err)
	}
	if mailer.sends != 0 {
		t.Error("dry run must not send")
	}
	if !strings.Contains(buf.String(), "<html>") {
		t.Error("dry run should render the report to progress")
	}
}

func TestRunNoPapersNoSend(t *testing.T) {
	mailer := &fakeMailer{}
	a := &Agent{
		Cfg:      testConfig(t),
		Searcher: &fakeSearcher{},
		Mailer:   mailer,
	}
	a.Cfg.Stats.Enabled = false

	if err := a.Run(context.Background(), Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if mailer.sends != 0 {
		t.Error("empty result should not send an email")
	}
}

func TestRunSearchFailureAborts(t *testing.T) {
	a := &Agent{
		Cfg:      testConfig(t),
		Searcher: &fakeSearcher{err: fmt.Errorf("arXiv down")},
		Mailer:   &fakeMailer{},
	}
	a.Cfg.Stats.Enabled = false

	if err := a.Run(context.Background(), Options{}); err == nil {
		t.Fatal("all queries failing should abort the run")
	}
}

func TestRunHistorySuppression(t *testing.T) {
	cfg := testConfig(t)
	cfg.Stats.Enabled = false
	cfg.History = types.HistoryConfig{Enabled: true, DataDir: t.TempDir()}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	searcher := &fakeSearcher{papers: []types.Paper{
		{ID: "2501.00001", Title: "Repeat", SourceType: types.SourceManual},
	}}
	mailer := &fakeMailer{}
	a := &Agent{
		Cfg:      cfg,
		Searcher: searcher,
		Client:   &fakeLLM{score: 7},
		Mailer:   mailer,
		History:  store,
	}

	// First run reports the paper.
	if err := a.Run(context.Background(), Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if mailer.sends != 1 {
		t.Fatalf("first run sends = %d, want 1", mailer.sends)
	}

	// Second run sees the same paper and stays silent.
	if err := a.Run(context.Background(), Options{}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if mailer.sends != 1 {
		t.Errorf("second run should suppress the seen paper, sends = %d", mailer.sends)
	}

	// --include-seen reports it again.
	if err := a.Run(context.Background(), Options{IncludeSeen: true}); err != nil {
		t.Fatalf("include-seen run: %v", err)
	}
	if mailer.sends != 2 {
		t.Errorf("include-seen run should send, sends = %d", mailer.sends)
	}
}

func TestBuildQueriesDerived(t *testing.T) {
	a := &Agent{
		Cfg:    testConfig(t),
		Client: &fakeLLM{},
	}
	prof := types.Profile{ResearchInterests: []string{"GNNs"}}

	queries := a.buildQueries(context.Background(), prof, io.Discard)
	if len(queries) != 2 {
		t.Fatalf("got %d queries, want manual + derived", len(queries))
	}
	if queries[0].Type != types.SourceManual || queries[1].Type != types.SourceDerived {
		t.Errorf("query types = %v, %v", queries[0].Type, queries[1].Type)
	}
	if queries[1].Text != "derived one" {
		t.Errorf("derived text = %q", queries[1].Text)
	}
}

func TestBuildQueriesNoClient(t *testing.T) {
	a := &Agent{Cfg: testConfig(t)}
	queries := a.buildQueries(context.Background(), types.Profile{ResearchInterests: []string{"x"}}, io.Discard)
	if len(queries) != 1 || queries[0].Type != types.SourceManual {
		t.Errorf("queries = %+v, want manual only", queries)
	}
}
