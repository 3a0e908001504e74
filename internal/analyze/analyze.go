// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze scores candidate papers against the researcher profile
// with an LLM and writes the report briefing.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// Client is the LLM surface the analyzer needs. The production
// implementation is OpenAIClient; tests substitute a mock.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// neutralScore is assigned when analysis is disabled so unscored papers
// land mid-table instead of at the bottom.
const neutralScore = 5

// Analyzer scores papers. A nil Client disables analysis: papers pass
// through with a neutral score and the pipeline continues.
type Analyzer struct {
	Client       Client
	Interests    string
	Publications string
	Language     string

	// MaxConcurrent bounds parallel API calls (default 4).
	MaxConcurrent int
}

// scoringResponse is the JSON shape the scoring prompt requests. Score is a
// float so a model answering 7.0 still parses.
type scoringResponse struct {
	Score     float64 `json:"score"`
	TLDR      string  `json:"tldr"`
	Topic     string  `json:"topic"`
	Reasoning string  `json:"reasoning"`
}

// Batch analyzes all papers with bounded concurrency and returns them
// sorted by score descending (submission date breaks ties). A failed
// analysis keeps the paper with a zero score and diagnostic reasoning; it
// never aborts the batch. The number of failures is reported on w.
func (a *Analyzer) Batch(ctx context.Context, papers []types.Paper, w io.Writer) []types.Paper {
	maxConcurrent := a.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	out := make([]types.Paper, len(papers))
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for i, p := range papers {
		wg.Add(1)
		go func(i int, p types.Paper) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := a.analyzeOne(ctx, &p); err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				fmt.Fprintf(w, "warning: analysis of %s failed: %v\n", p.ID, err)
			}
			out[i] = p
		}(i, p)
	}
	wg.Wait()

	if failed > 0 {
		fmt.Fprintf(w, "%d of %d analyses failed\n", failed, len(papers))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Published.After(out[j].Published)
	})
	return out
}

// analyzeOne fills the analysis fields of p in place. On failure p keeps a
// zero score and a diagnostic reasoning so the report still carries it.
func (a *Analyzer) analyzeOne(ctx context.Context, p *types.Paper) error {
	if a.Client == nil {
		p.Score = neutralScore
		p.TLDR = "analysis unavailable"
		p.Reasoning = "no API key configured"
		if p.Topic == "" {
			p.Topic = p.PrimaryCategory
		}
		return nil
	}

	system, err := renderScoringPrompt(promptContext{
		Interests:    a.Interests,
		Publications: a.Publications,
		Language:     a.Language,
	})
	if err != nil {
		return a.markFailed(p, err)
	}

	user := fmt.Sprintf("Title: %s\nAbstract: %s", p.Title, p.Abstract)

	raw, err := a.Client.CompleteJSON(ctx, system, user)
	if err != nil {
		return a.markFailed(p, err)
	}

	var resp scoringResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return a.markFailed(p, fmt.Errorf("parsing scoring response: %w", err))
	}

	p.Score = clampScore(resp.Score)
	p.TLDR = strings.TrimSpace(resp.TLDR)
	p.Reasoning = strings.TrimSpace(resp.Reasoning)
	if t := strings.TrimSpace(resp.Topic); t != "" {
		p.Topic = t
	} else if p.Topic == "" {
		p.Topic = p.PrimaryCategory
	}
	return nil
}

func (a *Analyzer) markFailed(p *types.Paper, err error) error {
	p.Score = 0
	p.TLDR = "analysis failed"
	p.Reasoning = fmt.Sprintf("analysis error: %v", err)
	if p.Topic == "" {
		p.Topic = p.PrimaryCategory
	}
	return err
}

func clampScore(s float64) int {
	n := int(math.Round(s))
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

// briefingPaperCount is how many top papers feed the briefing prompt.
const briefingPaperCount = 5

// Briefing writes the digest paragraph that opens the report. With no
// client it returns a static placeholder; with a failing client it returns
// the error so the caller can degrade.
func (a *Analyzer) Briefing(ctx context.Context, papers []types.Paper, trend string) (string, error) {
	if a.Client == nil {
		return "Briefing unavailable: no API key configured.", nil
	}

	var b strings.Builder
	for i, p := range papers {
		if i >= briefingPaperCount {
			break
		}
		fmt.Fprintf(&b, "- %s (topic: %s)\n", p.Title, p.Topic)
	}
	if trend == "" {
		trend = "no sample available"
	}

	prompt, err := renderBriefingPrompt(trend, b.String(), a.Language)
	if err != nil {
		return "", err
	}

	briefing, err := a.Client.Complete(ctx, "", prompt)
	if err != nil {
		return "", fmt.Errorf("generating briefing: %w", err)
	}
	return strings.TrimSpace(briefing), nil
}
