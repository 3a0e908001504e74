// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats samples the day's submissions across a broad arXiv archive
// and summarizes which subfields are most active.
package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/arxiv-agent/internal/search"
	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// categoryNames maps arXiv category codes to readable names. Codes without
// an entry render as-is.
var categoryNames = map[string]string{
	"cs.AI":    "Artificial Intelligence",
	"cs.CL":    "Computation & Language (NLP)",
	"cs.CV":    "Computer Vision",
	"cs.LG":    "Machine Learning",
	"cs.RO":    "Robotics",
	"cs.SE":    "Software Engineering",
	"cs.CR":    "Cryptography & Security",
	"cs.DS":    "Data Structures",
	"cs.NE":    "Neural & Evol. Computing",
	"cs.MA":    "Multiagent Systems",
	"cs.SI":    "Social & Info Networks",
	"q-bio.BM": "Biomolecules",
	"q-bio.GN": "Genomics",
	"stat.ML":  "Machine Learning (Stat)",
}

// CategoryName returns the readable name for an arXiv category code.
func CategoryName(code string) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return code
}

// Counts tallies sampled submissions by primary category code.
type Counts map[string]int

// Entry is one category with its sampled submission count.
type Entry struct {
	Name  string
	Count int
}

// Collect samples recent submissions in cfg.Category and counts primary
// categories. The sample is bounded by cfg.SampleSize, which is plenty to
// rank the day's active subfields.
func Collect(ctx context.Context, backend search.Backend, cfg types.StatsConfig, httpCfg types.HTTPConfig) (Counts, error) {
	category := cfg.Category
	if category == "" {
		category = "cs"
	}
	sampleSize := cfg.SampleSize
	if sampleSize <= 0 {
		sampleSize = 300
	}
	days := cfg.Days
	if days <= 0 {
		days = 1
	}

	q := search.Query{Text: fmt.Sprintf("cat:%s.*", category), Type: types.SourceManual}
	scfg := types.SearchConfig{
		HTTPConfig: httpCfg,
		MaxResults: sampleSize,
		Days:       days,
	}

	papers, err := backend.Fetch(ctx, q, scfg)
	if err != nil {
		return nil, fmt.Errorf("sampling %s submissions: %w", category, err)
	}

	counts := make(Counts)
	for _, p := range papers {
		if p.PrimaryCategory != "" {
			counts[p.PrimaryCategory]++
		}
	}
	return counts, nil
}

// Total returns the sample size behind the counts.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Top returns the n most active categories with readable names, merging
// codes that map to the same name.
func (c Counts) Top(n int) []Entry {
	merged := make(map[string]int)
	for code, count := range c {
		merged[CategoryName(code)] += count
	}

	entries := make([]Entry, 0, len(merged))
	for name, count := range merged {
		entries = append(entries, Entry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Describe renders the top n categories as "Name(count), ..." for prompt
// interpolation.
func (c Counts) Describe(n int) string {
	entries := c.Top(n)
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s(%d)", e.Name, e.Count)
	}
	return strings.Join(parts, ", ")
}
