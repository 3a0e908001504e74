// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// ResultFile is the on-disk representation of a search run. The user can
// save a search to a file and reload it later without re-querying arXiv.
type ResultFile struct {
	Queries []QueryParams `yaml:"queries"`
	Config  ResultConfig  `yaml:"config"`
	Papers  []types.Paper `yaml:"papers"`
	Summary ResultSummary `yaml:"summary"`
}

// QueryParams stores one query in a serializable form.
type QueryParams struct {
	Text string           `yaml:"text"`
	Type types.SourceType `yaml:"type"`
}

// ResultConfig stores the search configuration that produced the papers.
type ResultConfig struct {
	MaxResults int `yaml:"max_results"`
	Days       int `yaml:"days"`
}

// ResultSummary stores run statistics and a timestamp.
type ResultSummary struct {
	Total             int       `yaml:"total"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	QueryErrors       []string  `yaml:"query_errors,omitempty"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// WriteResultFile saves queries and papers to a YAML file.
func WriteResultFile(path string, queries []Query, cfg types.SearchConfig, out Output) error {
	rf := ResultFile{
		Config: ResultConfig{
			MaxResults: cfg.MaxResults,
			Days:       cfg.Days,
		},
		Papers: out.Papers,
		Summary: ResultSummary{
			Total:             len(out.Papers),
			DuplicatesRemoved: out.DupsRemoved,
			QueryErrors:       out.QueryErrors,
			Timestamp:         time.Now(),
		},
	}
	for _, q := range queries {
		rf.Queries = append(rf.Queries, QueryParams{Text: q.Text, Type: q.Type})
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved search run from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
