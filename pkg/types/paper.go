// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-agent pipeline.
package types

import "time"

// SourceType records how a paper entered the candidate set: from a query the
// user configured, or from a query derived from the researcher profile.
type SourceType string

const (
	SourceManual  SourceType = "manual"
	SourceDerived SourceType = "derived"
)

// Paper holds one arXiv paper as it moves through the pipeline. Search fills
// the metadata fields, analysis fills the relevance fields, and the source
// scan fills the venue and code fields.
type Paper struct {
	// ID is the arXiv identifier without version suffix (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the arXiv API.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Published is the submission date reported by arXiv.
	Published time.Time `json:"published" yaml:"published"`

	// PrimaryCategory is the arXiv category code (e.g. "cs.LG").
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// PDFURL links to the paper PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// SourceQuery is the query string that found this paper.
	SourceQuery string `json:"source_query" yaml:"source_query"`

	// SourceType distinguishes user-configured queries from profile-derived ones.
	SourceType SourceType `json:"source_type" yaml:"source_type"`

	// Score is the LLM relevance score (0-10). Zero until analyzed.
	Score int `json:"score" yaml:"score"`

	// TLDR is a one-sentence summary of the core contribution.
	TLDR string `json:"tldr,omitempty" yaml:"tldr,omitempty"`

	// Topic is a short phrase naming the paper's subject.
	Topic string `json:"topic,omitempty" yaml:"topic,omitempty"`

	// Reasoning explains the score, referencing the researcher profile
	// where relevant.
	Reasoning string `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`

	// Venue is the conference or journal detected from the LaTeX source
	// template, empty when no template was recognized.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Scanned reports whether the source scan ran for this paper.
	Scanned bool `json:"scanned" yaml:"scanned"`

	// GitHub describes the code repository linked from the abstract or
	// found in the LaTeX source. Nil when no link was found.
	GitHub *GitHubRepo `json:"github,omitempty" yaml:"github,omitempty"`
}

// GitHubRepo describes a code repository associated with a paper.
type GitHubRepo struct {
	// URL is the repository URL.
	URL string `json:"url" yaml:"url"`

	// Stars is the stargazer count, -1 when the audit did not complete.
	Stars int `json:"stars" yaml:"stars"`

	// PushedAt is the last push time, zero when unknown.
	PushedAt time.Time `json:"pushed_at,omitempty" yaml:"pushed_at,omitempty"`

	// Exists reports whether the GitHub API confirmed the repository.
	Exists bool `json:"exists" yaml:"exists"`

	// Hidden is true when the link was found only in the LaTeX source,
	// not in the abstract.
	Hidden bool `json:"hidden" yaml:"hidden"`
}
