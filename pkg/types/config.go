// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-agent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the arXiv search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Query is the comma or semicolon separated list of search queries.
	Query string `json:"query" yaml:"query"`

	// MaxResults is the maximum number of results fetched per query (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Days limits results to papers submitted within the last N days.
	// Zero disables the date window.
	Days int `json:"days" yaml:"days"`

	// InterQueryDelay is the pause between consecutive arXiv API calls (default 1s).
	InterQueryDelay time.Duration `json:"inter_query_delay" yaml:"inter_query_delay"`
}

// AnalysisConfig holds settings for LLM relevance scoring.
type AnalysisConfig struct {
	// Model is the chat-completions model identifier (default "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the API. Empty disables analysis;
	// papers then pass through with a neutral score.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint for OpenAI-compatible providers.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Interest is a free-form description of what the user cares about,
	// used in addition to the profile file.
	Interest string `json:"interest" yaml:"interest"`

	// Language selects the language for TLDRs and reasoning (default "English").
	Language string `json:"language" yaml:"language"`

	// MaxConcurrent bounds parallel analysis calls (default 4).
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// Timeout is the per-call timeout (default 90s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ScanConfig holds settings for the LaTeX source scan.
type ScanConfig struct {
	HTTPConfig `yaml:",inline"`

	// Enabled toggles the source scan stage.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// MaxConcurrent bounds parallel tarball downloads (default 3).
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// MaxArchiveBytes caps how much of a source archive is read (default 32 MiB).
	MaxArchiveBytes int64 `json:"max_archive_bytes" yaml:"max_archive_bytes"`
}

// StatsConfig holds settings for the category trend track.
type StatsConfig struct {
	// Enabled toggles the trend chart.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Category is the broad arXiv archive to sample (default "cs").
	Category string `json:"category" yaml:"category"`

	// SampleSize is how many recent submissions to sample (default 300).
	SampleSize int `json:"sample_size" yaml:"sample_size"`

	// Days is the submission window for the sample (default 1).
	Days int `json:"days" yaml:"days"`
}

// EmailConfig holds SMTP settings for report delivery.
type EmailConfig struct {
	// Server is the SMTP host (default "smtp.gmail.com").
	Server string `json:"server" yaml:"server"`

	// Port is the SMTP port. 465 and 995 use implicit TLS, everything
	// else negotiates STARTTLS (default 587).
	Port int `json:"port" yaml:"port"`

	// Sender is the From address and SMTP username.
	Sender string `json:"sender" yaml:"sender"`

	// Password is the SMTP password or app password.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Recipient receives the report.
	Recipient string `json:"recipient" yaml:"recipient"`
}

// HistoryConfig holds settings for the reported-paper history store.
type HistoryConfig struct {
	// Enabled toggles history tracking. When on, papers reported in a
	// previous run are dropped from new reports.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config groups all stage configurations for the agent.
type Config struct {
	// ProfilePath locates the researcher profile file (YAML or JSON).
	ProfilePath string `json:"profile_path" yaml:"profile_path"`

	Search   SearchConfig   `json:"search" yaml:"search"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Scan     ScanConfig     `json:"scan" yaml:"scan"`
	Stats    StatsConfig    `json:"stats" yaml:"stats"`
	Email    EmailConfig    `json:"email" yaml:"email"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}
