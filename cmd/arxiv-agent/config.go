// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-agent/internal/agent"
	"github.com/pdiddy/arxiv-agent/internal/analyze"
	"github.com/pdiddy/arxiv-agent/internal/history"
	"github.com/pdiddy/arxiv-agent/internal/report"
	"github.com/pdiddy/arxiv-agent/internal/scan"
	"github.com/pdiddy/arxiv-agent/internal/search"
	"github.com/pdiddy/arxiv-agent/pkg/types"
)

func setDefaults() {
	viper.SetDefault("profile_path", "user_profile.json")

	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.days", 3)
	viper.SetDefault("search.timeout", "30s")
	viper.SetDefault("search.inter_query_delay", "1s")
	viper.SetDefault("search.user_agent", "arxiv-agent/"+version)

	viper.SetDefault("analysis.model", "gpt-4o-mini")
	viper.SetDefault("analysis.language", "English")
	viper.SetDefault("analysis.max_concurrent", 4)
	viper.SetDefault("analysis.timeout", "90s")

	viper.SetDefault("scan.enabled", true)
	viper.SetDefault("scan.max_concurrent", 3)
	viper.SetDefault("scan.timeout", "60s")
	viper.SetDefault("scan.user_agent", "arxiv-agent/"+version)

	viper.SetDefault("stats.enabled", true)
	viper.SetDefault("stats.category", "cs")
	viper.SetDefault("stats.sample_size", 300)
	viper.SetDefault("stats.days", 1)

	viper.SetDefault("email.server", "smtp.gmail.com")
	viper.SetDefault("email.port", 587)

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.data_dir", "data")
}

// bindEnvironment wires the documented environment variables, without a
// prefix so existing deployments keep working.
func bindEnvironment() {
	viper.BindEnv("search.query", "ARXIV_QUERY")
	viper.BindEnv("search.days", "ARXIV_DAYS")
	viper.BindEnv("search.max_results", "MAX_RESULTS")

	viper.BindEnv("analysis.api_key", "OPENAI_API_KEY")
	viper.BindEnv("analysis.base_url", "OPENAI_BASE_URL")
	viper.BindEnv("analysis.model", "OPENAI_MODEL")
	viper.BindEnv("analysis.interest", "USER_INTEREST")

	viper.BindEnv("email.server", "SMTP_SERVER")
	viper.BindEnv("email.port", "SMTP_PORT")
	viper.BindEnv("email.sender", "SENDER_EMAIL")
	viper.BindEnv("email.password", "SENDER_PASSWORD")
	viper.BindEnv("email.recipient", "RECIPIENT_EMAIL")

	viper.BindEnv("stats.category", "BROAD_CATEGORY")
	viper.BindEnv("profile_path", "USER_PROFILE_PATH")
}

// loadConfig materializes the viper state into the typed config, filling
// credentials from the secrets directory when the environment left them
// empty.
func loadConfig() types.Config {
	cfg := types.Config{
		ProfilePath: viper.GetString("profile_path"),
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			Query:           viper.GetString("search.query"),
			MaxResults:      viper.GetInt("search.max_results"),
			Days:            viper.GetInt("search.days"),
			InterQueryDelay: viper.GetDuration("search.inter_query_delay"),
		},
		Analysis: types.AnalysisConfig{
			Model:         viper.GetString("analysis.model"),
			APIKey:        secretDefault("openai-api-key", viper.GetString("analysis.api_key")),
			BaseURL:       viper.GetString("analysis.base_url"),
			Interest:      viper.GetString("analysis.interest"),
			Language:      viper.GetString("analysis.language"),
			MaxConcurrent: viper.GetInt("analysis.max_concurrent"),
			Timeout:       viper.GetDuration("analysis.timeout"),
		},
		Scan: types.ScanConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("scan.timeout"),
				UserAgent: viper.GetString("scan.user_agent"),
			},
			Enabled:       viper.GetBool("scan.enabled"),
			MaxConcurrent: viper.GetInt("scan.max_concurrent"),
		},
		Stats: types.StatsConfig{
			Enabled:    viper.GetBool("stats.enabled"),
			Category:   viper.GetString("stats.category"),
			SampleSize: viper.GetInt("stats.sample_size"),
			Days:       viper.GetInt("stats.days"),
		},
		Email: types.EmailConfig{
			Server:    viper.GetString("email.server"),
			Port:      viper.GetInt("email.port"),
			Sender:    viper.GetString("email.sender"),
			Password:  secretDefault("smtp-password", viper.GetString("email.password")),
			Recipient: viper.GetString("email.recipient"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			DataDir: viper.GetString("history.data_dir"),
		},
	}
	return cfg
}

// httpClient builds a client with the stage timeout.
func httpClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// newAgent wires the production pipeline from config. The returned cleanup
// closes the history store and is safe to call once.
func newAgent(cfg types.Config) (*agent.Agent, func(), error) {
	a := &agent.Agent{
		Cfg:      cfg,
		Searcher: &search.Client{HTTP: httpClient(cfg.Search.HTTPConfig)},
		Mailer:   &report.Sender{Cfg: cfg.Email},
	}

	if cfg.Analysis.APIKey != "" {
		timeout := cfg.Analysis.Timeout
		if timeout <= 0 {
			timeout = 90 * time.Second
		}
		a.Client = &analyze.OpenAIClient{
			APIKey:  cfg.Analysis.APIKey,
			Model:   cfg.Analysis.Model,
			BaseURL: cfg.Analysis.BaseURL,
			HTTP:    &http.Client{Timeout: timeout},
		}
	}

	if cfg.Scan.Enabled {
		a.Inspector = &scan.Inspector{HTTP: httpClient(cfg.Scan.HTTPConfig), Cfg: cfg.Scan}
		a.Auditor = &scan.Auditor{HTTP: httpClient(cfg.Scan.HTTPConfig), UserAgent: cfg.Scan.UserAgent}
	}

	cleanup := func() {}
	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return nil, nil, fmt.Errorf("opening history store: %w", err)
		}
		a.History = store
		cleanup = func() { store.Close() }
	}

	return a, cleanup, nil
}
