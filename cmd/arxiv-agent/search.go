// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-agent/internal/search"
	"github.com/pdiddy/arxiv-agent/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search arXiv for candidate papers",
	Long: `Search runs the query track only: it queries the arXiv API for papers
matching the configured queries (comma or semicolon separated) within the
submission window and prints the deduplicated results. No LLM analysis, no
source scan, no email.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if path, _ := cmd.Flags().GetString("from"); path != "" {
			rf, err := search.ReadResultFile(path)
			if err != nil {
				return err
			}
			out := search.Output{
				Papers:      rf.Papers,
				DupsRemoved: rf.Summary.DuplicatesRemoved,
				QueryErrors: rf.Summary.QueryErrors,
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return search.FormatJSON(out, os.Stdout)
			}
			search.FormatTable(out, os.Stdout)
			return nil
		}

		if q, _ := cmd.Flags().GetString("query"); q != "" {
			cfg.Search.Query = q
		}
		if n, _ := cmd.Flags().GetInt("max-results"); cmd.Flags().Changed("max-results") {
			cfg.Search.MaxResults = n
		}
		if d, _ := cmd.Flags().GetInt("days"); cmd.Flags().Changed("days") {
			cfg.Search.Days = d
		}

		var queries []search.Query
		for _, text := range search.SplitQueries(cfg.Search.Query) {
			queries = append(queries, search.Query{Text: text, Type: types.SourceManual})
		}

		backend := &search.Client{HTTP: httpClient(cfg.Search.HTTPConfig)}
		out, err := search.Run(cmd.Context(), queries, backend, cfg.Search, os.Stderr)
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("save"); path != "" {
			if err := search.WriteResultFile(path, queries, cfg.Search, out); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "saved results to %s\n", path)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return search.FormatJSON(out, os.Stdout)
		}
		search.FormatTable(out, os.Stdout)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("query", "", "query string, comma or semicolon separated (overrides ARXIV_QUERY)")
	searchCmd.Flags().Int("max-results", 10, "maximum results per query")
	searchCmd.Flags().Int("days", 3, "submission window in days (0 disables)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save results to a YAML file")
	searchCmd.Flags().String("from", "", "print a previously saved result file instead of querying")

	rootCmd.AddCommand(searchCmd)
}
