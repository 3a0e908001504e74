// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-agent/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan <arxiv-id>",
	Short: "Inspect one paper's LaTeX source",
	Long: `Scan downloads the LaTeX source archive for a single arXiv ID, detects
the venue template, and looks for a GitHub link in the source. Useful for
checking the detector against a specific paper.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		in := &scan.Inspector{HTTP: httpClient(cfg.Scan.HTTPConfig), Cfg: cfg.Scan}
		res, err := in.Inspect(cmd.Context(), args[0])
		if errors.Is(err, scan.ErrNoSource) {
			fmt.Fprintln(os.Stdout, "no LaTeX source available (PDF-only submission)")
			return nil
		}
		if err != nil {
			return err
		}

		venue := res.Venue
		if venue == "" {
			venue = "(none detected)"
		}
		fmt.Fprintf(os.Stdout, "venue:  %s\n", venue)

		if res.GitHubURL == "" {
			fmt.Fprintln(os.Stdout, "github: (none found)")
			return nil
		}
		fmt.Fprintf(os.Stdout, "github: %s\n", res.GitHubURL)

		auditor := &scan.Auditor{HTTP: httpClient(cfg.Scan.HTTPConfig), UserAgent: cfg.Scan.UserAgent}
		repo := auditor.Audit(cmd.Context(), res.GitHubURL)
		if !repo.Exists {
			fmt.Fprintln(os.Stdout, "        repository could not be confirmed")
			return nil
		}
		if repo.Stars >= 0 {
			fmt.Fprintf(os.Stdout, "        %d stars, last push %s\n",
				repo.Stars, repo.PushedAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
