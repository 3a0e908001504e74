// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-agent/internal/agent"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline and email the report",
	Long: `Run executes the complete agent pipeline once: derive expansion queries
from the researcher profile, search arXiv, score the candidates with the
LLM, scan LaTeX sources for venue templates and code links, sample the
day's category trend, and email the HTML report.

Papers reported by an earlier run are skipped unless --include-seen is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		includeSeen, _ := cmd.Flags().GetBool("include-seen")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		a, cleanup, err := newAgent(loadConfig())
		if err != nil {
			return err
		}
		defer cleanup()
		a.Progress = os.Stderr

		return a.Run(cmd.Context(), agent.Options{
			IncludeSeen: includeSeen,
			DryRun:      dryRun,
		})
	},
}

func init() {
	runCmd.Flags().Bool("include-seen", false, "report papers even when an earlier run already did")
	runCmd.Flags().Bool("dry-run", false, "render the report to stderr instead of sending it")

	rootCmd.AddCommand(runCmd)
}
