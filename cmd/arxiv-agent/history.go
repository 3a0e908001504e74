// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-agent/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs and reported papers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if !cfg.History.Enabled {
			return fmt.Errorf("history is disabled in configuration")
		}

		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, _ := cmd.Flags().GetInt("runs")
		papers, _ := cmd.Flags().GetInt("papers")

		if err := printRuns(cmd.Context(), store, runs); err != nil {
			return err
		}
		if papers > 0 {
			fmt.Fprintln(os.Stdout)
			return printPapers(cmd.Context(), store, papers)
		}
		return nil
	},
}

func printRuns(ctx context.Context, store *history.Store, limit int) error {
	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "no runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tQUERY\tFOUND\tREPORTED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n",
			r.StartedAt.Format("2006-01-02 15:04"), r.Query, r.PapersFound, r.PapersReported)
	}
	return tw.Flush()
}

func printPapers(ctx context.Context, store *history.Store, limit int) error {
	papers, err := store.RecentPapers(ctx, limit)
	if err != nil {
		return err
	}
	if len(papers) == 0 {
		fmt.Fprintln(os.Stdout, "no papers recorded")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCORE\tTITLE")
	for _, p := range papers {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.ID, p.Score, p.Title)
	}
	return tw.Flush()
}

func init() {
	historyCmd.Flags().Int("runs", 10, "number of recent runs to show")
	historyCmd.Flags().Int("papers", 0, "also show the N most recently reported papers")

	rootCmd.AddCommand(historyCmd)
}
