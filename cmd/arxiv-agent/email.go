// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-agent/internal/report"
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Send a test email to verify SMTP settings",
	Long: `Email sends a short test message using the configured SMTP settings so
delivery problems surface before the next scheduled run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if to, _ := cmd.Flags().GetString("to"); to != "" {
			cfg.Email.Recipient = to
		}

		sender := &report.Sender{Cfg: cfg.Email}
		if err := sender.Validate(); err != nil {
			return err
		}
		if err := sender.SendTest(); err != nil {
			return fmt.Errorf("test email failed: %w", err)
		}
		fmt.Fprintf(os.Stdout, "test email sent to %s\n", cfg.Email.Recipient)
		return nil
	},
}

func init() {
	emailCmd.Flags().String("to", "", "recipient override for the test message")

	rootCmd.AddCommand(emailCmd)
}
