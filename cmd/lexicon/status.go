package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"polyglotpress/lexicon/pkg/cli"
)

var statusFlags struct {
	format string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue progress, pending drafts, and today's budget",
	Long: `Show a snapshot of pipeline progress: how many languages are done, what
the next run would pick, how many drafts await polishing, and how much of
today's polish budget is left.

Examples:
  # Human-readable summary
  lexicon status

  # JSON for scripting
  lexicon status --format json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusFlags.format, "format", "text", "output format: text, json")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipe, _, err := newPipeline(cfg)
	if err != nil {
		return cli.NewCommandError("status", err)
	}

	ctx := cli.SetupSignalHandler()
	status, err := pipe.Status(ctx)
	if err != nil {
		return cli.NewCommandError("status", err)
	}

	if cli.OutputFormat(statusFlags.format) == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, map[string]interface{}{
			"total_languages":         status.TotalLanguages,
			"completed_languages":     status.CompletedLanguages,
			"next_batch":              status.NextBatch,
			"drafts_pending":          status.DraftsPending,
			"polish_requests_today":   status.PolishRequestsToday,
			"polish_budget_remaining": status.PolishBudgetRemaining,
		})
	}

	fmt.Printf("Languages: %d/%d completed\n", status.CompletedLanguages, status.TotalLanguages)
	if len(status.NextBatch) > 0 {
		fmt.Printf("Next batch: %s\n", strings.Join(status.NextBatch, ", "))
	} else {
		fmt.Println("Next batch: (queue exhausted)")
	}
	fmt.Printf("Drafts pending polish: %d\n", status.DraftsPending)
	fmt.Printf("Polish requests today: %d (remaining: %d)\n",
		status.PolishRequestsToday, status.PolishBudgetRemaining)
	return nil
}
