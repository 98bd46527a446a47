package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"polyglotpress/lexicon/pkg/cli"
)

var draftFlags struct {
	languages   []string
	parallelism int
	mock        bool
}

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Stage cheap drafts for pending languages",
	Long: `Stage rough drafts for languages still missing from the completion log,
using the cheap drafting provider and a fixed worker pool.

Drafting covers the whole backlog in one run; languages that already have a
staged draft or a polished final are skipped, so re-runs only fill gaps.

Examples:
  # Draft everything still pending
  lexicon draft

  # Draft specific languages
  lexicon draft --languages Go --languages Rust

  # Raise the worker pool size
  lexicon draft --parallelism 8`,
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftCmd.Flags().StringArrayVar(&draftFlags.languages, "languages", nil, "draft only these languages (repeatable)")
	draftCmd.Flags().IntVar(&draftFlags.parallelism, "parallelism", 0, "override the drafting worker pool size")
	draftCmd.Flags().BoolVar(&draftFlags.mock, "mock", false, "fabricate output instead of calling the provider")
}

func runDraft(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if draftFlags.mock {
		cfg.Generator.MockMode = true
	}
	if draftFlags.parallelism > 0 {
		cfg.Draft.Parallelism = draftFlags.parallelism
	}

	pipe, _, err := newPipeline(cfg)
	if err != nil {
		return cli.NewCommandError("draft", err)
	}

	ctx := cli.SetupSignalHandler()
	result, err := pipe.RunDrafts(ctx, draftFlags.languages)
	if err != nil {
		return cli.NewCommandError("draft", err)
	}

	fmt.Printf("✓ Drafted: %d  Skipped: %d  Failed: %d\n",
		len(result.Drafted), len(result.Skipped), len(result.Failed))
	for _, language := range result.Failed {
		fmt.Printf("✗ %s (placeholder staged, see error reports)\n", language)
	}
	return nil
}
