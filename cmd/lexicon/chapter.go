package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"polyglotpress/lexicon/pkg/cli"
)

var chapterFlags struct {
	language string
	title    string
	mock     bool
}

var chapterCmd = &cobra.Command{
	Use:   "chapter",
	Short: "Generate a single chapter",
	Long: `Generate one chapter for a language and write it under the language's
chapters directory. The file name is derived from the title; chapter runs do
not advance the language queue.

Examples:
  # Generate one chapter
  lexicon chapter --language Go --title "Concurrency Patterns"

  # Rehearse without calling any API
  lexicon chapter --language Rust --title "Ownership" --mock`,
	RunE: runChapter,
}

func init() {
	rootCmd.AddCommand(chapterCmd)

	chapterCmd.Flags().StringVarP(&chapterFlags.language, "language", "l", "", "language the chapter belongs to")
	chapterCmd.Flags().StringVarP(&chapterFlags.title, "title", "t", "", "chapter title")
	chapterCmd.Flags().BoolVar(&chapterFlags.mock, "mock", false, "fabricate output instead of calling the provider")
	_ = chapterCmd.MarkFlagRequired("language")
	_ = chapterCmd.MarkFlagRequired("title")
}

func runChapter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if chapterFlags.mock {
		cfg.Generator.MockMode = true
	}

	pipe, _, err := newPipeline(cfg)
	if err != nil {
		return cli.NewCommandError("chapter", err)
	}

	ctx := cli.SetupSignalHandler()
	path, err := pipe.RunChapter(ctx, chapterFlags.language, chapterFlags.title)
	if err != nil {
		return cli.NewCommandError("chapter", err)
	}

	fmt.Printf("✓ Chapter written: %s\n", path)
	return nil
}
