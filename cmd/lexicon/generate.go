package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"polyglotpress/lexicon/pkg/cli"
)

var generateFlags struct {
	mock     bool
	language string
	model    string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the next book from the language queue",
	Long: `Generate a complete encyclopedia book for the next language in the queue.

The next language is the first entry of the language list that is missing from
the completion log. Small languages are grouped two per run. On success the
language is appended to the completion log; mock runs never touch the log.

Examples:
  # Generate the next queued book
  lexicon generate

  # Rehearse the run without calling any API
  lexicon generate --mock

  # Bypass the queue and generate a specific language
  lexicon generate --language Erlang

  # Override the configured model
  lexicon generate --model gpt-4o`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&generateFlags.mock, "mock", false, "fabricate output instead of calling the provider")
	generateCmd.Flags().StringVarP(&generateFlags.language, "language", "l", "", "bypass the queue and generate this language")
	generateCmd.Flags().StringVarP(&generateFlags.model, "model", "m", "", "override the configured model")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if generateFlags.mock {
		cfg.Generator.MockMode = true
	}
	if generateFlags.language != "" {
		cfg.Generator.ForceLanguage = generateFlags.language
	}
	if generateFlags.model != "" {
		cfg.Generator.Model = generateFlags.model
	}

	pipe, _, err := newPipeline(cfg)
	if err != nil {
		return cli.NewCommandError("generate", err)
	}

	ctx := cli.SetupSignalHandler()
	result, err := pipe.RunGenerate(ctx)
	if err != nil {
		return cli.NewCommandError("generate", err)
	}

	if len(result.Batch) == 0 {
		fmt.Println("Language queue exhausted, nothing to generate.")
		return nil
	}

	for _, language := range result.Succeeded {
		fmt.Printf("✓ %s\n", language)
	}
	for _, language := range result.Failed {
		fmt.Printf("✗ %s (see error reports)\n", language)
	}
	if cfg.Generator.MockMode {
		fmt.Println("Mock run: completion log not updated.")
	}
	return nil
}
