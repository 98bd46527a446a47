package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"polyglotpress/lexicon/pkg/cli"
	"polyglotpress/lexicon/pkg/config"
	"polyglotpress/lexicon/pkg/pipeline"
	"polyglotpress/lexicon/pkg/telemetry/logging"
	"polyglotpress/lexicon/pkg/telemetry/metrics"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Lexicon - multi-language programming encyclopedia generator",
	Long: `Lexicon drives LLM provider APIs to produce a programming encyclopedia,
one language book per run, as Obsidian-flavored Markdown.

It provides:
  - Queue-driven book generation with an append-only completion log
  - Single-chapter generation with frontmatter scaffolding
  - A draft-then-polish flow for bulk production on free-tier quotas
  - Multi-provider support (OpenAI, Hugging Face, Groq, Gemini)
  - A cron daemon with a drafts watcher and Prometheus metrics`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file with environment overrides and
// installs the configured logger. The --verbose flag forces debug logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(logging.Config{
		Level:         cfg.Telemetry.Logging.Level,
		Format:        cfg.Telemetry.Logging.Format,
		RedactSecrets: cfg.Telemetry.Logging.RedactSecrets,
	}); err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	return cfg, nil
}

// newPipeline builds the pipeline and its metrics collector from config.
func newPipeline(cfg *config.Config) (*pipeline.Pipeline, *metrics.Collector, error) {
	collector := metrics.NewCollector(metrics.Config{
		Enabled:   cfg.Telemetry.Metrics.Enabled,
		Namespace: cfg.Telemetry.Metrics.Namespace,
	})

	pipe, err := pipeline.New(cfg, collector)
	if err != nil {
		return nil, nil, err
	}
	return pipe, collector, nil
}
