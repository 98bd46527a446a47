package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"polyglotpress/lexicon/pkg/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load and validate the configuration file, including environment variable
overrides, without running any pipeline stage. Also checks that the language
list and master prompt files exist.

Examples:
  # Validate the default config
  lexicon validate

  # Validate a specific config file
  lexicon validate --config /etc/lexicon/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Println("✓ Configuration valid")

	if _, err := os.Stat(cfg.Queue.LanguagesPath); err != nil {
		return cli.NewConfigError("queue.languages_path",
			fmt.Sprintf("language list not readable: %v", err))
	}
	fmt.Printf("✓ Language list: %s\n", cfg.Queue.LanguagesPath)

	if _, err := os.Stat(cfg.Generator.MasterPromptPath); err != nil {
		return cli.NewConfigError("generator.master_prompt_path",
			fmt.Sprintf("master prompt not readable: %v", err))
	}
	fmt.Printf("✓ Master prompt: %s\n", cfg.Generator.MasterPromptPath)

	if !cfg.Generator.MockMode {
		if _, ok := cfg.Providers[cfg.Generator.Provider]; !ok {
			return cli.NewConfigError("generator.provider",
				fmt.Sprintf("provider %q is not configured", cfg.Generator.Provider))
		}
	}
	fmt.Printf("✓ Generator provider: %s\n", cfg.Generator.Provider)

	return nil
}
