package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"polyglotpress/lexicon/pkg/cli"
	"polyglotpress/lexicon/pkg/pipeline"
)

var polishFlags struct {
	maxRequests int
	mock        bool
}

var polishCmd = &cobra.Command{
	Use:   "polish",
	Short: "Polish staged drafts within today's request budget",
	Long: `Upgrade staged drafts into final chapters with the polishing provider.

The run plans a daily request budget from the provider's published rate limits
with a safety margin, shares it across same-day runs through the usage
database, and paces requests to stay under the per-minute limit. Drafts are
batched up to the configured batch size while their combined token estimate
fits the per-minute token quota.

Examples:
  # Polish as much as today's budget allows
  lexicon polish

  # Cap this run at 5 requests
  lexicon polish --max-requests 5`,
	RunE: runPolish,
}

func init() {
	rootCmd.AddCommand(polishCmd)

	polishCmd.Flags().IntVar(&polishFlags.maxRequests, "max-requests", 0, "cap requests for this run (0 = budget only)")
	polishCmd.Flags().BoolVar(&polishFlags.mock, "mock", false, "fabricate output instead of calling the provider")
}

func runPolish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if polishFlags.mock {
		cfg.Generator.MockMode = true
	}

	pipe, _, err := newPipeline(cfg)
	if err != nil {
		return cli.NewCommandError("polish", err)
	}

	ctx := cli.SetupSignalHandler()
	result, err := pipe.RunPolish(ctx, pipeline.PolishOptions{
		MaxRequests: polishFlags.maxRequests,
	})
	if err != nil {
		return cli.NewCommandError("polish", err)
	}

	fmt.Printf("✓ Polished: %d  Requests used: %d  Remaining today: %d\n",
		len(result.Polished), result.RequestsUsed, result.RequestsRemaining)
	switch result.Stopped {
	case "budget":
		fmt.Println("Stopped: daily request budget exhausted.")
	case "quota":
		fmt.Println("Stopped: provider rejected a request for quota.")
	}
	return nil
}
