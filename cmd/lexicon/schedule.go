package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"polyglotpress/lexicon/pkg/cli"
	"polyglotpress/lexicon/pkg/schedule"
)

var scheduleFlags struct {
	watchDrafts   bool
	metricsListen string
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline as a cron daemon",
	Long: `Run generation and polish stages on their configured cron schedules.

Optionally watches the output tree for new drafts and triggers a polish run
after writes go quiet, and serves Prometheus metrics over HTTP.

Examples:
  # Run with the configured schedules
  lexicon schedule

  # Also trigger polish runs when new drafts land
  lexicon schedule --watch-drafts

  # Override the metrics listener address
  lexicon schedule --metrics-listen 0.0.0.0:9090`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().BoolVar(&scheduleFlags.watchDrafts, "watch-drafts", false, "trigger polish runs when new drafts appear")
	scheduleCmd.Flags().StringVar(&scheduleFlags.metricsListen, "metrics-listen", "", "override the metrics listener address")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scheduleFlags.watchDrafts {
		cfg.Schedule.WatchDrafts = true
	}
	if scheduleFlags.metricsListen != "" {
		cfg.Schedule.MetricsListen = scheduleFlags.metricsListen
	}

	pipe, collector, err := newPipeline(cfg)
	if err != nil {
		return cli.NewCommandError("schedule", err)
	}

	daemon := schedule.New(cfg, pipe, collector)

	fmt.Printf("Lexicon daemon starting (generate: %q, polish: %q)\n",
		cfg.Schedule.GenerateCron, cfg.Schedule.PolishCron)
	if cfg.Schedule.MetricsListen != "" {
		fmt.Printf("Metrics: http://%s%s\n",
			cfg.Schedule.MetricsListen, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("Press Ctrl+C to stop")

	ctx := cli.SetupSignalHandler()
	if err := daemon.Run(ctx); err != nil {
		return cli.NewCommandError("schedule", err)
	}
	fmt.Println("✓ Daemon stopped")
	return nil
}
