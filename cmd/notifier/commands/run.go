package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"birthday_notifier/internal/infra/config"
	"birthday_notifier/internal/infra/logger"
)

var (
	runDate   string
	runInput  string
	runDryRun bool
)

// runCmd executes one pipeline run and prints the summary.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one pipeline run now",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("could not load configuration: %w", err)
		}
		if runInput != "" {
			cfg.InputFile = runInput
		}
		logger.Init(cfg)
		log := logger.Get()

		today, err := parseRunDate(runDate)
		if err != nil {
			return err
		}

		svcs, err := buildServices(cfg, runDryRun, log)
		if err != nil {
			return err
		}
		defer svcs.cleanup()

		report, err := svcs.pipeline.RunOnce(context.Background(), today)
		if err != nil {
			return err
		}

		fmt.Print(report.Summary())
		return nil
	},
}

// parseRunDate parses the --date flag. An empty flag returns the zero time,
// which the pipeline resolves to the invocation date.
func parseRunDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

func init() {
	runCmd.Flags().StringVar(&runDate, "date", "", "run date as YYYY-MM-DD (default: today)")
	runCmd.Flags().StringVar(&runInput, "input", "", "input file path (overrides INPUT_FILE)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "report matches without sending emails")
	rootCmd.AddCommand(runCmd)
}
