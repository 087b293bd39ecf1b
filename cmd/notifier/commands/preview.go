package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"birthday_notifier/internal/domain/person"
	"birthday_notifier/internal/etl/source"
	"birthday_notifier/internal/infra/config"
	"birthday_notifier/internal/infra/logger"
)

var (
	previewDate  string
	previewInput string
)

// previewCmd cleans the input and prints who would be notified, without
// sending anything or touching the database.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show today's matches without sending emails",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("could not load configuration: %w", err)
		}
		if previewInput != "" {
			cfg.InputFile = previewInput
		}
		logger.Init(cfg)
		log := logger.Get()

		today, err := parseRunDate(previewDate)
		if err != nil {
			return err
		}
		if today.IsZero() {
			today = time.Now()
		}

		table, err := source.Extract(cfg.InputFile)
		if err != nil {
			return err
		}
		fmt.Printf("Extracted %d records from %s\n", table.Len(), cfg.InputFile)

		cleaner := person.NewCleaner(log, person.CleanOptions{DropInvalidEmails: true})
		cleaned, stats := cleaner.Clean(table)
		fmt.Printf("Records after cleaning: %d (dropped %d)\n", stats.Output, stats.Input-stats.Output)

		matches := person.Match(cleaned, today)
		if len(matches) == 0 {
			fmt.Printf("No birthdays on %s.\n", today.Format("2006-01-02"))
			return nil
		}
		fmt.Printf("Birthdays on %s:\n", today.Format("2006-01-02"))
		for _, m := range matches {
			fmt.Printf("  - %s (%s)\n", m.Name, m.Email)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewDate, "date", "", "run date as YYYY-MM-DD (default: today)")
	previewCmd.Flags().StringVar(&previewInput, "input", "", "input file path (overrides INPUT_FILE)")
	rootCmd.AddCommand(previewCmd)
}
