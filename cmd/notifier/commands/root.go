package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Birthday notification pipeline",
	Long: `Birthday notification pipeline.

Reads a CSV or spreadsheet of people and birthdates, cleans and validates
the records, finds today's birthdays and sends each person a greeting email.

Examples:
  notifier run
  notifier run --date 2026-03-15 --dry-run
  notifier preview --input data/raw/birthdays.csv
  notifier serve`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
