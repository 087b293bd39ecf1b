package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"birthday_notifier/internal/infra/config"
	"birthday_notifier/internal/infra/logger"
	"birthday_notifier/internal/infra/scheduler"
)

// serveCmd runs the daily scheduler until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daily pipeline scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("could not load configuration: %w", err)
		}
		logger.Init(cfg)
		log := logger.Get()
		log.Infof("Configuration loaded. Input: %s, CronSpec: %q, Environment: %s",
			cfg.InputFile, cfg.CronSpec, cfg.Environment)

		svcs, err := buildServices(cfg, false, log)
		if err != nil {
			return err
		}
		defer svcs.cleanup()

		sched := scheduler.NewPipelineScheduler(svcs.pipeline, svcs.runRepo, log, cfg.CronSpec)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("could not start scheduler: %w", err)
		}

		log.Info("Application setup complete. Scheduler is running.")

		// Graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit // Block until a signal is received

		log.Info("Shutting down application...")
		sched.Stop()
		log.Info("Application shut down gracefully.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
