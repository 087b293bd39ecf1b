package commands

import (
	"github.com/sirupsen/logrus"

	"birthday_notifier/internal/app"
	"birthday_notifier/internal/domain/notification"
	"birthday_notifier/internal/domain/person"
	"birthday_notifier/internal/domain/run"
	"birthday_notifier/internal/infra/config"
	idb "birthday_notifier/internal/infra/database"
	"birthday_notifier/internal/infra/email"
	"birthday_notifier/internal/infra/telegram"
)

// services bundles everything a command needs to run the pipeline, plus a
// cleanup func releasing held resources (database connection).
type services struct {
	pipeline *app.PipelineServiceImpl
	runRepo  run.Repository
	cleanup  func()
}

// buildServices wires the pipeline from configuration. With dryRun true, or
// with SMTP credentials absent, the notifier gets no transport and reports
// recipients without attempting delivery. Database and Telegram wiring are
// optional and skipped when unconfigured.
func buildServices(cfg *config.AppConfig, dryRun bool, log *logrus.Logger) (*services, error) {
	var transport notification.Transport
	if dryRun {
		log.Info("Dry-run requested. No emails will be sent.")
	} else if !cfg.SMTPConfigured() {
		log.Warn("SMTP credentials not configured. The notifier will run in dry-run mode.")
	} else {
		smtp, err := email.NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
		if err != nil {
			return nil, err
		}
		transport = smtp
	}
	notifier := app.NewNotifierService(transport, log)

	cleaner := person.NewCleaner(log, person.CleanOptions{DropInvalidEmails: true})

	cleanup := func() {}
	var runRepo run.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewRunStoreConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		cleanup = func() { db.Close() }
		runRepo = idb.NewPostgresRunRepository(db)
		log.Info("Run repository initialized.")
	}

	var sink run.SummarySink
	if cfg.TelegramConfigured() {
		adapter, err := telegram.NewTelebotAdapter(cfg.TelegramToken, cfg.AdminChatID)
		if err != nil {
			log.Warnf("Could not initialize Telegram summary sink: %v", err)
		} else {
			sink = adapter
			log.Info("Telegram summary sink initialized.")
		}
	}

	pipeline := app.NewPipelineService(
		cfg.InputFile,
		cfg.OutputCSV,
		cfg.OutputXLSX,
		cleaner,
		notifier,
		runRepo,
		sink,
		log,
	)

	return &services{pipeline: pipeline, runRepo: runRepo, cleanup: cleanup}, nil
}
