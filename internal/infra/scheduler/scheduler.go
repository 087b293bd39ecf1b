package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"birthday_notifier/internal/app"
	"birthday_notifier/internal/domain/run"
	idb "birthday_notifier/internal/infra/database"
)

// jobTimeout bounds one scheduled pipeline run.
const jobTimeout = 5 * time.Minute

// PipelineScheduler triggers one pipeline run per cron tick. The cron engine
// runs jobs sequentially per entry, so runs never overlap.
type PipelineScheduler struct {
	cronEngine *cron.Cron
	pipeline   app.PipelineService
	runRepo    run.Repository // optional, used to report already-recorded runs
	logger     *logrus.Logger
	cronSpec   string
}

func NewPipelineScheduler(
	pipeline app.PipelineService,
	runRepo run.Repository,
	logger *logrus.Logger,
	cronSpec string, // e.g., "0 9 * * *" (9:00 AM daily)
) *PipelineScheduler {
	return &PipelineScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		pipeline:   pipeline,
		runRepo:    runRepo,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *PipelineScheduler) Start() error {
	s.logger.Info("Starting pipeline scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily birthday pipeline run.")
		s.executePipelineRun()
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.Infof("Pipeline scheduler started with spec %q.", s.cronSpec)
	return nil
}

func (s *PipelineScheduler) executePipelineRun() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	today := time.Now()

	if s.runRepo != nil {
		existing, err := s.runRepo.GetByDate(ctx, today)
		if err != nil && !errors.Is(err, idb.ErrRunNotFound) {
			s.logger.Errorf("Failed to check for existing run report: %v", err)
		} else if existing != nil {
			s.logger.Infof("A run for %s is already recorded (ID: %d). Running again.",
				today.Format("2006-01-02"), existing.ID)
		}
	}

	if _, err := s.pipeline.RunOnce(ctx, today); err != nil {
		s.logger.Errorf("Pipeline run failed: %v", err)
		return
	}
	s.logger.Info("Pipeline run completed.")
}

func (s *PipelineScheduler) Stop() {
	s.logger.Info("Stopping pipeline scheduler...")
	ctx := s.cronEngine.Stop() // Stops scheduling new runs, waits for a running job.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Pipeline scheduler gracefully stopped.")
}
