package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"birthday_notifier/internal/domain/run"
)

// ErrRunNotFound is returned when no run report exists for the requested date.
var ErrRunNotFound = fmt.Errorf("pipeline run not found")

// PostgresRunRepository persists pipeline run reports.
//
// Backing table:
//
//	CREATE TABLE pipeline_runs (
//	    id              BIGSERIAL PRIMARY KEY,
//	    run_date        DATE        NOT NULL,
//	    extracted_count INTEGER     NOT NULL,
//	    cleaned_count   INTEGER     NOT NULL,
//	    matched_count   INTEGER     NOT NULL,
//	    success_count   INTEGER     NOT NULL,
//	    failed_count    INTEGER     NOT NULL,
//	    dry_run         BOOLEAN     NOT NULL,
//	    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresRunRepository struct {
	db *sql.DB
}

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

// Save inserts the run report and fills in its generated ID and timestamp.
func (r *PostgresRunRepository) Save(ctx context.Context, report *run.Report) error {
	query := `INSERT INTO pipeline_runs (run_date, extracted_count, cleaned_count, matched_count, success_count, failed_count, dry_run)
               VALUES ($1, $2, $3, $4, $5, $6, $7)
               RETURNING id, created_at`
	runDate := dateOnly(report.RunDate)
	err := r.db.QueryRowContext(ctx, query,
		runDate, report.Extracted, report.Cleaned, report.Matched,
		report.Delivery.Success, report.Delivery.Failed, report.DryRun,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving pipeline run: %w", err)
	}
	return nil
}

// GetByDate returns the most recent run report recorded for the given date.
// Recipient details are not persisted; the returned report carries counts only.
func (r *PostgresRunRepository) GetByDate(ctx context.Context, runDate time.Time) (*run.Report, error) {
	query := `SELECT id, run_date, extracted_count, cleaned_count, matched_count, success_count, failed_count, dry_run, created_at
               FROM pipeline_runs WHERE run_date = $1 ORDER BY created_at DESC LIMIT 1`
	report := run.Report{}
	err := r.db.QueryRowContext(ctx, query, dateOnly(runDate)).Scan(
		&report.ID, &report.RunDate, &report.Extracted, &report.Cleaned, &report.Matched,
		&report.Delivery.Success, &report.Delivery.Failed, &report.DryRun, &report.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("error getting pipeline run by date: %w", err)
	}
	return &report, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
