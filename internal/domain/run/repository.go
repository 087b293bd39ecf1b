package run

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving pipeline
// run reports.
type Repository interface {
	Save(ctx context.Context, report *Report) error
	// GetByDate returns the most recent report recorded for the given run
	// date, or the repository's not-found error when none exists.
	GetByDate(ctx context.Context, runDate time.Time) (*Report, error)
}

// SummarySink delivers a formatted run summary to an operator-facing channel.
type SummarySink interface {
	SendSummary(summary string) error
}
