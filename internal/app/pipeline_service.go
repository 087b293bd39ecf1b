package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"birthday_notifier/internal/domain/person"
	"birthday_notifier/internal/domain/run"
	"birthday_notifier/internal/etl/source"
)

// PipelineService defines the operation of one scheduled pipeline run.
type PipelineService interface {
	// RunOnce executes extract, clean, match, notify and report for the
	// given run date. A zero today defaults to the invocation time. Only
	// extraction errors are fatal; everything downstream is recovered and
	// reflected in the returned report.
	RunOnce(ctx context.Context, today time.Time) (*run.Report, error)
}

// PipelineServiceImpl implements PipelineService. The run repository and
// summary sink are optional; nil disables run persistence and operator
// summaries respectively. Output paths are optional; empty disables writing
// the cleaned table.
type PipelineServiceImpl struct {
	inputPath   string
	outputCSV   string
	outputXLSX  string
	cleaner     *person.Cleaner
	notifier    Notifier
	runRepo     run.Repository
	summarySink run.SummarySink
	logger      *logrus.Logger
}

func NewPipelineService(
	inputPath string,
	outputCSV string,
	outputXLSX string,
	cleaner *person.Cleaner,
	notifier Notifier,
	runRepo run.Repository,
	summarySink run.SummarySink,
	logger *logrus.Logger,
) *PipelineServiceImpl {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PipelineServiceImpl{
		inputPath:   inputPath,
		outputCSV:   outputCSV,
		outputXLSX:  outputXLSX,
		cleaner:     cleaner,
		notifier:    notifier,
		runRepo:     runRepo,
		summarySink: summarySink,
		logger:      logger,
	}
}

// RunOnce executes the full pipeline for one run date.
func (s *PipelineServiceImpl) RunOnce(ctx context.Context, today time.Time) (*run.Report, error) {
	if today.IsZero() {
		today = time.Now()
	}
	s.logger.Infof("Starting pipeline run for %s (month: %d, day: %d)",
		today.Format("2006-01-02"), int(today.Month()), today.Day())

	table, err := source.Extract(s.inputPath)
	if err != nil {
		s.logger.Errorf("Extraction failed: %v", err)
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	extracted := table.Len()
	s.logger.Infof("Extracted %d records from %s", extracted, s.inputPath)

	cleaned, stats := s.cleaner.Clean(table)
	s.logger.Infof("Cleaning removed %d rows (incomplete: %d, invalid emails: %d, duplicates: %d, unparseable dates: %d)",
		stats.Input-stats.Output, stats.Incomplete, stats.InvalidEmails, stats.Duplicates, stats.UnparsedDates)

	s.writeOutputs(cleaned)

	matches := person.Match(cleaned, today)
	s.logger.Infof("Found %d birthday(s) today.", len(matches))
	for _, m := range matches {
		s.logger.Infof("Birthday today: %s (%s)", m.Name, m.Email)
	}

	delivery := s.notifier.Notify(ctx, matches)

	report := &run.Report{
		RunDate:   today,
		Extracted: extracted,
		Cleaned:   cleaned.Len(),
		Matched:   len(matches),
		Matches:   matches,
		Delivery:  delivery,
		DryRun:    delivery.Reason != "",
	}

	if s.runRepo != nil {
		if err := s.runRepo.Save(ctx, report); err != nil {
			s.logger.Errorf("Failed to persist run report: %v", err)
		} else {
			s.logger.Infof("Run report persisted with ID: %d", report.ID)
		}
	}

	summary := report.Summary()
	if s.summarySink != nil {
		if err := s.summarySink.SendSummary(summary); err != nil {
			s.logger.Errorf("Failed to deliver run summary: %v", err)
		}
	}

	return report, nil
}

// writeOutputs writes the cleaned table to the configured output paths.
// Write failures are logged, not fatal: the notification half of the run
// proceeds regardless.
func (s *PipelineServiceImpl) writeOutputs(t person.Table) {
	if s.outputCSV != "" {
		if err := source.WriteCSV(t, s.outputCSV); err != nil {
			s.logger.Errorf("Failed to write cleaned CSV: %v", err)
		} else {
			s.logger.Infof("Saved %d records to %s", t.Len(), s.outputCSV)
		}
	}
	if s.outputXLSX != "" {
		if err := source.WriteExcel(t, s.outputXLSX); err != nil {
			s.logger.Errorf("Failed to write cleaned workbook: %v", err)
		} else {
			s.logger.Infof("Saved %d records to %s", t.Len(), s.outputXLSX)
		}
	}
}
