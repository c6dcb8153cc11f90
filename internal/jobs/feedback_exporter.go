// Package jobs holds the scheduled background work: a nightly export of
// stored feedback evaluations to JSONL for offline analysis.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/models"
)

// FeedbackLister is the slice of the feedback repository the exporter
// needs.
type FeedbackLister interface {
	ListAll(ctx context.Context, limit int64) ([]models.Feedback, error)
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string // Directory to store exported files
	ExportEnabled bool   // Whether to run exports
}

type FeedbackExporterJob struct {
	repo   FeedbackLister
	config *ExporterConfig
	logger *zap.Logger
	cron   *cron.Cron
}

func NewFeedbackExporterJob(repo FeedbackLister, config *ExporterConfig, logger *zap.Logger) *FeedbackExporterJob {
	return &FeedbackExporterJob{
		repo:   repo,
		config: config,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start begins the scheduled export job
func (fej *FeedbackExporterJob) Start() error {
	if !fej.config.ExportEnabled {
		fej.logger.Info("feedback export is disabled, skipping scheduler")
		return nil
	}

	fej.logger.Info("starting feedback exporter", zap.String("schedule", fej.config.Schedule))

	_, err := fej.cron.AddFunc(fej.config.Schedule, func() {
		if err := fej.RunExport(context.Background()); err != nil {
			fej.logger.Error("export job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	fej.cron.Start()
	return nil
}

// Stop stops the scheduled export job
func (fej *FeedbackExporterJob) Stop() {
	if fej.cron != nil {
		fej.cron.Stop()
		fej.logger.Info("feedback exporter stopped")
	}
}

// RunExport performs a single export run: every stored evaluation is
// written as one JSON object per line, timestamped file per run.
func (fej *FeedbackExporterJob) RunExport(ctx context.Context) error {
	feedback, err := fej.repo.ListAll(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}

	if len(feedback) == 0 {
		fej.logger.Info("no feedback to export")
		return nil
	}

	data, err := toJSONL(feedback)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	if err := os.MkdirAll(fej.config.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("feedback_export_%s.jsonl", timestamp)
	path := filepath.Join(fej.config.ExportDir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fej.logger.Info("exported feedback records",
		zap.Int("count", len(feedback)),
		zap.String("path", path))
	return nil
}

func toJSONL(feedback []models.Feedback) ([]byte, error) {
	var out []byte
	for _, fb := range feedback {
		line, err := json.Marshal(fb)
		if err != nil {
			return nil, err
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out, nil
}
