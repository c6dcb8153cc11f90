package jobs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/models"
)

type fakeLister struct {
	feedback []models.Feedback
	err      error
}

func (f *fakeLister) ListAll(context.Context, int64) ([]models.Feedback, error) {
	return f.feedback, f.err
}

func TestRunExport_WritesJSONL(t *testing.T) {
	dir := t.TempDir()
	lister := &fakeLister{feedback: []models.Feedback{
		{ID: "fb-1", InterviewID: "iv-1", UserID: "u1", TotalScore: 70},
		{ID: "fb-2", InterviewID: "iv-2", UserID: "u2", TotalScore: 85},
	}}
	job := NewFeedbackExporterJob(lister, &ExporterConfig{ExportDir: dir, ExportEnabled: true}, zap.NewNop())

	if err := job.RunExport(context.Background()); err != nil {
		t.Fatalf("RunExport error: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "feedback_export_*.jsonl"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one export file, got %v (err %v)", files, err)
	}

	f, err := os.Open(files[0])
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var fb models.Feedback
		if err := json.Unmarshal([]byte(line), &fb); err != nil {
			t.Fatalf("line is not valid JSON: %q (%v)", line, err)
		}
		ids = append(ids, fb.ID)
	}
	if len(ids) != 2 || ids[0] != "fb-1" || ids[1] != "fb-2" {
		t.Fatalf("unexpected exported ids: %v", ids)
	}
}

func TestRunExport_NothingToExport(t *testing.T) {
	dir := t.TempDir()
	job := NewFeedbackExporterJob(&fakeLister{}, &ExporterConfig{ExportDir: dir}, zap.NewNop())

	if err := job.RunExport(context.Background()); err != nil {
		t.Fatalf("RunExport error: %v", err)
	}

	files, _ := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if len(files) != 0 {
		t.Fatalf("expected no export files, got %v", files)
	}
}

func TestRunExport_RepoFailure(t *testing.T) {
	job := NewFeedbackExporterJob(&fakeLister{err: errors.New("db down")}, &ExporterConfig{ExportDir: t.TempDir()}, zap.NewNop())

	if err := job.RunExport(context.Background()); err == nil {
		t.Fatal("expected error when the repository fails")
	}
}

func TestStart_DisabledSchedulerIsNoop(t *testing.T) {
	job := NewFeedbackExporterJob(&fakeLister{}, &ExporterConfig{ExportEnabled: false}, zap.NewNop())
	if err := job.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	job.Stop()
}
