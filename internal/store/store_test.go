package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"shotline/internal/pipeline"
	"shotline/internal/shot"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleSummary(runID string, status shot.Status) *pipeline.Summary {
	return &pipeline.Summary{
		Pipeline:   "standard-ingest",
		RunID:      runID,
		Shot:       "sht100",
		FirstFrame: 993,
		LastFrame:  1059,
		Status:     status,
		Duration:   90 * time.Second,
		StartedAt:  time.Now().UTC(),
		Outcomes: []pipeline.StageOutcome{
			{Stage: "convert", Result: &pipeline.Result{
				Stage:    "convert",
				Success:  true,
				Message:  "decoded 67 frames",
				Duration: 40 * time.Second,
			}},
			{Stage: "transform", Result: &pipeline.Result{
				Stage:    "transform",
				Success:  false,
				Kind:     pipeline.KindExecution,
				Message:  "transform failed",
				Errors:   []string{"oiiotool exited 1"},
				Warnings: []string{"slow filesystem"},
				Duration: 50 * time.Second,
			}},
			{Stage: "organize", Skipped: true, SkipReason: pipeline.SkipUpstreamFailure},
		},
	}
}

func TestSaveAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveSummary(ctx, "demo", sampleSummary("run-1", shot.StatusFailed)); err != nil {
		t.Fatalf("SaveSummary: %v", err)
	}

	runs, err := s.ListRuns(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	run := runs[0]
	if run.ID != "run-1" || run.Project != "demo" || run.Shot != "sht100" {
		t.Errorf("run = %+v", run)
	}
	if run.Status != shot.StatusFailed {
		t.Errorf("status = %s", run.Status)
	}
	if run.FirstFrame != 993 || run.LastFrame != 1059 {
		t.Errorf("frame range = %d-%d", run.FirstFrame, run.LastFrame)
	}
	if run.Duration != 90*time.Second {
		t.Errorf("duration = %v", run.Duration)
	}
}

func TestListRunsFiltersByShot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := sampleSummary("run-1", shot.StatusSucceeded)
	second := sampleSummary("run-2", shot.StatusSucceeded)
	second.Shot = "sht200"
	if err := s.SaveSummary(ctx, "demo", first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSummary(ctx, "demo", second); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(ctx, "sht200", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Shot != "sht200" {
		t.Fatalf("runs = %+v", runs)
	}
}

func TestRunStagesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveSummary(ctx, "demo", sampleSummary("run-1", shot.StatusFailed)); err != nil {
		t.Fatalf("SaveSummary: %v", err)
	}

	stages, err := s.RunStages(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunStages: %v", err)
	}
	if len(stages) != 3 {
		t.Fatalf("stages = %d, want 3", len(stages))
	}
	if stages[0].Stage != "convert" || !stages[0].Success {
		t.Errorf("first stage = %+v", stages[0])
	}
	failed := stages[1]
	if failed.Success || failed.Kind != string(pipeline.KindExecution) {
		t.Errorf("failed stage = %+v", failed)
	}
	if len(failed.Errors) != 1 || failed.Errors[0] != "oiiotool exited 1" {
		t.Errorf("errors = %v", failed.Errors)
	}
	if len(failed.Warnings) != 1 {
		t.Errorf("warnings = %v", failed.Warnings)
	}
	skipped := stages[2]
	if !skipped.Skipped || skipped.SkipReason != pipeline.SkipUpstreamFailure {
		t.Errorf("skipped stage = %+v", skipped)
	}
}

func TestSchemaSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	s, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if err := s.SaveSummary(context.Background(), "demo", sampleSummary("run-1", shot.StatusSucceeded)); err != nil {
		t.Fatalf("SaveSummary: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.ListRuns(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("ListRuns after reopen: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs after reopen = %d, want 1", len(runs))
	}
}
