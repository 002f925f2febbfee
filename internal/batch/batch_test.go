package batch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"shotline/internal/config"
	"shotline/internal/pipeline"
	"shotline/internal/shot"
	"shotline/internal/store"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shots.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `{
		"shots": [
			{"sequence": "sht", "shot": "100", "source": "/footage/A001_C002.mxf", "in_point": 100, "out_point": 150},
			{"sequence": "sht", "shot": "200", "source": "/footage/A001_C003.mxf", "in_point": 0, "out_point": 99,
			 "version": 2, "overrides": {"proxy_enabled": false}}
		]
	}`)

	entries, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Shot != "100" || entries[0].OutPoint != 150 {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Version != 2 {
		t.Errorf("second entry version = %d", entries[1].Version)
	}
	if enabled, ok := entries[1].Overrides["proxy_enabled"].(bool); !ok || enabled {
		t.Errorf("overrides = %v", entries[1].Overrides)
	}
}

func TestLoadManifestRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty", `{"shots": []}`},
		{"missing source", `{"shots": [{"sequence": "sht", "shot": "100", "in_point": 1, "out_point": 2}]}`},
		{"inverted range", `{"shots": [{"sequence": "sht", "shot": "100", "source": "/a.mxf", "in_point": 5, "out_point": 5}]}`},
		{"duplicate shot", `{"shots": [
			{"sequence": "sht", "shot": "100", "source": "/a.mxf", "in_point": 1, "out_point": 2},
			{"sequence": "sht", "shot": "100", "source": "/b.mxf", "in_point": 1, "out_point": 2}
		]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadManifest(writeManifest(t, tc.content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestStageConfigMapping(t *testing.T) {
	cfg := config.Default()
	cfg.Project = "demo"
	cfg.Paths.ProjectRoot = "/proj/demo"
	cfg.Proxy.Enabled = true
	cfg.Plate.Compression = "dwaa:15"

	sc := StageConfig(&cfg)
	if sc.String(pipeline.KeyProject, "") != "demo" {
		t.Errorf("project = %q", sc.String(pipeline.KeyProject, ""))
	}
	if sc.Int(pipeline.KeyDigitalStart, 0) != 1001 {
		t.Errorf("digital start = %d", sc.Int(pipeline.KeyDigitalStart, 0))
	}
	if sc.Int(pipeline.KeyHeadHandles, 0) != 8 || sc.Int(pipeline.KeyTailHandles, 0) != 8 {
		t.Error("handle counts not mapped")
	}
	if !sc.Bool(pipeline.KeyProxyEnabled, false) {
		t.Error("proxy enabled not mapped")
	}
	if sc.String(pipeline.KeyPlateCompression, "") != "dwaa:15" {
		t.Error("compression not mapped")
	}
}

type countingStage struct {
	mu     sync.Mutex
	active int32
	peak   int32
	runs   int
}

func (s *countingStage) Name() string                      { return "count" }
func (s *countingStage) InputType() pipeline.ArtifactType  { return pipeline.ArtifactShotRecord }
func (s *countingStage) OutputType() pipeline.ArtifactType { return pipeline.ArtifactShotRecord }

func (s *countingStage) Validate(context.Context, *shot.Record, pipeline.Artifact) error {
	return nil
}

func (s *countingStage) Process(_ context.Context, _ *shot.Record, _ pipeline.Artifact, _ pipeline.Config) (*pipeline.Result, error) {
	current := atomic.AddInt32(&s.active, 1)
	defer atomic.AddInt32(&s.active, -1)
	s.mu.Lock()
	if current > s.peak {
		s.peak = current
	}
	s.runs++
	s.mu.Unlock()
	return pipeline.NewResult("count"), nil
}

func testBatchConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Project = "demo"
	cfg.Paths.StagingDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.ProjectRoot = t.TempDir()
	cfg.Batch.MaxConcurrent = 2
	return &cfg
}

func testEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{
			Sequence: "sht",
			Shot:     string(rune('1'+i)) + "00",
			Source:   "/footage/clip.mxf",
			InPoint:  100,
			OutPoint: 150,
		}
	}
	return entries
}

func TestRunnerMapsFrameRangeAndRunsAllShots(t *testing.T) {
	stage := &countingStage{}
	pipe, err := pipeline.NewBuilder("test").AddStage(stage).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cfg := testBatchConfig(t)
	runner := NewRunner(cfg, pipe, nil, nil)

	results, err := runner.Run(context.Background(), testEntries(3), pipeline.StopOnError)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for _, result := range results {
		if result.Err != nil {
			t.Fatalf("shot %s: %v", result.Entry.Shot, result.Err)
		}
		if result.Summary == nil || result.Summary.Status != shot.StatusSucceeded {
			t.Errorf("shot %s summary = %+v", result.Entry.Shot, result.Summary)
		}
		// 51 editorial frames + 8 head + 8 tail, starting at 1001-8.
		if result.Record.FirstFrame != 993 || result.Record.LastFrame != 1059 {
			t.Errorf("shot %s range = %d-%d, want 993-1059",
				result.Entry.Shot, result.Record.FirstFrame, result.Record.LastFrame)
		}
	}
	if stage.runs != 3 {
		t.Errorf("stage runs = %d, want 3", stage.runs)
	}
	if stage.peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", stage.peak)
	}
}

func TestRunnerPersistsSummaries(t *testing.T) {
	stage := &countingStage{}
	pipe, err := pipeline.NewBuilder("test").AddStage(stage).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cfg := testBatchConfig(t)
	history, err := store.OpenPath(filepath.Join(cfg.Paths.LogDir, "runs.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	defer history.Close()

	runner := NewRunner(cfg, pipe, history, nil)
	if _, err := runner.Run(context.Background(), testEntries(2), pipeline.StopOnError); err != nil {
		t.Fatalf("Run: %v", err)
	}

	runs, err := history.ListRuns(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("persisted runs = %d, want 2", len(runs))
	}
}

func TestRunnerRejectsEmptyBatch(t *testing.T) {
	pipe, _ := pipeline.NewBuilder("test").AddStage(&countingStage{}).Build()
	runner := NewRunner(testBatchConfig(t), pipe, nil, nil)
	if _, err := runner.Run(context.Background(), nil, pipeline.StopOnError); err == nil {
		t.Fatal("expected error for empty batch")
	}
}

func TestRunnerReportsBadEntry(t *testing.T) {
	pipe, _ := pipeline.NewBuilder("test").AddStage(&countingStage{}).Build()
	runner := NewRunner(testBatchConfig(t), pipe, nil, nil)

	entries := testEntries(1)
	entries[0].OutPoint = entries[0].InPoint // invalid cut
	results, err := runner.Run(context.Background(), entries, pipeline.StopOnError)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Err == nil {
		t.Fatal("expected per-shot error for invalid cut")
	}
	if results[0].Summary != nil {
		t.Error("invalid entry should not produce a summary")
	}
}

func TestStandardPipelineStageOrder(t *testing.T) {
	svcs := &Services{}
	pipe, err := StandardPipeline(svcs, nil)
	if err != nil {
		t.Fatalf("StandardPipeline: %v", err)
	}
	want := []string{"convert", "transform", "proxy", "organize", "register", "cleanup"}
	got := pipe.StageNames()
	if len(got) != len(want) {
		t.Fatalf("stages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d = %q, want %q", i, got[i], want[i])
		}
	}
}
