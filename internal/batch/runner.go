package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"shotline/internal/config"
	"shotline/internal/frames"
	"shotline/internal/logging"
	"shotline/internal/pipeline"
	"shotline/internal/shot"
	"shotline/internal/store"
)

// ShotResult pairs one manifest entry with its run outcome. Err is set only
// for contract failures before or instead of a pipeline run; stage failures
// live inside the Summary.
type ShotResult struct {
	Entry   Entry
	Record  *shot.Record
	Summary *pipeline.Summary
	Err     error
}

// Runner executes manifest entries through a pipeline with bounded
// concurrency.
type Runner struct {
	cfg     *config.Config
	pipe    *pipeline.Pipeline
	history *store.Store
	logger  *slog.Logger
}

// NewRunner constructs a Runner. history may be nil to skip run persistence.
func NewRunner(cfg *config.Config, pipe *pipeline.Pipeline, history *store.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, pipe: pipe, history: history, logger: logger}
}

// Run ingests all entries. It holds an exclusive lock on the staging area
// for the duration so two batches cannot interleave staging writes. Results
// come back in manifest order regardless of completion order.
func (r *Runner) Run(ctx context.Context, entries []Entry, policy pipeline.Policy) ([]ShotResult, error) {
	if len(entries) == 0 {
		return nil, errors.New("no shots to ingest")
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.StagingDir, "shotline.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire staging lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another ingest is already running against this staging area")
	}
	defer func() { _ = lock.Unlock() }()

	workers := r.cfg.Batch.MaxConcurrent
	if workers <= 0 {
		workers = 1
	}
	r.logger.Info("batch started",
		logging.Int("shots", len(entries)),
		logging.Int("workers", workers),
		logging.String("policy", string(policy)))

	base := StageConfig(r.cfg)
	results := make([]ShotResult, len(entries))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry Entry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = r.runShot(ctx, entry, base, policy)
		}(i, entry)
	}
	wg.Wait()

	r.logger.Info("batch finished", logging.Int("shots", len(entries)))
	return results, nil
}

func (r *Runner) runShot(ctx context.Context, entry Entry, base pipeline.Config, policy pipeline.Policy) ShotResult {
	result := ShotResult{Entry: entry}

	record, err := r.buildRecord(entry)
	if err != nil {
		result.Err = err
		return result
	}
	result.Record = record

	tempDir := filepath.Join(r.cfg.Paths.StagingDir,
		fmt.Sprintf("%s-%s", record.ShotName(), uuid.NewString()))
	runCfg := pipeline.Merge(base, entry.Overrides, pipeline.Config{
		pipeline.KeyTempDir: tempDir,
	})

	summary, err := r.pipe.Run(ctx, record, runCfg, policy)
	if err != nil {
		result.Err = err
		return result
	}
	result.Summary = summary

	if r.history != nil {
		if err := r.history.SaveSummary(context.WithoutCancel(ctx), r.cfg.Project, summary); err != nil {
			r.logger.Error("run history not saved",
				logging.String(logging.FieldShot, summary.Shot),
				logging.Error(err))
		}
	}
	return result
}

func (r *Runner) buildRecord(entry Entry) (*shot.Record, error) {
	cut, err := shot.NewEditorialCut(entry.Sequence, entry.Shot, entry.Source, entry.InPoint, entry.OutPoint)
	if err != nil {
		return nil, err
	}
	if entry.FPS > 0 {
		cut.FPS = entry.FPS
	}
	cut.Timecode = entry.Timecode
	cut.Notes = entry.Notes

	record := shot.NewRecord(r.cfg.Project, cut)
	if entry.TaskType != "" {
		record.TaskType = entry.TaskType
	}
	if entry.Element != "" {
		record.Element = entry.Element
	}
	if entry.Version > 0 {
		record.Version = entry.Version
	}

	rg, err := frames.Map(entry.InPoint, entry.OutPoint,
		r.cfg.Frames.HeadHandles, r.cfg.Frames.TailHandles, r.cfg.Frames.DigitalStart)
	if err != nil {
		return nil, fmt.Errorf("map frame range for %s: %w", record.ShotName(), err)
	}
	if err := record.SetFrameRange(rg); err != nil {
		return nil, err
	}
	return record, nil
}
