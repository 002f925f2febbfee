package stages

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"shotline/internal/logging"
	"shotline/internal/pipeline"
	"shotline/internal/services"
	"shotline/internal/shot"
)

// Cleanup removes the shot's staging directory once its outputs have been
// organized into the project tree.
type Cleanup struct {
	logger *slog.Logger
}

// NewCleanup constructs the cleanup stage.
func NewCleanup(logger *slog.Logger) *Cleanup {
	return &Cleanup{logger: logging.NewComponentLogger(logger, "stage-cleanup")}
}

func (s *Cleanup) Name() string { return StageCleanup }

func (s *Cleanup) InputType() pipeline.ArtifactType { return pipeline.ArtifactShotRecord }

func (s *Cleanup) OutputType() pipeline.ArtifactType { return pipeline.ArtifactShotRecord }

func (s *Cleanup) Validate(context.Context, *shot.Record, pipeline.Artifact) error {
	return nil
}

func (s *Cleanup) Process(_ context.Context, record *shot.Record, _ pipeline.Artifact, cfg pipeline.Config) (*pipeline.Result, error) {
	res := pipeline.NewResult(StageCleanup)

	dir := tempDir(cfg, record)
	if cfg.Bool(pipeline.KeyKeepTemp, false) {
		res.Message = fmt.Sprintf("kept staging directory %s", dir)
		return res, nil
	}

	// Refuse to remove anything that is not clearly a per-shot staging dir.
	if dir == "" || dir == string(filepath.Separator) || dir == cfg.String(pipeline.KeyProjectRoot, "\x00") {
		return res, services.Wrap(services.ErrConfiguration, StageCleanup, "remove",
			fmt.Sprintf("refusing to remove %q", dir), nil)
	}

	if err := os.RemoveAll(dir); err != nil {
		return res, services.Wrap(services.ErrTransient, StageCleanup, "remove", dir, err)
	}

	s.logger.Info("staging removed",
		logging.String(logging.FieldShot, record.ShotName()),
		logging.String("dir", dir))
	res.Message = fmt.Sprintf("removed staging directory %s", dir)
	return res, nil
}
