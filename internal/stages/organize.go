package stages

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"shotline/internal/fileutil"
	"shotline/internal/logging"
	"shotline/internal/naming"
	"shotline/internal/pipeline"
	"shotline/internal/services"
	"shotline/internal/shot"
)

// Organize moves the finished plate sequence and any proxy out of staging
// into the standardized project tree. The sequence must be complete on disk
// before anything is moved.
type Organize struct {
	logger *slog.Logger
}

// NewOrganize constructs the organize stage.
func NewOrganize(logger *slog.Logger) *Organize {
	return &Organize{logger: logging.NewComponentLogger(logger, "stage-organize")}
}

func (s *Organize) Name() string { return StageOrganize }

func (s *Organize) InputType() pipeline.ArtifactType { return pipeline.ArtifactEXRSequence }

func (s *Organize) OutputType() pipeline.ArtifactType { return pipeline.ArtifactShotRecord }

func (s *Organize) Validate(_ context.Context, _ *shot.Record, input pipeline.Artifact) error {
	seq, err := sequenceInput(input)
	if err != nil {
		return services.Wrap(services.ErrValidation, StageOrganize, "validate", err.Error(), nil)
	}
	if missing := seq.MissingFrames(); len(missing) > 0 {
		return services.Wrap(services.ErrValidation, StageOrganize, "validate",
			fmt.Sprintf("plate sequence incomplete: %d of %d frames missing (first missing %d)",
				len(missing), seq.Count(), missing[0]), nil)
	}
	return nil
}

func (s *Organize) Process(ctx context.Context, record *shot.Record, input pipeline.Artifact, cfg pipeline.Config) (*pipeline.Result, error) {
	res := pipeline.NewResult(StageOrganize)

	seq, err := sequenceInput(input)
	if err != nil {
		return res, services.Wrap(services.ErrValidation, StageOrganize, "prepare", "", err)
	}

	root := cfg.String(pipeline.KeyProjectRoot, "")
	if root == "" {
		return res, services.Wrap(services.ErrConfiguration, StageOrganize, "prepare", "project root not configured", nil)
	}

	targetColorspace := cfg.String(pipeline.KeyTargetColorspace, naming.ColorspaceACEScg)
	tree := naming.NewTree(root)
	destDir := tree.ColorspaceDir(record.ShotName(), record.TaskType, record.Element, record.Version,
		naming.RepMain, targetColorspace)

	moved := 0
	for frame := seq.First; frame <= seq.Last; frame++ {
		if err := ctx.Err(); err != nil {
			return res, services.Wrap(services.ErrCancelled, StageOrganize, "move",
				fmt.Sprintf("interrupted after %d frames", moved), err)
		}
		src := seq.FramePath(frame)
		dst := filepath.Join(destDir, naming.SequenceFileName(record.ShotName(), record.TaskType, record.Element,
			record.Version, naming.RepMain, targetColorspace, frame, seq.Extension))
		if err := fileutil.MoveFile(src, dst); err != nil {
			return res, services.Wrap(services.ErrTransient, StageOrganize, "move",
				fmt.Sprintf("frame %d", frame), err)
		}
		moved++
	}
	record.PlatePath = destDir

	if record.ProxyPath != "" {
		dst := tree.MoviePath(record.ShotName(), record.TaskType, record.Element, record.Version,
			naming.RepProxy, cfg.String(pipeline.KeyProxyColorspace, naming.ColorspaceSRGB),
			trimmedExt(record.ProxyPath))
		if err := fileutil.MoveFile(record.ProxyPath, dst); err != nil {
			res.AddWarning(fmt.Sprintf("proxy not moved: %v", err))
		} else {
			record.ProxyPath = dst
		}
	}

	s.logger.Info("plate organized",
		logging.String(logging.FieldShot, record.ShotName()),
		logging.String("plate_dir", destDir),
		logging.Int("frames", moved))

	res.SetOutput(record)
	res.Data[pipeline.DataPlateDir] = destDir
	res.Data[pipeline.DataFramesProcessed] = moved
	res.Message = fmt.Sprintf("placed %d frames into %s", moved, destDir)
	return res, nil
}

func trimmedExt(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 1 {
		return ext[1:]
	}
	return "mp4"
}
