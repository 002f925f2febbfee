package stages

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"shotline/internal/logging"
	"shotline/internal/naming"
	"shotline/internal/pipeline"
	"shotline/internal/services"
	"shotline/internal/services/rawconv"
	"shotline/internal/shot"
)

// Convert decodes the camera-original source into a DPX intermediate
// sequence numbered on the shot's digital frame range.
type Convert struct {
	decoder rawconv.Decoder
	logger  *slog.Logger
}

// NewConvert constructs the conversion stage.
func NewConvert(decoder rawconv.Decoder, logger *slog.Logger) *Convert {
	return &Convert{decoder: decoder, logger: logging.NewComponentLogger(logger, "stage-convert")}
}

func (s *Convert) Name() string { return StageConvert }

func (s *Convert) InputType() pipeline.ArtifactType { return pipeline.ArtifactShotRecord }

func (s *Convert) OutputType() pipeline.ArtifactType { return pipeline.ArtifactDPXSequence }

func (s *Convert) Validate(_ context.Context, record *shot.Record, _ pipeline.Artifact) error {
	if s.decoder == nil {
		return services.Wrap(services.ErrConfiguration, StageConvert, "validate", "no decoder configured", nil)
	}
	if record.Cut.Source == "" {
		return services.Wrap(services.ErrValidation, StageConvert, "validate", "editorial cut has no source footage", nil)
	}
	if !record.HasFrameRange() {
		return services.Wrap(services.ErrValidation, StageConvert, "validate", "digital frame range not mapped", nil)
	}
	return nil
}

func (s *Convert) Process(ctx context.Context, record *shot.Record, _ pipeline.Artifact, cfg pipeline.Config) (*pipeline.Result, error) {
	res := pipeline.NewResult(StageConvert)

	out, err := shot.NewSequence(
		filepath.Join(tempDir(cfg, record), "dpx"),
		record.ShotName(),
		"dpx",
		record.FirstFrame,
		record.LastFrame,
		naming.FramePadding,
	)
	if err != nil {
		return res, services.Wrap(services.ErrValidation, StageConvert, "prepare", "build intermediate sequence", err)
	}

	decoded := 0
	progress := func(int) { decoded++ }
	if err := s.decoder.Decode(ctx, record.Cut.Source, out, progress); err != nil {
		return res, services.Wrap(services.ErrExternalTool, StageConvert, "decode", record.Cut.Source, err)
	}

	s.logger.Info("source decoded",
		logging.String(logging.FieldShot, record.ShotName()),
		logging.String("source", record.Cut.Source),
		logging.Int("frames", out.Count()))

	res.SetOutput(out)
	res.Data[pipeline.DataFramesProcessed] = out.Count()
	res.Message = fmt.Sprintf("decoded %d frames from %s", out.Count(), filepath.Base(record.Cut.Source))
	return res, nil
}
