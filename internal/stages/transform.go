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
	"shotline/internal/services/oiio"
	"shotline/internal/shot"
)

// Transform converts the DPX intermediate into the delivery colorspace and
// geometry, producing the plate sequence under its final file naming.
type Transform struct {
	transformer oiio.Transformer
	logger      *slog.Logger
}

// NewTransform constructs the transform stage.
func NewTransform(transformer oiio.Transformer, logger *slog.Logger) *Transform {
	return &Transform{transformer: transformer, logger: logging.NewComponentLogger(logger, "stage-transform")}
}

func (s *Transform) Name() string { return StageTransform }

func (s *Transform) InputType() pipeline.ArtifactType { return pipeline.ArtifactDPXSequence }

func (s *Transform) OutputType() pipeline.ArtifactType { return pipeline.ArtifactEXRSequence }

func (s *Transform) Validate(_ context.Context, _ *shot.Record, input pipeline.Artifact) error {
	if s.transformer == nil {
		return services.Wrap(services.ErrConfiguration, StageTransform, "validate", "no transformer configured", nil)
	}
	if _, err := sequenceInput(input); err != nil {
		return services.Wrap(services.ErrValidation, StageTransform, "validate", err.Error(), nil)
	}
	return nil
}

func (s *Transform) Process(ctx context.Context, record *shot.Record, input pipeline.Artifact, cfg pipeline.Config) (*pipeline.Result, error) {
	res := pipeline.NewResult(StageTransform)

	in, err := sequenceInput(input)
	if err != nil {
		return res, services.Wrap(services.ErrValidation, StageTransform, "prepare", "", err)
	}

	targetColorspace := cfg.String(pipeline.KeyTargetColorspace, naming.ColorspaceACEScg)
	format := cfg.String(pipeline.KeyPlateFormat, "exr")
	base := naming.BaseName(record.ShotName(), record.TaskType, record.Element, record.Version, naming.RepMain, targetColorspace)

	out, err := shot.NewSequence(
		filepath.Join(tempDir(cfg, record), naming.RepMain+"_"+targetColorspace),
		base,
		format,
		in.First,
		in.Last,
		naming.FramePadding,
	)
	if err != nil {
		return res, services.Wrap(services.ErrValidation, StageTransform, "prepare", "build plate sequence", err)
	}

	opts := oiio.TransformOptions{
		SourceColorspace:  cfg.String(pipeline.KeySourceColorspace, ""),
		TargetColorspace:  targetColorspace,
		AnamorphicSqueeze: cfg.Float(pipeline.KeyAnamorphicSqueeze, 1),
		TargetWidth:       cfg.Int(pipeline.KeyTargetWidth, 0),
		TargetHeight:      cfg.Int(pipeline.KeyTargetHeight, 0),
		Letterbox:         cfg.Bool(pipeline.KeyLetterbox, false),
		Compression:       cfg.String(pipeline.KeyPlateCompression, ""),
	}

	transformed := 0
	progress := func(int) { transformed++ }
	if err := s.transformer.Transform(ctx, in, out, opts, progress); err != nil {
		return res, services.Wrap(services.ErrExternalTool, StageTransform, "transform", in.Pattern(), err)
	}

	s.logger.Info("plate transformed",
		logging.String(logging.FieldShot, record.ShotName()),
		logging.String("colorspace", targetColorspace),
		logging.Int("frames", transformed))

	res.SetOutput(out)
	res.Data[pipeline.DataFramesProcessed] = out.Count()
	res.Message = fmt.Sprintf("transformed %d frames to %s", out.Count(), targetColorspace)
	return res, nil
}
