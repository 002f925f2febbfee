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
	"shotline/internal/services/ffmpeg"
	"shotline/internal/shot"
)

// Proxy encodes a review movie from the plate sequence. The plate sequence
// passes through unchanged, so the stage can be skipped without affecting
// downstream stages.
type Proxy struct {
	encoder ffmpeg.Encoder
	logger  *slog.Logger
}

// NewProxy constructs the proxy stage.
func NewProxy(encoder ffmpeg.Encoder, logger *slog.Logger) *Proxy {
	return &Proxy{encoder: encoder, logger: logging.NewComponentLogger(logger, "stage-proxy")}
}

func (s *Proxy) Name() string { return StageProxy }

func (s *Proxy) InputType() pipeline.ArtifactType { return pipeline.ArtifactEXRSequence }

func (s *Proxy) OutputType() pipeline.ArtifactType { return pipeline.ArtifactEXRSequence }

func (s *Proxy) Validate(_ context.Context, _ *shot.Record, input pipeline.Artifact) error {
	if s.encoder == nil {
		return services.Wrap(services.ErrConfiguration, StageProxy, "validate", "no encoder configured", nil)
	}
	if _, err := sequenceInput(input); err != nil {
		return services.Wrap(services.ErrValidation, StageProxy, "validate", err.Error(), nil)
	}
	return nil
}

func (s *Proxy) Process(ctx context.Context, record *shot.Record, input pipeline.Artifact, cfg pipeline.Config) (*pipeline.Result, error) {
	res := pipeline.NewResult(StageProxy)

	in, err := sequenceInput(input)
	if err != nil {
		return res, services.Wrap(services.ErrValidation, StageProxy, "prepare", "", err)
	}

	proxyColorspace := cfg.String(pipeline.KeyProxyColorspace, naming.ColorspaceSRGB)
	format := cfg.String(pipeline.KeyProxyFormat, "mp4")
	filename := naming.MovieFileName(record.ShotName(), record.TaskType, record.Element, record.Version,
		naming.RepProxy, proxyColorspace, format)
	outputPath := filepath.Join(tempDir(cfg, record), filename)

	opts := ffmpeg.ProxyOptions{
		Codec:  cfg.String(pipeline.KeyProxyCodec, "libx264"),
		CRF:    cfg.Int(pipeline.KeyProxyCRF, 18),
		Preset: cfg.String(pipeline.KeyProxyPreset, "medium"),
		FPS:    record.Cut.FPS,
	}
	if err := s.encoder.EncodeProxy(ctx, in, outputPath, opts); err != nil {
		return res, services.Wrap(services.ErrExternalTool, StageProxy, "encode", filename, err)
	}

	record.ProxyPath = outputPath
	s.logger.Info("proxy encoded",
		logging.String(logging.FieldShot, record.ShotName()),
		logging.String("proxy", filename))

	res.Data[pipeline.DataProxyFile] = outputPath
	res.Message = fmt.Sprintf("encoded proxy %s", filename)
	return res, nil
}
