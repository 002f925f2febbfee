package batch

import (
	"shotline/internal/config"
	"shotline/internal/pipeline"
)

// StageConfig flattens the file configuration into the per-run stage
// configuration mapping.
func StageConfig(cfg *config.Config) pipeline.Config {
	return pipeline.Config{
		pipeline.KeyProject:     cfg.Project,
		pipeline.KeyProjectRoot: cfg.Paths.ProjectRoot,
		pipeline.KeyStagingDir:  cfg.Paths.StagingDir,

		pipeline.KeyRawDecoderBin: cfg.Tools.RawDecoder,
		pipeline.KeyOIIOBin:       cfg.Tools.OIIOTool,
		pipeline.KeyFFmpegBin:     cfg.Tools.FFmpeg,

		pipeline.KeyDigitalStart: cfg.Frames.DigitalStart,
		pipeline.KeyHeadHandles:  cfg.Frames.HeadHandles,
		pipeline.KeyTailHandles:  cfg.Frames.TailHandles,

		pipeline.KeyPlateFormat:       cfg.Plate.Format,
		pipeline.KeyPlateCompression:  cfg.Plate.Compression,
		pipeline.KeySourceColorspace:  cfg.Plate.SourceColorspace,
		pipeline.KeyTargetColorspace:  cfg.Plate.TargetColorspace,
		pipeline.KeyAnamorphicSqueeze: cfg.Plate.AnamorphicSqueeze,
		pipeline.KeyTargetWidth:       cfg.Plate.TargetWidth,
		pipeline.KeyTargetHeight:      cfg.Plate.TargetHeight,
		pipeline.KeyLetterbox:         cfg.Plate.Letterbox,

		pipeline.KeyProxyEnabled:    cfg.Proxy.Enabled,
		pipeline.KeyProxyFormat:     cfg.Proxy.Format,
		pipeline.KeyProxyCodec:      cfg.Proxy.Codec,
		pipeline.KeyProxyCRF:        cfg.Proxy.CRF,
		pipeline.KeyProxyPreset:     cfg.Proxy.Preset,
		pipeline.KeyProxyColorspace: cfg.Proxy.Colorspace,

		pipeline.KeyTrackerEnabled: cfg.Tracker.Enabled,
	}
}
