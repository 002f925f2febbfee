package config

const (
	defaultProjectRoot      = "~/projects"
	defaultStagingDir       = "~/.local/share/shotline/staging"
	defaultLogDir           = "~/.local/share/shotline/logs"
	defaultDigitalStart     = 1001
	defaultHeadHandles      = 8
	defaultTailHandles      = 8
	defaultRawDecoder       = "rawexport"
	defaultOIIOTool         = "oiiotool"
	defaultFFmpeg           = "ffmpeg"
	defaultPlateFormat      = "exr"
	defaultPlateCompression = "dwaa:15"
	defaultSourceColorspace = "SLog3-SGamut3.Cine"
	defaultTargetColorspace = "ACES - ACEScg"
	defaultTargetWidth      = 3840
	defaultTargetHeight     = 2160
	defaultProxyFormat      = "mp4"
	defaultProxyCodec       = "libx264"
	defaultProxyCRF         = 18
	defaultProxyPreset      = "medium"
	defaultProxyColorspace  = "sRGB"
	defaultTrackerTimeout   = 120
	defaultMaxConcurrent    = 2
	defaultMinFreeGiB       = 10
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Project: "",
		Paths: Paths{
			ProjectRoot: defaultProjectRoot,
			StagingDir:  defaultStagingDir,
			LogDir:      defaultLogDir,
		},
		Frames: Frames{
			DigitalStart: defaultDigitalStart,
			HeadHandles:  defaultHeadHandles,
			TailHandles:  defaultTailHandles,
		},
		Tools: Tools{
			RawDecoder: defaultRawDecoder,
			OIIOTool:   defaultOIIOTool,
			FFmpeg:     defaultFFmpeg,
		},
		Plate: Plate{
			Format:            defaultPlateFormat,
			Compression:       defaultPlateCompression,
			SourceColorspace:  defaultSourceColorspace,
			TargetColorspace:  defaultTargetColorspace,
			AnamorphicSqueeze: 2.0,
			TargetWidth:       defaultTargetWidth,
			TargetHeight:      defaultTargetHeight,
			Letterbox:         true,
		},
		Proxy: Proxy{
			Enabled:    true,
			Format:     defaultProxyFormat,
			Codec:      defaultProxyCodec,
			CRF:        defaultProxyCRF,
			Preset:     defaultProxyPreset,
			Colorspace: defaultProxyColorspace,
		},
		Tracker: Tracker{
			Enabled:        false,
			TimeoutSeconds: defaultTrackerTimeout,
		},
		Batch: Batch{
			MaxConcurrent: defaultMaxConcurrent,
			MinFreeGiB:    defaultMinFreeGiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
