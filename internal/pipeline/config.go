package pipeline

// Config is the per-run stage configuration mapping. It is assembled once
// before a run begins (defaults, then file values, then caller overrides)
// and threaded unchanged into every stage call.
type Config map[string]any

// Recognized configuration keys.
const (
	KeyProject     = "project"
	KeyProjectRoot = "project_root"
	KeyStagingDir  = "staging_dir"
	KeyTempDir     = "temp_dir"
	KeyKeepTemp    = "keep_temp"

	KeyRawDecoderBin = "raw_decoder_bin"
	KeyOIIOBin       = "oiiotool_bin"
	KeyFFmpegBin     = "ffmpeg_bin"

	KeyDigitalStart = "digital_start"
	KeyHeadHandles  = "head_handles"
	KeyTailHandles  = "tail_handles"

	KeyPlateFormat       = "plate_format"
	KeyPlateCompression  = "plate_compression"
	KeySourceColorspace  = "source_colorspace"
	KeyTargetColorspace  = "target_colorspace"
	KeyAnamorphicSqueeze = "anamorphic_squeeze"
	KeyTargetWidth       = "target_width"
	KeyTargetHeight      = "target_height"
	KeyLetterbox         = "letterbox"

	KeyProxyEnabled    = "proxy_enabled"
	KeyProxyFormat     = "proxy_format"
	KeyProxyCodec      = "proxy_codec"
	KeyProxyCRF        = "proxy_crf"
	KeyProxyPreset     = "proxy_preset"
	KeyProxyColorspace = "proxy_colorspace"

	KeyTrackerEnabled = "tracker_enabled"
)

// Merge combines configuration layers into a new Config. Later layers win;
// the merge is shallow, by key. Nil layers are skipped.
func Merge(layers ...Config) Config {
	merged := make(Config)
	for _, layer := range layers {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}

// String returns the string stored under key, or fallback when the key is
// missing or holds a different type.
func (c Config) String(key, fallback string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return fallback
}

// Int returns the int stored under key, accepting int and int64 values.
func (c Config) Int(key string, fallback int) int {
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return fallback
	}
}

// Bool returns the bool stored under key, or fallback.
func (c Config) Bool(key string, fallback bool) bool {
	if v, ok := c[key].(bool); ok {
		return v
	}
	return fallback
}

// Float returns the float64 stored under key, accepting float64 and int.
func (c Config) Float(key string, fallback float64) float64 {
	switch v := c[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}
