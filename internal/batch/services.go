package batch

import (
	"fmt"
	"time"

	"shotline/internal/config"
	"shotline/internal/services/ffmpeg"
	"shotline/internal/services/oiio"
	"shotline/internal/services/rawconv"
	"shotline/internal/services/tracker"
)

// Services bundles the external tool clients the standard pipeline needs.
// Tests substitute fakes; production wiring comes from NewServices.
type Services struct {
	Decoder     rawconv.Decoder
	Transformer oiio.Transformer
	Encoder     ffmpeg.Encoder
	Tracker     tracker.Service
}

// NewServices builds the production tool clients from configuration. The
// tracker client is only constructed when tracker integration is enabled.
func NewServices(cfg *config.Config) (*Services, error) {
	decoder, err := rawconv.New(cfg.Tools.RawDecoder)
	if err != nil {
		return nil, fmt.Errorf("raw decoder client: %w", err)
	}
	transformer, err := oiio.New(cfg.Tools.OIIOTool)
	if err != nil {
		return nil, fmt.Errorf("oiiotool client: %w", err)
	}
	encoder, err := ffmpeg.New(cfg.Tools.FFmpeg)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg client: %w", err)
	}

	services := &Services{
		Decoder:     decoder,
		Transformer: transformer,
		Encoder:     encoder,
	}

	if cfg.Tracker.Enabled {
		client, err := tracker.New(cfg.Tracker.BaseURL, cfg.Tracker.Email, cfg.Tracker.Password,
			time.Duration(cfg.Tracker.TimeoutSeconds)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("tracker client: %w", err)
		}
		services.Tracker = client
	}

	return services, nil
}
