package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration invariants that would otherwise surface as
// confusing mid-run failures.
func (c *Config) Validate() error {
	var problems []string

	if c.Frames.DigitalStart < 0 {
		problems = append(problems, "frames.digital_start must not be negative")
	}
	if c.Frames.HeadHandles < 0 || c.Frames.TailHandles < 0 {
		problems = append(problems, "frame handles must not be negative")
	}
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		problems = append(problems, "paths.staging_dir is required")
	}
	if strings.TrimSpace(c.Paths.ProjectRoot) == "" {
		problems = append(problems, "paths.project_root is required")
	}
	if c.Proxy.Enabled && strings.TrimSpace(c.Tools.FFmpeg) == "" {
		problems = append(problems, "tools.ffmpeg is required when proxy encoding is enabled")
	}
	if c.Tracker.Enabled {
		if strings.TrimSpace(c.Tracker.BaseURL) == "" {
			problems = append(problems, "tracker.base_url is required when tracker registration is enabled")
		}
		if strings.TrimSpace(c.Tracker.Email) == "" {
			problems = append(problems, "tracker.email is required when tracker registration is enabled")
		}
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
