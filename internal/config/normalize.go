package config

import "strings"

func (c *Config) normalize() error {
	for _, field := range []*string{
		&c.Paths.ProjectRoot,
		&c.Paths.StagingDir,
		&c.Paths.LogDir,
	} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Project = strings.TrimSpace(c.Project)
	c.Tools.RawDecoder = strings.TrimSpace(c.Tools.RawDecoder)
	c.Tools.OIIOTool = strings.TrimSpace(c.Tools.OIIOTool)
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tracker.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.Tracker.BaseURL), "/")
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Batch.MaxConcurrent <= 0 {
		c.Batch.MaxConcurrent = defaultMaxConcurrent
	}
	if c.Tracker.TimeoutSeconds <= 0 {
		c.Tracker.TimeoutSeconds = defaultTrackerTimeout
	}
	return nil
}
