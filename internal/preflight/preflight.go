package preflight

import (
	"context"

	"shotline/internal/config"
	"shotline/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	if cfg.Paths.ProjectRoot != "" {
		results = append(results, CheckDirectoryAccess("Project root", cfg.Paths.ProjectRoot))
	}
	if cfg.Batch.MinFreeGiB > 0 {
		results = append(results, CheckFreeSpace("Staging free space", cfg.Paths.StagingDir, uint64(cfg.Batch.MinFreeGiB)))
	}
	if cfg.Tracker.Enabled {
		results = append(results, CheckTracker(ctx, cfg.Tracker.BaseURL))
	}

	return results
}

// CheckSystemDeps evaluates the tool binaries for the given config. Both
// preflight and the CLI status command use this so the requirements list is
// defined once.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "Raw decoder",
			Command:     cfg.Tools.RawDecoder,
			Description: "Required for camera-original decode",
		},
		{
			Name:        "oiiotool",
			Command:     cfg.Tools.OIIOTool,
			Description: "Required for color and geometry transforms",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "Required for proxy encoding",
			Optional:    !cfg.Proxy.Enabled,
		},
	}
	return deps.CheckBinaries(requirements)
}

// AllPassed reports whether every check passed and every required binary is
// available.
func AllPassed(checks []Result, binaries []deps.Status) bool {
	for _, check := range checks {
		if !check.Passed {
			return false
		}
	}
	for _, status := range binaries {
		if !status.Available && !status.Optional {
			return false
		}
	}
	return true
}
