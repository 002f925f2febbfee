package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Frames.DigitalStart != 1001 || cfg.Frames.HeadHandles != 8 {
		t.Fatalf("defaults not applied: %+v", cfg.Frames)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
project = "demo"

[frames]
digital_start = 2001
head_handles = 4

[proxy]
enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatalf("expected exists=true")
	}
	if cfg.Frames.DigitalStart != 2001 {
		t.Fatalf("digital_start = %d, want 2001", cfg.Frames.DigitalStart)
	}
	if cfg.Frames.HeadHandles != 4 {
		t.Fatalf("head_handles = %d, want 4", cfg.Frames.HeadHandles)
	}
	// Untouched keys keep defaults.
	if cfg.Frames.TailHandles != 8 {
		t.Fatalf("tail_handles = %d, want default 8", cfg.Frames.TailHandles)
	}
	if cfg.Proxy.Enabled {
		t.Fatalf("proxy should be disabled")
	}
}

func TestValidateRejectsNegativeHandles(t *testing.T) {
	cfg := Default()
	cfg.Frames.HeadHandles = -1
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "handles") {
		t.Fatalf("expected handle validation error, got %v", err)
	}
}

func TestValidateTrackerRequiresURL(t *testing.T) {
	cfg := Default()
	cfg.Tracker.Enabled = true
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "tracker.base_url") {
		t.Fatalf("expected tracker validation error, got %v", err)
	}
}

func TestCreateSampleParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := Load(path); err != nil || !exists {
		t.Fatalf("Load(sample) = exists=%v err=%v", exists, err)
	}
}
