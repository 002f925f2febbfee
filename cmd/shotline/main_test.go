package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCLIConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(
		"project = %q\n\n[paths]\nproject_root = %q\nstaging_dir = %q\nlog_dir = %q\n",
		"testproj",
		filepath.Join(base, "project"),
		filepath.Join(base, "staging"),
		filepath.Join(base, "logs"),
	)
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIMapCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "map", "--in", "100", "--out", "150")
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if !strings.Contains(out, "993-1059") {
		t.Fatalf("expected digital range 993-1059, got %q", out)
	}
	if !strings.Contains(out, "67 frames") {
		t.Fatalf("expected 67 digital frames, got %q", out)
	}
}

func TestCLIMapCommandRejectsInvertedRange(t *testing.T) {
	_, _, err := runCLI(t, "", "map", "--in", "150", "--out", "100")
	if err == nil {
		t.Fatal("expected error for inverted editorial range")
	}
}

func TestCLIMapCommandCustomHandles(t *testing.T) {
	out, _, err := runCLI(t, "", "map", "--in", "1", "--out", "24", "--head", "0", "--tail", "0", "--start", "1")
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if !strings.Contains(out, "1-24") {
		t.Fatalf("expected digital range 1-24, got %q", out)
	}
}

func TestCLIConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected output to mention %s, got %q", target, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists without --overwrite")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestCLIConfigShow(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, _, err := runCLI(t, configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, configPath) {
		t.Fatalf("expected resolved path in output, got %q", out)
	}
	if !strings.Contains(out, "testproj") {
		t.Fatalf("expected project name in output, got %q", out)
	}
}

func TestCLIRunsEmpty(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, _, err := runCLI(t, configPath, "runs")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(out, "No runs recorded.") {
		t.Fatalf("expected empty history message, got %q", out)
	}
}

func TestCLIIngestRequiresInput(t *testing.T) {
	configPath := writeCLIConfig(t)

	_, _, err := runCLI(t, configPath, "ingest")
	if err == nil {
		t.Fatal("expected error when neither manifest nor shot flags are given")
	}
	if !strings.Contains(err.Error(), "nothing to ingest") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCLIIngestRejectsMixedInput(t *testing.T) {
	configPath := writeCLIConfig(t)

	_, _, err := runCLI(t, configPath, "ingest",
		"--manifest", "shots.json", "--shot", "sht100")
	if err == nil {
		t.Fatal("expected error for manifest plus single-shot flags")
	}
}
