package services

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestCommandExecutorStreamsStdout(t *testing.T) {
	script := writeScript(t, "emit", "echo one\necho two\n")

	var lines []string
	err := CommandExecutor{}.Run(context.Background(), script, nil, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestCommandExecutorIncludesStderrOnFailure(t *testing.T) {
	script := writeScript(t, "fail", "echo 'no such frame' >&2\nexit 3\n")

	err := CommandExecutor{}.Run(context.Background(), script, nil, func(string) {})
	if err == nil {
		t.Fatal("expected error for exit 3")
	}
	if !strings.Contains(err.Error(), "no such frame") {
		t.Fatalf("error missing stderr detail: %v", err)
	}
}

func TestCommandExecutorReportsOversizedLine(t *testing.T) {
	script := writeScript(t, "blast", "head -c 2097152 /dev/zero | tr '\\0' a\n")

	err := CommandExecutor{}.Run(context.Background(), script, nil, func(string) {})
	if err == nil {
		t.Fatal("expected error for output line over the scanner limit")
	}
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("error = %v, want wrapped bufio.ErrTooLong", err)
	}
}

func TestCommandExecutorCancelledContext(t *testing.T) {
	script := writeScript(t, "slow", "sleep 10\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CommandExecutor{}.Run(ctx, script, nil, func(string) {})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", err)
	}
}
