package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Executor abstracts command execution so tool clients are testable without
// the underlying binaries installed.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// CommandExecutor runs commands through os/exec.
type CommandExecutor struct{}

// Run executes the binary, streaming stdout lines to onStdout when provided.
// Stderr is captured and included in the returned error on failure.
func (CommandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if onStdout != nil {
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("stdout pipe: %w", err)
		}
		if err := cmd.Start(); err != nil {
			return commandError(ctx, binary, stderr.String(), err)
		}
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			onStdout(scanner.Text())
		}
		scanErr := scanner.Err()
		if scanErr != nil {
			_, _ = io.Copy(io.Discard, stdout)
		}
		if err := cmd.Wait(); err != nil {
			return commandError(ctx, binary, stderr.String(), err)
		}
		if scanErr != nil {
			return fmt.Errorf("read %s output: %w", binary, scanErr)
		}
		return nil
	}

	if err := cmd.Run(); err != nil {
		return commandError(ctx, binary, stderr.String(), err)
	}
	return nil
}

func commandError(ctx context.Context, binary, stderr string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %s interrupted: %w", ErrCancelled, binary, ctx.Err())
	}
	detail := strings.TrimSpace(stderr)
	if detail != "" {
		if len(detail) > 500 {
			detail = detail[len(detail)-500:]
		}
		return fmt.Errorf("%s failed: %w: %s", binary, err, detail)
	}
	return fmt.Errorf("%s failed: %w", binary, err)
}
