package rawconv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"shotline/internal/services"
	"shotline/internal/shot"
)

// Decoder defines the behaviour required by the conversion stage.
type Decoder interface {
	Decode(ctx context.Context, sourcePath string, out shot.Sequence, progress func(frame int)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps the raw decoder CLI.
type Client struct {
	binary string
	exec   services.Executor
}

var _ Decoder = (*Client)(nil)

// New constructs a raw decoder client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("raw decoder binary required")
	}
	client := &Client{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

var frameLine = regexp.MustCompile(`^frame\s+(\d+)`)

// Decode runs the decoder against one camera-original source, writing frames
// into the destination sequence. The decoder numbers output frames from the
// sequence's first frame so handles land on the digital range directly.
func (c *Client) Decode(ctx context.Context, sourcePath string, out shot.Sequence, progress func(frame int)) error {
	if sourcePath == "" {
		return errors.New("source path required")
	}
	if _, err := os.Stat(sourcePath); err != nil {
		return fmt.Errorf("source footage: %w", err)
	}
	if err := os.MkdirAll(out.Directory, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	args := []string{
		"--input", sourcePath,
		"--output", out.PatternPath(),
		"--start-frame", strconv.Itoa(out.First),
		"--frames", strconv.Itoa(out.Count()),
		"--format", out.Extension,
	}

	onStdout := func(line string) {
		if progress == nil {
			return
		}
		if m := frameLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if frame, err := strconv.Atoi(m[1]); err == nil {
				progress(frame)
			}
		}
	}

	if err := c.exec.Run(ctx, c.binary, args, onStdout); err != nil {
		return fmt.Errorf("decode %s: %w", sourcePath, err)
	}
	return nil
}
