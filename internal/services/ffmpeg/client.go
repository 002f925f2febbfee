package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"shotline/internal/services"
	"shotline/internal/shot"
)

// Encoder defines the behaviour required by the proxy stage.
type Encoder interface {
	EncodeProxy(ctx context.Context, in shot.Sequence, outputPath string, opts ProxyOptions) error
}

// ProxyOptions describe one proxy encode.
type ProxyOptions struct {
	Codec  string
	CRF    int
	Preset string
	FPS    float64
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

// Client wraps ffmpeg invocations.
type Client struct {
	binary string
	exec   services.Executor
}

var _ Encoder = (*Client)(nil)

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// EncodeProxy renders the input sequence into a single movie file.
func (c *Client) EncodeProxy(ctx context.Context, in shot.Sequence, outputPath string, opts ProxyOptions) error {
	if outputPath == "" {
		return errors.New("output path required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = 24
	}
	codec := opts.Codec
	if codec == "" {
		codec = "libx264"
	}

	args := []string{
		"-y",
		"-start_number", strconv.Itoa(in.First),
		"-framerate", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", in.PatternPath(),
		"-frames:v", strconv.Itoa(in.Count()),
		"-c:v", codec,
		"-pix_fmt", "yuv420p",
	}
	if opts.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(opts.CRF))
	}
	if opts.Preset != "" {
		args = append(args, "-preset", opts.Preset)
	}
	args = append(args, "-movflags", "+faststart", outputPath)

	if err := c.exec.Run(ctx, c.binary, args, nil); err != nil {
		return fmt.Errorf("encode proxy %s: %w", outputPath, err)
	}
	return nil
}
