package oiio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"shotline/internal/services"
	"shotline/internal/shot"
)

// Transformer defines the behaviour required by the transform stage.
type Transformer interface {
	Transform(ctx context.Context, in, out shot.Sequence, opts TransformOptions, progress func(frame int)) error
}

// TransformOptions describe one color and geometry conversion.
type TransformOptions struct {
	SourceColorspace  string
	TargetColorspace  string
	AnamorphicSqueeze float64
	TargetWidth       int
	TargetHeight      int
	Letterbox         bool
	Compression       string
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

// Client wraps oiiotool invocations.
type Client struct {
	binary string
	exec   services.Executor
}

var _ Transformer = (*Client)(nil)

// New constructs an oiiotool client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("oiiotool binary required")
	}
	client := &Client{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Transform converts every frame of the input sequence into the output
// sequence. Input and output must cover the same frame range.
func (c *Client) Transform(ctx context.Context, in, out shot.Sequence, opts TransformOptions, progress func(frame int)) error {
	if in.First != out.First || in.Last != out.Last {
		return fmt.Errorf("frame range mismatch: input %d-%d, output %d-%d", in.First, in.Last, out.First, out.Last)
	}
	if err := os.MkdirAll(out.Directory, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for frame := in.First; frame <= in.Last; frame++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: transform interrupted at frame %d: %w", services.ErrCancelled, frame, err)
		}
		args := c.frameArgs(in.FramePath(frame), out.FramePath(frame), opts)
		if err := c.exec.Run(ctx, c.binary, args, nil); err != nil {
			return fmt.Errorf("transform frame %d: %w", frame, err)
		}
		if progress != nil {
			progress(frame)
		}
	}
	return nil
}

func (c *Client) frameArgs(inPath, outPath string, opts TransformOptions) []string {
	args := []string{inPath}
	if opts.SourceColorspace != "" && opts.TargetColorspace != "" {
		args = append(args, "--colorconvert", opts.SourceColorspace, opts.TargetColorspace)
	}
	if opts.AnamorphicSqueeze > 0 && opts.AnamorphicSqueeze != 1 {
		args = append(args, "--resize", fmt.Sprintf("%g%%x100%%", opts.AnamorphicSqueeze*100))
	}
	if opts.TargetWidth > 0 && opts.TargetHeight > 0 {
		size := fmt.Sprintf("%dx%d", opts.TargetWidth, opts.TargetHeight)
		if opts.Letterbox {
			args = append(args, "--fit:fillmode=letterbox", size)
		} else {
			args = append(args, "--resize", size)
		}
	}
	if opts.Compression != "" {
		args = append(args, "--compression", opts.Compression)
	}
	return append(args, "-o", outPath)
}
