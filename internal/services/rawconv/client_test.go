package rawconv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shotline/internal/shot"
)

type fakeExecutor struct {
	binary string
	args   []string
	stdout []string
	err    error
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string, onStdout func(string)) error {
	f.binary = binary
	f.args = args
	if onStdout != nil {
		for _, line := range f.stdout {
			onStdout(line)
		}
	}
	return f.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestDecodeBuildsCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "A001_C002.mxf")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{stdout: []string{"frame 993", "frame 994", "noise"}}
	client, err := New("rawexport", WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := shot.NewSequence(filepath.Join(dir, "dpx"), "sht100", "dpx", 993, 1059, 4)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}

	var frames []int
	if err := client.Decode(context.Background(), source, out, func(f int) { frames = append(frames, f) }); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if exec.binary != "rawexport" {
		t.Errorf("binary = %q", exec.binary)
	}
	want := []string{
		"--input", source,
		"--output", out.PatternPath(),
		"--start-frame", "993",
		"--frames", "67",
		"--format", "dpx",
	}
	if len(exec.args) != len(want) {
		t.Fatalf("args = %v, want %v", exec.args, want)
	}
	for i := range want {
		if exec.args[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, exec.args[i], want[i])
		}
	}
	if len(frames) != 2 || frames[0] != 993 || frames[1] != 994 {
		t.Errorf("progress frames = %v", frames)
	}
	if _, err := os.Stat(out.Directory); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestDecodeRejectsMissingSource(t *testing.T) {
	client, err := New("rawexport", WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, _ := shot.NewSequence(t.TempDir(), "sht100", "dpx", 1, 2, 4)
	if err := client.Decode(context.Background(), "/nonexistent/clip.mxf", out, nil); err == nil {
		t.Fatal("expected error for missing source")
	}
}
