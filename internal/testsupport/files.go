package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"shotline/internal/shot"
)

// WriteFile creates path with the given content, making parent directories
// as needed.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSequence materializes every frame of seq on disk so placement and
// completeness checks have real files to work with. Each frame carries its
// own path as content, which lets tests confirm a moved file's origin.
func WriteSequence(t testing.TB, seq shot.Sequence) {
	t.Helper()

	for frame := seq.First; frame <= seq.Last; frame++ {
		path := seq.FramePath(frame)
		WriteFile(t, path, []byte(path))
	}
}
