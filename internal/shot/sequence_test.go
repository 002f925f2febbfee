package shot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSequencePattern(t *testing.T) {
	seq, err := NewSequence("/tmp/plates", "sht100_pla_rawPlate_v001_main_ACEScg", "exr", 993, 1059, 4)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	if seq.Count() != 67 {
		t.Fatalf("Count = %d, want 67", seq.Count())
	}
	if got := seq.Pattern(); got != "sht100_pla_rawPlate_v001_main_ACEScg.%04d.exr" {
		t.Fatalf("Pattern = %q", got)
	}
	want := filepath.Join("/tmp/plates", "sht100_pla_rawPlate_v001_main_ACEScg.0993.exr")
	if got := seq.FramePath(993); got != want {
		t.Fatalf("FramePath = %q, want %q", got, want)
	}
}

func TestSequenceRejectsInvertedRange(t *testing.T) {
	if _, err := NewSequence("/tmp", "base", "dpx", 10, 9, 4); err == nil {
		t.Fatalf("expected error for first > last")
	}
}

func TestSequenceMissingFrames(t *testing.T) {
	dir := t.TempDir()
	seq, err := NewSequence(dir, "shot", "dpx", 1, 3, 4)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	for _, frame := range []int{1, 3} {
		if err := os.WriteFile(seq.FramePath(frame), []byte("x"), 0o644); err != nil {
			t.Fatalf("write frame: %v", err)
		}
	}
	missing := seq.MissingFrames()
	if len(missing) != 1 || missing[0] != 2 {
		t.Fatalf("MissingFrames = %v, want [2]", missing)
	}
}
