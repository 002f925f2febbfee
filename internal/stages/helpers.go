package stages

import (
	"fmt"
	"path/filepath"

	"shotline/internal/pipeline"
	"shotline/internal/shot"
)

// Stage names as they appear in results, logs, and run history.
const (
	StageConvert   = "convert"
	StageTransform = "transform"
	StageProxy     = "proxy"
	StageOrganize  = "organize"
	StageRegister  = "register"
	StageCleanup   = "cleanup"
)

func sequenceInput(input pipeline.Artifact) (shot.Sequence, error) {
	switch seq := input.(type) {
	case shot.Sequence:
		return seq, nil
	case *shot.Sequence:
		if seq != nil {
			return *seq, nil
		}
	}
	return shot.Sequence{}, fmt.Errorf("expected an image sequence artifact, got %T", input)
}

func tempDir(cfg pipeline.Config, record *shot.Record) string {
	if dir := cfg.String(pipeline.KeyTempDir, ""); dir != "" {
		return dir
	}
	staging := cfg.String(pipeline.KeyStagingDir, "")
	return filepath.Join(staging, record.ShotName())
}
