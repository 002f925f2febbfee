package pipeline

import (
	"errors"
	"fmt"

	"shotline/internal/services"
)

// ErrorKind classifies why a stage failed. An empty kind means success.
type ErrorKind string

const (
	// KindValidation marks failed stage preconditions; Process never ran.
	KindValidation ErrorKind = "validation"
	// KindExecution marks a fault during the stage's actual work.
	KindExecution ErrorKind = "execution"
	// KindCancelled marks a stage interrupted by run cancellation.
	KindCancelled ErrorKind = "cancelled"
)

// Classify maps a stage error onto its kind. Cancellation wins over other
// markers so callers can always distinguish user-initiated stops.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case services.IsCancellation(err):
		return KindCancelled
	case errors.Is(err, services.ErrValidation):
		return KindValidation
	default:
		return KindExecution
	}
}

// ErrEmptyPipeline is returned by Build for a pipeline with no stages.
var ErrEmptyPipeline = errors.New("pipeline has no stages")

// IncompatibleStageSequenceError reports an adjacent stage pair whose
// artifact types do not line up. It is raised at build time only.
type IncompatibleStageSequenceError struct {
	Producer string
	Consumer string
	Output   ArtifactType
	Input    ArtifactType
}

func (e *IncompatibleStageSequenceError) Error() string {
	if e.Producer == "" {
		return fmt.Sprintf("stage %q requires input %q but is first in the pipeline (must accept %q)",
			e.Consumer, e.Input, ArtifactShotRecord)
	}
	return fmt.Sprintf("stage %q produces %q but stage %q requires %q",
		e.Producer, e.Output, e.Consumer, e.Input)
}
