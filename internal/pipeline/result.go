package pipeline

import (
	"time"

	"shotline/internal/shot"
)

// Result is the outcome of one stage execution. It is created once per
// invocation and never mutated after the stage returns it; the orchestrator
// only appends it to the run's outcome list.
type Result struct {
	Stage    string
	Success  bool
	Message  string
	Errors   []string
	Warnings []string
	Duration time.Duration
	Kind     ErrorKind
	Data     map[string]any
}

// NewResult builds a successful empty result for a stage. Stages flip it to
// failed by adding errors.
func NewResult(stage string) *Result {
	return &Result{
		Stage:   stage,
		Success: true,
		Data:    make(map[string]any),
	}
}

// AddError records an error and marks the result failed.
func (r *Result) AddError(message string) {
	r.Errors = append(r.Errors, message)
	r.Success = false
}

// AddWarning records a warning without affecting success.
func (r *Result) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// SetOutput stores the artifact threaded into the next stage.
func (r *Result) SetOutput(artifact Artifact) {
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	r.Data[DataOutput] = artifact
}

// Output returns the artifact this stage produced, if any.
func (r *Result) Output() (Artifact, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[DataOutput]
	return v, ok
}

// OutputSequence returns the produced artifact as an image sequence.
func (r *Result) OutputSequence() (shot.Sequence, bool) {
	v, ok := r.Output()
	if !ok {
		return shot.Sequence{}, false
	}
	switch seq := v.(type) {
	case shot.Sequence:
		return seq, true
	case *shot.Sequence:
		if seq != nil {
			return *seq, true
		}
	}
	return shot.Sequence{}, false
}
