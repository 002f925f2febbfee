package pipeline

import (
	"context"
	"fmt"
	"time"

	"shotline/internal/shot"
)

// Stage is one unit of shot processing. Implementations must be safe to
// call from concurrent runs operating on distinct records.
type Stage interface {
	// Name identifies the stage in results, logs, and run history.
	Name() string

	// InputType declares the artifact type this stage consumes.
	InputType() ArtifactType

	// OutputType declares the artifact type this stage produces.
	OutputType() ArtifactType

	// Validate checks stage preconditions without performing work.
	Validate(ctx context.Context, record *shot.Record, input Artifact) error

	// Process performs the stage's work. A returned error and a failed
	// Result are equivalent; Execute folds both into the same shape.
	Process(ctx context.Context, record *shot.Record, input Artifact, cfg Config) (*Result, error)
}

// Execute runs one stage against a record inside the fault boundary. It
// never returns an error and never panics: validation failures, process
// errors, panics, and cancellation all come back as failed Results with
// Stage, Kind, and Duration populated.
func Execute(ctx context.Context, st Stage, record *shot.Record, input Artifact, cfg Config) *Result {
	start := time.Now()
	res := executeGuarded(ctx, st, record, input, cfg)
	if res == nil {
		res = NewResult(st.Name())
	}
	if res.Stage == "" {
		res.Stage = st.Name()
	}
	if res.Success {
		res.Kind = ""
		if res.Message == "" {
			res.Message = fmt.Sprintf("%s completed", st.Name())
		}
	} else if res.Kind == "" {
		res.Kind = KindExecution
	}
	res.Duration = time.Since(start)
	return res
}

func executeGuarded(ctx context.Context, st Stage, record *shot.Record, input Artifact, cfg Config) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			res = NewResult(st.Name())
			res.Kind = KindExecution
			res.Message = fmt.Sprintf("%s panicked", st.Name())
			res.AddError(fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return cancelledResult(st.Name(), err)
	}

	if err := st.Validate(ctx, record, input); err != nil {
		res := NewResult(st.Name())
		res.Kind = Classify(err)
		if res.Kind == KindExecution {
			res.Kind = KindValidation
		}
		res.Message = fmt.Sprintf("%s validation failed", st.Name())
		res.AddError(err.Error())
		return res
	}

	res, err := st.Process(ctx, record, input, cfg)
	if err != nil {
		if res == nil {
			res = NewResult(st.Name())
		}
		res.Kind = Classify(err)
		if res.Message == "" {
			res.Message = fmt.Sprintf("%s failed", st.Name())
		}
		res.AddError(err.Error())
		return res
	}
	if res != nil && !res.Success && res.Kind == KindCancelled {
		return res
	}
	if res != nil && ctx.Err() != nil && !res.Success {
		res.Kind = KindCancelled
	}
	return res
}

func cancelledResult(stage string, err error) *Result {
	res := NewResult(stage)
	res.Kind = KindCancelled
	res.Message = fmt.Sprintf("%s cancelled", stage)
	res.AddError(err.Error())
	return res
}
