package pipeline

import (
	"fmt"
	"log/slog"

	"shotline/internal/logging"
	"shotline/internal/shot"
)

// Predicate decides whether a conditional stage should be skipped for a
// given record and configuration. Predicates must be pure: no side effects,
// no mutation of the record.
type Predicate func(record *shot.Record, cfg Config) bool

type boundStage struct {
	stage  Stage
	skipIf Predicate
}

// Builder assembles a Pipeline stage by stage. Add methods are chainable;
// all contract checking happens in Build.
type Builder struct {
	name   string
	stages []boundStage
	logger *slog.Logger
	err    error
}

// NewBuilder starts an empty pipeline definition.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// WithLogger sets the logger the built pipeline runs with.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// AddStage appends an unconditional stage.
func (b *Builder) AddStage(st Stage) *Builder {
	return b.add(st, nil)
}

// AddConditionalStage appends a stage that is skipped when skipIf returns
// true at run time. Conditional stages must be type preserving (identical
// input and output artifact types) so a skip cannot break the artifact
// chain for downstream stages.
func (b *Builder) AddConditionalStage(st Stage, skipIf Predicate) *Builder {
	if b.err == nil && st != nil && skipIf == nil {
		b.err = fmt.Errorf("conditional stage %q requires a predicate", st.Name())
		return b
	}
	return b.add(st, skipIf)
}

func (b *Builder) add(st Stage, skipIf Predicate) *Builder {
	if b.err != nil {
		return b
	}
	if st == nil {
		b.err = fmt.Errorf("pipeline %q: nil stage at position %d", b.name, len(b.stages))
		return b
	}
	if st.Name() == "" {
		b.err = fmt.Errorf("pipeline %q: stage at position %d has no name", b.name, len(b.stages))
		return b
	}
	if skipIf != nil && st.InputType() != st.OutputType() {
		b.err = fmt.Errorf("conditional stage %q must preserve its artifact type (consumes %q, produces %q)",
			st.Name(), st.InputType(), st.OutputType())
		return b
	}
	b.stages = append(b.stages, boundStage{stage: st, skipIf: skipIf})
	return b
}

// Build validates the stage sequence and returns the runnable pipeline.
// The first stage must accept a shot record; every later stage's input type
// must match its predecessor's output type exactly.
func (b *Builder) Build() (*Pipeline, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.stages) == 0 {
		return nil, ErrEmptyPipeline
	}

	first := b.stages[0].stage
	if first.InputType() != ArtifactShotRecord {
		return nil, &IncompatibleStageSequenceError{
			Consumer: first.Name(),
			Input:    first.InputType(),
		}
	}
	for i := 1; i < len(b.stages); i++ {
		prev := b.stages[i-1].stage
		next := b.stages[i].stage
		if prev.OutputType() != next.InputType() {
			return nil, &IncompatibleStageSequenceError{
				Producer: prev.Name(),
				Consumer: next.Name(),
				Output:   prev.OutputType(),
				Input:    next.InputType(),
			}
		}
	}

	logger := b.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	stages := make([]boundStage, len(b.stages))
	copy(stages, b.stages)
	return &Pipeline{name: b.name, stages: stages, logger: logger}, nil
}
