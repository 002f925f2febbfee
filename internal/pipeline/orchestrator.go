package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shotline/internal/logging"
	"shotline/internal/services"
	"shotline/internal/shot"
)

// Policy selects how a run reacts to a failed stage.
type Policy string

const (
	// StopOnError skips every remaining stage after the first failure.
	StopOnError Policy = "stop-on-error"
	// ContinueOnError keeps executing remaining stages after failures and
	// downgrades an otherwise successful run to partially failed.
	ContinueOnError Policy = "continue-on-error"
)

// Pipeline is an immutable, validated stage sequence. Construct one through
// a Builder; a single Pipeline may run many records, but each record runs
// at most once.
type Pipeline struct {
	name   string
	stages []boundStage
	logger *slog.Logger
}

// Name returns the pipeline's name.
func (p *Pipeline) Name() string {
	return p.name
}

// StageNames lists the stage names in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, bs := range p.stages {
		names[i] = bs.stage.Name()
	}
	return names
}

// Run executes the pipeline against one shot record. The record must be
// pending; Run moves it to running, then to its terminal status. Stage
// faults never surface as errors here: the returned Summary carries them.
// Run itself errors only on contract violations (nil or already-run
// record).
func (p *Pipeline) Run(ctx context.Context, record *shot.Record, cfg Config, policy Policy) (*Summary, error) {
	if record == nil {
		return nil, fmt.Errorf("pipeline %q: nil record", p.name)
	}
	if record.Status != shot.StatusPending {
		return nil, fmt.Errorf("pipeline %q: record %s is %s, not %s",
			p.name, record.ShotName(), record.Status, shot.StatusPending)
	}
	if policy != StopOnError && policy != ContinueOnError {
		policy = StopOnError
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(services.WithShot(ctx, record.ShotName()), runID)
	logger := p.logger.With(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldShot, record.ShotName()))

	record.Status = shot.StatusRunning
	start := time.Now()
	logger.Info("pipeline run started",
		logging.String("pipeline", p.name),
		logging.String("policy", string(policy)),
		logging.Int("stages", len(p.stages)))

	outcomes := make([]StageOutcome, 0, len(p.stages))
	var input Artifact = record
	halted := false
	anyFailed := false

	for _, bs := range p.stages {
		name := bs.stage.Name()
		if halted {
			outcomes = append(outcomes, StageOutcome{Stage: name, Skipped: true, SkipReason: SkipUpstreamFailure})
			logger.Info("stage skipped",
				logging.String(logging.FieldStage, name),
				logging.String("reason", SkipUpstreamFailure))
			continue
		}
		if bs.skipIf != nil && bs.skipIf(record, cfg) {
			outcomes = append(outcomes, StageOutcome{Stage: name, Skipped: true, SkipReason: SkipCondition})
			logger.Info("stage skipped",
				logging.String(logging.FieldStage, name),
				logging.String("reason", SkipCondition))
			continue
		}

		stageCtx := services.WithStage(ctx, name)
		logger.Info("stage started", logging.String(logging.FieldStage, name))
		res := Execute(stageCtx, bs.stage, record, input, cfg)
		outcomes = append(outcomes, StageOutcome{Stage: name, Result: res})

		if res.Success {
			logger.Info("stage completed",
				logging.String(logging.FieldStage, name),
				logging.Duration("duration", res.Duration))
			if out, ok := res.Output(); ok {
				input = out
			}
			continue
		}

		anyFailed = true
		logger.Error("stage failed",
			logging.String(logging.FieldStage, name),
			logging.String("kind", string(res.Kind)),
			logging.String("message", res.Message),
			logging.Duration("duration", res.Duration))
		if policy == StopOnError {
			halted = true
		}
	}

	status := shot.StatusSucceeded
	if anyFailed {
		status = shot.StatusPartiallyFailed
		if halted {
			status = shot.StatusFailed
		}
	}
	record.Status = status

	summary := &Summary{
		Pipeline:   p.name,
		RunID:      runID,
		Shot:       record.ShotName(),
		FirstFrame: record.FirstFrame,
		LastFrame:  record.LastFrame,
		Status:     status,
		Duration:   time.Since(start),
		StartedAt:  start,
		Outcomes:   outcomes,
	}
	logger.Info("pipeline run finished",
		logging.String("pipeline", p.name),
		logging.String("status", string(status)),
		logging.Duration("duration", summary.Duration))
	return summary, nil
}
