package pipeline

import (
	"time"

	"shotline/internal/shot"
)

// Skip reasons recorded on StageOutcome.
const (
	SkipUpstreamFailure = "upstream failure"
	SkipCondition       = "condition not met"
)

// StageOutcome is one slot in a run's outcome list. Exactly one of Skipped
// or Result is meaningful: skipped stages carry no Result because they never
// executed.
type StageOutcome struct {
	Stage      string
	Skipped    bool
	SkipReason string
	Result     *Result
}

// Summary aggregates one pipeline run over one shot record.
type Summary struct {
	Pipeline   string
	RunID      string
	Shot       string
	FirstFrame int
	LastFrame  int
	Status     shot.Status
	Duration   time.Duration
	StartedAt  time.Time
	Outcomes   []StageOutcome
}

// Succeeded reports whether every executed stage succeeded. Skipped stages
// do not count against success.
func (s *Summary) Succeeded() bool {
	return s.Status == shot.StatusSucceeded
}

// FailedStages lists the names of executed stages that failed, in order.
func (s *Summary) FailedStages() []string {
	var failed []string
	for _, o := range s.Outcomes {
		if !o.Skipped && o.Result != nil && !o.Result.Success {
			failed = append(failed, o.Stage)
		}
	}
	return failed
}

// ExecutedCount returns how many stages actually ran.
func (s *Summary) ExecutedCount() int {
	n := 0
	for _, o := range s.Outcomes {
		if !o.Skipped {
			n++
		}
	}
	return n
}

// SkippedCount returns how many stages were skipped.
func (s *Summary) SkippedCount() int {
	return len(s.Outcomes) - s.ExecutedCount()
}

// Cancelled reports whether any stage failed due to cancellation.
func (s *Summary) Cancelled() bool {
	for _, o := range s.Outcomes {
		if !o.Skipped && o.Result != nil && o.Result.Kind == KindCancelled {
			return true
		}
	}
	return false
}
