package shot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shotline/internal/frames"
	"shotline/internal/naming"
)

// Status represents the lifecycle of a shot record during a pipeline run.
type Status string

const (
	StatusPending         Status = "pending"
	StatusRunning         Status = "running"
	StatusSucceeded       Status = "succeeded"
	StatusFailed          Status = "failed"
	StatusPartiallyFailed Status = "partially_failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusRunning,
	StatusSucceeded,
	StatusFailed,
	StatusPartiallyFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a status ends a run.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusPartiallyFailed:
		return true
	default:
		return false
	}
}

// EditorialCut captures the editor's selection from source footage. Values
// are validated at construction and never change afterwards.
type EditorialCut struct {
	Sequence string
	Shot     string
	Source   string
	InPoint  int
	OutPoint int
	FPS      float64
	Timecode string
	Notes    string
}

// NewEditorialCut validates and builds an EditorialCut.
func NewEditorialCut(sequence, shotName, source string, inPoint, outPoint int) (EditorialCut, error) {
	if strings.TrimSpace(sequence) == "" {
		return EditorialCut{}, errors.New("editorial cut: sequence is required")
	}
	if strings.TrimSpace(shotName) == "" {
		return EditorialCut{}, errors.New("editorial cut: shot is required")
	}
	if strings.TrimSpace(source) == "" {
		return EditorialCut{}, errors.New("editorial cut: source is required")
	}
	if outPoint <= inPoint {
		return EditorialCut{}, fmt.Errorf("editorial cut: out point %d must be greater than in point %d", outPoint, inPoint)
	}
	return EditorialCut{
		Sequence: sequence,
		Shot:     shotName,
		Source:   source,
		InPoint:  inPoint,
		OutPoint: outPoint,
		FPS:      24.0,
	}, nil
}

// Duration returns the editorial duration in frames, inclusive of both points.
func (c EditorialCut) Duration() int {
	return c.OutPoint - c.InPoint + 1
}

// Record carries one shot through a pipeline run. The orchestrator owns
// status transitions; stages read the record and fill in output locations.
type Record struct {
	Project  string
	Sequence string
	Shot     string
	Cut      EditorialCut

	TaskType string
	Element  string
	Version  int

	FirstFrame int
	LastFrame  int

	PlatePath string
	ProxyPath string

	Status    Status
	CreatedAt time.Time

	rangeSet bool
}

// NewRecord builds a pending Record with plate defaults for the given cut.
func NewRecord(project string, cut EditorialCut) *Record {
	return &Record{
		Project:   project,
		Sequence:  cut.Sequence,
		Shot:      cut.Shot,
		Cut:       cut,
		TaskType:  naming.TaskPlate,
		Element:   naming.ElementRawPlate,
		Version:   1,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// ShotName returns the combined sequence+shot identifier, e.g. "sht100".
func (r *Record) ShotName() string {
	return naming.ShotName(r.Sequence, r.Shot)
}

// SetFrameRange records the computed digital frame range. The range is set
// exactly once; a second call is a programming error.
func (r *Record) SetFrameRange(rg frames.Range) error {
	if r.rangeSet {
		return fmt.Errorf("frame range already set to %d-%d", r.FirstFrame, r.LastFrame)
	}
	r.FirstFrame = rg.First
	r.LastFrame = rg.Last
	r.rangeSet = true
	return nil
}

// HasFrameRange reports whether the digital frame range has been computed.
func (r *Record) HasFrameRange() bool {
	return r.rangeSet
}

// FrameRange returns the digital range as a frames.Range.
func (r *Record) FrameRange() frames.Range {
	return frames.Range{First: r.FirstFrame, Last: r.LastFrame}
}

// FrameCount returns the number of digital frames, zero before mapping.
func (r *Record) FrameCount() int {
	if !r.rangeSet {
		return 0
	}
	return r.LastFrame - r.FirstFrame + 1
}
