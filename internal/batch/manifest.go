package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Entry describes one shot to ingest. Overrides are merged over the file
// configuration for that shot only.
type Entry struct {
	Sequence  string         `json:"sequence"`
	Shot      string         `json:"shot"`
	Source    string         `json:"source"`
	InPoint   int            `json:"in_point"`
	OutPoint  int            `json:"out_point"`
	FPS       float64        `json:"fps,omitempty"`
	TaskType  string         `json:"task_type,omitempty"`
	Element   string         `json:"element,omitempty"`
	Version   int            `json:"version,omitempty"`
	Timecode  string         `json:"timecode,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	Overrides map[string]any `json:"overrides,omitempty"`
}

type manifest struct {
	Shots []Entry `json:"shots"`
}

// LoadManifest reads and validates a JSON shot manifest.
func LoadManifest(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Shots) == 0 {
		return nil, fmt.Errorf("manifest %s lists no shots", path)
	}

	seen := make(map[string]struct{}, len(m.Shots))
	for i, entry := range m.Shots {
		if err := validateEntry(entry); err != nil {
			return nil, fmt.Errorf("manifest %s: shot %d: %w", path, i+1, err)
		}
		key := entry.Sequence + entry.Shot
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("manifest %s: duplicate shot %s", path, key)
		}
		seen[key] = struct{}{}
	}
	return m.Shots, nil
}

func validateEntry(entry Entry) error {
	if strings.TrimSpace(entry.Sequence) == "" {
		return fmt.Errorf("sequence is required")
	}
	if strings.TrimSpace(entry.Shot) == "" {
		return fmt.Errorf("shot is required")
	}
	if strings.TrimSpace(entry.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if entry.OutPoint <= entry.InPoint {
		return fmt.Errorf("out point %d must be greater than in point %d", entry.OutPoint, entry.InPoint)
	}
	if entry.Version < 0 {
		return fmt.Errorf("version must not be negative")
	}
	return nil
}
