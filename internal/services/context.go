package services

import "context"

type contextKey string

const (
	shotKey  contextKey = "shot"
	stageKey contextKey = "stage"
	runIDKey contextKey = "run_id"
)

// WithShot annotates context with the shot identifier (e.g. "sht100").
func WithShot(ctx context.Context, shotName string) context.Context {
	if shotName == "" {
		return ctx
	}
	return context.WithValue(ctx, shotKey, shotName)
}

// ShotFromContext returns the shot identifier if present.
func ShotFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(shotKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRunID annotates context with a run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
