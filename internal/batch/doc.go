// Package batch drives multi-shot ingest: it loads a shot manifest, builds
// the standard pipeline, and runs shots through it with bounded concurrency
// while holding an exclusive lock on the staging area.
package batch
