// Command shotline ingests camera-original footage into VFX-ready plates:
// it maps editorial cuts onto digital frame ranges, runs shots through the
// staged ingest pipeline, and keeps a queryable history of past runs.
package main
