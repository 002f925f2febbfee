// Package pipeline is the orchestration core of shotline.
//
// A Builder assembles an ordered list of stages and validates that each
// stage's declared input artifact type matches its predecessor's output at
// build time. The resulting Pipeline executes stages strictly in order
// against one shot record per run, threading each stage's output artifact
// into the next stage, containing stage faults at the stage boundary, and
// aggregating per-stage results into a Summary.
//
// Stage failures are data: they are converted into failed Results at the
// execution boundary and never abort the orchestrator. Only build-time
// contract violations (an empty pipeline, an incompatible stage sequence)
// are returned as errors.
package pipeline
