// Package report renders batch and run-history output for the CLI: summary
// tables, per-stage detail, and preflight check listings.
package report
