// Package config loads, normalizes, and validates shotline configuration.
//
// Precedence is Default() < TOML file < caller-provided overrides; the CLI
// applies flag overrides after Load and the per-run stage configuration is
// derived once before a pipeline run begins.
package config
