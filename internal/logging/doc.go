// Package logging builds the slog loggers used across shotline and carries
// standardized field names so shot, stage, and run identifiers look the same
// everywhere.
package logging
