// Package services provides the shared error taxonomy, context annotations,
// and command execution helper used by the external tool clients.
package services
