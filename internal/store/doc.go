// Package store persists pipeline run history in SQLite so past ingests can
// be inspected from the CLI after the fact.
package store
