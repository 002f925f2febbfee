// Package preflight runs environment checks before a batch ingest starts:
// tool binaries, directory access, free disk space, and tracker
// connectivity.
package preflight
