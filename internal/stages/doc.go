// Package stages contains the concrete pipeline stages of the standard
// plate ingest: camera-raw decode, color transform, proxy encode, placement
// into the project tree, tracker registration, and staging cleanup.
package stages
