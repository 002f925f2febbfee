// Package rawconv wraps the camera vendor's raw export CLI, which decodes
// camera-original footage into DPX image sequences.
package rawconv
