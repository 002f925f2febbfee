// Package ffmpeg wraps ffmpeg for encoding review proxies from image
// sequences.
package ffmpeg
