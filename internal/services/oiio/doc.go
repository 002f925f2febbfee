// Package oiio wraps oiiotool for color and geometry transforms over image
// sequences. Each frame is processed with a separate oiiotool invocation so
// a run can be cancelled between frames.
package oiio
