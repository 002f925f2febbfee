// Package frames maps editorial cut ranges onto digital frame ranges.
//
// The mapping is the single source of truth for every filename and directory
// the pipeline produces: handles are prepended and appended to the editorial
// duration, and the whole range is renumbered to start relative to the
// configured digital start frame.
package frames
