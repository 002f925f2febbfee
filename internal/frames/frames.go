package frames

import "fmt"

// Range is an inclusive digital frame range.
type Range struct {
	First int
	Last  int
}

// Count returns the number of frames in the range.
func (r Range) Count() int {
	return r.Last - r.First + 1
}

// String renders the range as "first-last".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.First, r.Last)
}

// InvalidRangeError reports editorial inputs that cannot produce a digital range.
type InvalidRangeError struct {
	InPoint  int
	OutPoint int
	Head     int
	Tail     int
	Start    int
	Reason   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid editorial range (in=%d out=%d head=%d tail=%d start=%d): %s",
		e.InPoint, e.OutPoint, e.Head, e.Tail, e.Start, e.Reason)
}

// Map translates an editorial in/out point plus handle sizes into a digital
// frame range anchored at the digital start frame. The head handle extends
// the range before the start frame, so the first digital frame is
// start-head and the range spans duration+head+tail frames in total.
//
// Map is pure: identical inputs always yield identical output.
func Map(inPoint, outPoint, head, tail, start int) (Range, error) {
	if outPoint <= inPoint {
		return Range{}, &InvalidRangeError{
			InPoint: inPoint, OutPoint: outPoint, Head: head, Tail: tail, Start: start,
			Reason: "out point must be greater than in point",
		}
	}
	if head < 0 || tail < 0 {
		return Range{}, &InvalidRangeError{
			InPoint: inPoint, OutPoint: outPoint, Head: head, Tail: tail, Start: start,
			Reason: "handles must not be negative",
		}
	}
	if start < 0 {
		return Range{}, &InvalidRangeError{
			InPoint: inPoint, OutPoint: outPoint, Head: head, Tail: tail, Start: start,
			Reason: "digital start frame must not be negative",
		}
	}

	duration := outPoint - inPoint + 1
	first := start - head
	last := first + duration + head + tail - 1
	return Range{First: first, Last: last}, nil
}
