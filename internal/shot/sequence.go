package shot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Sequence describes an image sequence on disk. It is handed from a
// producing stage to the next consuming stage; the core only depends on its
// frame bounds and path layout.
type Sequence struct {
	Directory string
	BaseName  string
	Extension string
	First     int
	Last      int
	Padding   int
}

// NewSequence validates and builds a Sequence.
func NewSequence(directory, baseName, extension string, first, last, padding int) (Sequence, error) {
	if directory == "" || baseName == "" || extension == "" {
		return Sequence{}, errors.New("image sequence: directory, base name, and extension are required")
	}
	if first > last {
		return Sequence{}, fmt.Errorf("image sequence: first frame %d after last frame %d", first, last)
	}
	if padding <= 0 {
		padding = 4
	}
	return Sequence{
		Directory: directory,
		BaseName:  baseName,
		Extension: extension,
		First:     first,
		Last:      last,
		Padding:   padding,
	}, nil
}

// Count returns the number of frames in the sequence.
func (s Sequence) Count() int {
	return s.Last - s.First + 1
}

// Pattern returns the printf-style filename pattern, e.g. "shot.%04d.exr".
func (s Sequence) Pattern() string {
	return fmt.Sprintf("%s.%%0%dd.%s", s.BaseName, s.Padding, s.Extension)
}

// PatternPath returns the full path form of Pattern.
func (s Sequence) PatternPath() string {
	return filepath.Join(s.Directory, s.Pattern())
}

// FramePath returns the path of one frame.
func (s Sequence) FramePath(frame int) string {
	return filepath.Join(s.Directory, fmt.Sprintf("%s.%0*d.%s", s.BaseName, s.Padding, frame, s.Extension))
}

// MissingFrames scans the directory and returns the frame numbers that do
// not exist on disk, in ascending order.
func (s Sequence) MissingFrames() []int {
	var missing []int
	for frame := s.First; frame <= s.Last; frame++ {
		if _, err := os.Stat(s.FramePath(frame)); err != nil {
			missing = append(missing, frame)
		}
	}
	return missing
}
