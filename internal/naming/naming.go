package naming

import "fmt"

// Zero padding applied to version and frame tokens.
const (
	VersionPadding = 3
	FramePadding   = 4
)

// Task type abbreviations.
const (
	TaskPlate     = "pla"
	TaskOutput    = "out"
	TaskRender    = "rnd"
	TaskComp      = "cmp"
	TaskReference = "ref"
)

// Element names for plate deliverables.
const (
	ElementRawPlate   = "rawPlate"
	ElementCleanPlate = "cleanPlate"
	ElementBGPlate    = "bgPlate"
)

// Representation tokens.
const (
	RepMain  = "main"
	RepProxy = "proxy"
)

// Colorspace tokens used in filenames and directory names.
const (
	ColorspaceACEScg = "ACEScg"
	ColorspaceSRGB   = "sRGB"
)

// ShotName joins a sequence code and shot number, e.g. "sht"+"100" -> "sht100".
func ShotName(sequence, shot string) string {
	return sequence + shot
}

// Version formats a version number with standard padding, e.g. 1 -> "v001".
func Version(version int) string {
	return fmt.Sprintf("v%0*d", VersionPadding, version)
}

// Frame formats a frame number with standard padding, e.g. 993 -> "0993".
func Frame(frame int) string {
	return fmt.Sprintf("%0*d", FramePadding, frame)
}

// VersionContainer builds the version container directory name,
// e.g. "sht100_pla_rawPlate_v001".
func VersionContainer(shotName, task, element string, version int) string {
	return fmt.Sprintf("%s_%s_%s_%s", shotName, task, element, Version(version))
}

// BaseName builds the filename stem shared by every frame of a deliverable,
// e.g. "sht100_pla_rawPlate_v001_main_ACEScg".
func BaseName(shotName, task, element string, version int, rep, colorspace string) string {
	return fmt.Sprintf("%s_%s_%s", VersionContainer(shotName, task, element, version), rep, colorspace)
}

// SequenceFileName builds the full filename for one frame of an image
// sequence, e.g. "sht100_pla_rawPlate_v001_main_ACEScg.0993.exr".
func SequenceFileName(shotName, task, element string, version int, rep, colorspace string, frame int, extension string) string {
	return fmt.Sprintf("%s.%s.%s", BaseName(shotName, task, element, version, rep, colorspace), Frame(frame), extension)
}

// MovieFileName builds the filename for a movie rendition,
// e.g. "sht100_pla_rawPlate_v001_proxy_sRGB.mp4".
func MovieFileName(shotName, task, element string, version int, rep, colorspace, extension string) string {
	return fmt.Sprintf("%s.%s", BaseName(shotName, task, element, version, rep, colorspace), extension)
}
