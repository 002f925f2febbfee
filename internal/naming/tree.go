package naming

import "path/filepath"

// Tree resolves directories inside the standardized shot output layout.
type Tree struct {
	Root string
}

// NewTree constructs a Tree rooted at the project output directory.
func NewTree(root string) Tree {
	return Tree{Root: root}
}

// ShotDir returns the root directory for a shot, e.g. root/sht100.
func (t Tree) ShotDir(shotName string) string {
	return filepath.Join(t.Root, shotName)
}

// TaskDir returns the task directory, e.g. root/sht100/pla.
func (t Tree) TaskDir(shotName, task string) string {
	return filepath.Join(t.ShotDir(shotName), task)
}

// VersionDir returns the version container directory,
// e.g. root/sht100/pla/sht100_pla_rawPlate_v001.
func (t Tree) VersionDir(shotName, task, element string, version int) string {
	return filepath.Join(t.TaskDir(shotName, task), VersionContainer(shotName, task, element, version))
}

// ColorspaceDir returns the image sequence directory inside a version
// container, e.g. root/sht100/pla/sht100_pla_rawPlate_v001/main_ACEScg.
func (t Tree) ColorspaceDir(shotName, task, element string, version int, rep, colorspace string) string {
	return filepath.Join(t.VersionDir(shotName, task, element, version), rep+"_"+colorspace)
}

// MoviePath returns the full path of a movie rendition stored at the version
// container level.
func (t Tree) MoviePath(shotName, task, element string, version int, rep, colorspace, extension string) string {
	return filepath.Join(t.VersionDir(shotName, task, element, version), MovieFileName(shotName, task, element, version, rep, colorspace, extension))
}
