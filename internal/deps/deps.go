// Package deps reports the availability of the external tool binaries the
// ingest pipeline shells out to.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Requirement defines an external tool the pipeline relies on. Command may
// be a bare name resolved against PATH or an absolute path.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement. Path holds the
// resolved binary location when the tool was found.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// CheckBinaries resolves each requirement and reports availability in the
// same order.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, check(req))
	}
	return results
}

func check(req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}

	switch {
	case status.Command == "":
		status.Detail = "command not configured"
	case filepath.IsAbs(status.Command):
		info, err := os.Stat(status.Command)
		switch {
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		case info.IsDir() || info.Mode().Perm()&0o111 == 0:
			status.Detail = fmt.Sprintf("%q is not executable", status.Command)
		default:
			status.Available = true
			status.Path = status.Command
		}
	default:
		resolved, err := exec.LookPath(status.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found in PATH", status.Command)
		} else {
			status.Available = true
			status.Path = resolved
		}
	}
	return status
}
