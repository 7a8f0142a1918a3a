package runtime

import (
	"fmt"
	"path/filepath"

	"github.com/ActiveState/rtscope/internal/constants"
)

// Requirement is a declared dependency on a runtime (interpreter) of a given version. Requirements are treated as
// immutable once discovered, the selector works on copies.
type Requirement struct {
	// Name is the name build options refer to, eg. "python3"
	Name string
	// Binary is the path to the interpreter
	Binary  string
	Version *Version
	// Family is the stem of the versioned library directory, eg. "python" for lib/python2.7
	Family      string
	Satisfied   bool
	Optional    bool
	Recommended bool
	// System is true for runtimes provided by the operating system, their bin dir is never added to PATH
	System        bool
	IncludeDir    string
	PkgConfigPath string
}

// BinDir returns the directory holding the binary
func (r Requirement) BinDir() string {
	return filepath.Dir(r.Binary)
}

// LibName returns the name of the versioned library directory, eg. "python2.7"
func (r Requirement) LibName() string {
	family := r.Family
	if family == "" {
		family = constants.DefaultFamily
	}
	if r.Version == nil {
		return family
	}
	return family + r.Version.XY()
}

func (r Requirement) String() string {
	version := "unknown"
	if r.Version != nil {
		version = r.Version.String()
	}
	return fmt.Sprintf("%s %s (%s)", r.Name, version, r.Binary)
}

// ScopedRuntime is a requirement selected for use, annotated with the paths derived from the installation prefix
type ScopedRuntime struct {
	Requirement
	SitePackagesDir        string
	PrivateSitePackagesDir string
	// ActivationID identifies this selection in logs and events
	ActivationID string
}
