package runtime

import (
	"time"

	"github.com/imdario/mergo"

	"github.com/ActiveState/rtscope/internal/constants"
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/pkg/runtime/events"
)

// Options configure a single selection
type Options struct {
	// AllowedMajorVersions restricts which major versions are eligible, nil means
	// constants.DefaultAllowedMajorVersions while an empty list makes nothing eligible
	AllowedMajorVersions []int
}

func (o Options) allowedMajors() []int {
	if o.AllowedMajorVersions == nil {
		return constants.DefaultAllowedMajorVersions
	}
	return o.AllowedMajorVersions
}

// VarNames are the environment variables a scoped run mutates
type VarNames struct {
	ModulePath    string
	Binary        string
	IncludePath   string
	PkgConfigPath string
	ExecPath      string
}

// Layout describes where package directories live under the installation prefix
type Layout struct {
	LibDir        string
	PrivateLibDir string
	PackagesDir   string
}

// Opts configure a Selector
type Opts struct {
	Vars          VarNames
	Layout        Layout
	EventHandlers []events.HandlerFunc
	// LockFile, when set, is locked for the duration of every scoped run so that processes sharing a prefix do not
	// interleave
	LockFile       string
	LockRetryDelay time.Duration
}

type SetOpt func(*Opts)

func defaultOpts() Opts {
	return Opts{
		Vars: VarNames{
			ModulePath:    constants.ModulePathEnvVarName,
			Binary:        constants.BinaryEnvVarName,
			IncludePath:   constants.IncludePathEnvVarName,
			PkgConfigPath: constants.PkgConfigPathEnvVarName,
			ExecPath:      constants.ExecPathEnvVarName,
		},
		Layout: Layout{
			LibDir:        constants.LibDirName,
			PrivateLibDir: constants.PrivateLibDirName,
			PackagesDir:   constants.PackagesDirName,
		},
		LockRetryDelay: 100 * time.Millisecond,
	}
}

func newOpts(setOpts ...SetOpt) *Opts {
	opts := &Opts{}
	for _, setOpt := range setOpts {
		setOpt(opts)
	}
	if err := mergo.Merge(opts, defaultOpts()); err != nil {
		// Both sides are the same struct type, this only fails on programmer error
		logging.Error("Could not apply default selector options: %v", err)
	}
	return opts
}

// WithVarNames overrides the environment variable names, empty fields keep their default
func WithVarNames(vars VarNames) SetOpt {
	return func(opts *Opts) { opts.Vars = vars }
}

// WithLayout overrides the package directory layout, empty fields keep their default
func WithLayout(layout Layout) SetOpt {
	return func(opts *Opts) { opts.Layout = layout }
}

func WithEventHandlers(handlers ...events.HandlerFunc) SetOpt {
	return func(opts *Opts) { opts.EventHandlers = handlers }
}

// WithLockFile makes every scoped run hold an inter-process lock on the given file
func WithLockFile(path string) SetOpt {
	return func(opts *Opts) { opts.LockFile = path }
}
