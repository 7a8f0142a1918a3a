// Package selection wires the project file, requirement discovery and build options into a runtime selector for the
// command runners.
package selection

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ActiveState/rtscope/internal/constants"
	"github.com/ActiveState/rtscope/internal/envstore"
	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/pkg/buildopts"
	"github.com/ActiveState/rtscope/pkg/projectfile"
	"github.com/ActiveState/rtscope/pkg/runtime"
	"github.com/ActiveState/rtscope/pkg/runtime/discovery"
)

// Params are the options shared by all commands that select runtimes
type Params struct {
	ProjectFile string
	Prefix      string
	Majors      []int
	With        []string
	Without     []string
	LockFile    string
}

// Selection is a selector ready for use, along with the options to select with
type Selection struct {
	Selector  *runtime.Selector
	Options   runtime.Options
	Project   *projectfile.Project
	Prefix    string
	BuildOpts *buildopts.Options
}

// New loads the project file and sets up a selector that mutates env
func New(params Params, env envstore.Store, setOpts ...runtime.SetOpt) (*Selection, error) {
	path, err := projectfile.GetProjectFilePath(params.ProjectFile)
	if err != nil {
		return nil, errs.Wrap(err, "Could not determine project file path")
	}

	project, err := projectfile.Parse(path)
	if err != nil {
		return nil, err
	}

	majors := params.Majors
	if majors == nil {
		majors, err = project.AllowedMajors()
		if err != nil {
			return nil, err
		}
	}

	prefix := resolvePrefix(params.Prefix, project)
	build := newBuildOpts(params, project)

	if params.LockFile != "" {
		setOpts = append(setOpts, runtime.WithLockFile(params.LockFile))
	}

	logging.Debug("Selecting runtimes from %s, prefix: %s, majors: %v", path, prefix, majors)

	return &Selection{
		Selector:  runtime.NewSelector(prefix, discovery.NewFromProject(project), build, env, setOpts...),
		Options:   runtime.Options{AllowedMajorVersions: majors},
		Project:   project,
		Prefix:    prefix,
		BuildOpts: build,
	}, nil
}

// resolvePrefix picks the prefix from the flag, the environment, the project file or the default, in that order
func resolvePrefix(flagValue string, project *projectfile.Project) string {
	prefix := flagValue
	if prefix == "" {
		prefix = os.Getenv(constants.PrefixEnvVarName)
	}
	if prefix == "" {
		prefix = project.Prefix
	}
	if prefix == "" {
		prefix = filepath.Join(project.Dir(), constants.DefaultPrefixDirName)
	}
	if abs, err := filepath.Abs(prefix); err == nil {
		prefix = abs
	}
	return prefix
}

func newBuildOpts(params Params, project *projectfile.Project) *buildopts.Options {
	build := buildopts.New()
	for _, rt := range project.Runtimes {
		if rt.Optional {
			build.Optional(rt.Name)
		}
		if rt.Recommended {
			build.Recommended(rt.Name)
		}
	}
	build.With(project.Build.With...)
	build.Without(project.Build.Without...)
	build.With(params.With...)
	build.Without(params.Without...)
	return build
}

// RationalizeError turns selector errors into errors that make sense to the user
func RationalizeError(rerr *error) {
	var busy *runtime.ScopeBusyError
	switch {
	case rerr == nil || *rerr == nil:
		return

	case errors.As(*rerr, &busy):
		if busy.LocalizedError != nil {
			busy.AddTips(locale.Tl("tip_scope_busy", "Build steps that select a runtime again must pass on the context they were given."))
		}
		*rerr = errs.WrapUserFacing(*rerr,
			locale.Tl("err_scope_busy", "Another scoped run is already in progress for this selector."),
		)

	case errs.Matches(*rerr, &runtime.ConfigurationError{}):
		*rerr = errs.WrapUserFacing(*rerr,
			locale.JoinedErrorMessage(*rerr),
			errs.SetInput(),
			errs.SetTips(locale.Tl("tip_declare_runtime", "Declare runtimes under 'runtimes:' in {{.V0}}.", constants.ConfigFileName)),
		)
	}
}
