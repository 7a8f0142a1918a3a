package runtime

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/thoas/go-funk"

	"github.com/ActiveState/rtscope/internal/envstore"
	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/fileutils"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/internal/rtutils"
	"github.com/ActiveState/rtscope/pkg/runtime/events"
)

// RequirementSource provides the declared runtime requirements
type RequirementSource interface {
	RuntimeRequirements() ([]Requirement, error)
}

// BuildConfig tells whether an optional or recommended runtime was opted out of
type BuildConfig interface {
	IsExcluded(name string) bool
}

// BuildStep is invoked once per selected runtime. The context it receives carries the active runtime, handing it to
// the selector again returns that runtime instead of selecting anew.
type BuildStep func(ctx context.Context) (interface{}, error)

// Selector selects runtimes from the declared requirements and runs build steps in an environment scoped to them
type Selector struct {
	prefix string
	source RequirementSource
	build  BuildConfig
	env    envstore.Store
	opts   *Opts

	// scopeMu is held for the duration of a scoped run
	scopeMu sync.Mutex
}

// NewSelector returns a selector that installs into prefix. A nil build config excludes nothing.
func NewSelector(prefix string, source RequirementSource, build BuildConfig, env envstore.Store, setOpts ...SetOpt) *Selector {
	return &Selector{
		prefix: prefix,
		source: source,
		build:  build,
		env:    env,
		opts:   newOpts(setOpts...),
	}
}

// Select returns the runtime a build should use: the active runtime when called from within a scoped run, otherwise
// the eligible runtime with the lowest version. Returns nil if no runtime is eligible.
func (s *Selector) Select(ctx context.Context, opts Options) (*ScopedRuntime, error) {
	if active := Active(ctx); active != nil {
		return activeIfAllowed(active, opts), nil
	}

	candidates, err := s.candidates(opts)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates[0], nil
}

// Candidates returns all eligible runtimes in the order they would be processed in. Within a scoped run this is just
// the active runtime, if it is allowed.
func (s *Selector) Candidates(ctx context.Context, opts Options) ([]*ScopedRuntime, error) {
	if active := Active(ctx); active != nil {
		if rt := activeIfAllowed(active, opts); rt != nil {
			return []*ScopedRuntime{rt}, nil
		}
		return nil, nil
	}
	return s.candidates(opts)
}

// Run invokes step once for every eligible runtime, lowest version first, each in its own scoped run. It returns the
// results of the steps in that order, or nil if no runtime is eligible.
// Called from within a scoped run, step is invoked once for the active runtime without setting up a new scope.
func (s *Selector) Run(ctx context.Context, opts Options, step BuildStep) ([]interface{}, error) {
	if active := Active(ctx); active != nil {
		if activeIfAllowed(active, opts) == nil {
			return nil, nil
		}
		res, err := step(ctx)
		if err != nil {
			return nil, err
		}
		return []interface{}{res}, nil
	}

	candidates, err := s.candidates(opts)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	results := make([]interface{}, 0, len(candidates))
	for _, rt := range candidates {
		res, err := s.scopedRun(ctx, rt, step)
		if err != nil {
			return results, errs.Wrap(err, "Build step failed for %s", rt.Binary)
		}
		results = append(results, res)
	}
	return results, nil
}

func activeIfAllowed(active *ScopedRuntime, opts Options) *ScopedRuntime {
	if active.Version != nil && funk.ContainsInt(opts.allowedMajors(), active.Version.Major()) {
		return active
	}
	return nil
}

// candidates filters and sorts the declared requirements
func (s *Selector) candidates(opts Options) ([]*ScopedRuntime, error) {
	reqs, err := s.source.RuntimeRequirements()
	if err != nil {
		return nil, locale.WrapError(err, "err_runtime_source", "Could not collect the declared runtime requirements.")
	}
	if len(reqs) == 0 {
		return nil, &ConfigurationError{locale.NewInputError("err_no_runtime_requirements", "No runtime requirements are declared. Declare at least one runtime (eg. python) before selecting a runtime.")}
	}

	allowed := opts.allowedMajors()
	filtered := []Requirement{}
	binaries := []string{}
	for _, req := range reqs {
		if funk.ContainsString(binaries, req.Binary) {
			logging.Debug("Skipping %s: duplicate binary", req)
			continue
		}
		if !req.Satisfied {
			logging.Debug("Skipping %s: not satisfied", req)
			continue
		}
		if req.Version == nil || !funk.ContainsInt(allowed, req.Version.Major()) {
			logging.Debug("Skipping %s: major version not in %v", req, allowed)
			continue
		}
		if (req.Optional || req.Recommended) && s.build != nil && s.build.IsExcluded(req.Name) {
			logging.Debug("Skipping %s: excluded by build options", req)
			continue
		}
		filtered = append(filtered, req)
		binaries = append(binaries, req.Binary)
	}

	// Older versions go first, so steps that rewrite sources in place for newer versions run last
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Version.LessThan(filtered[j].Version)
	})

	result := make([]*ScopedRuntime, 0, len(filtered))
	for _, req := range filtered {
		result = append(result, s.newScopedRuntime(req))
	}
	return result, nil
}

func (s *Selector) newScopedRuntime(req Requirement) *ScopedRuntime {
	libName := req.LibName()
	return &ScopedRuntime{
		Requirement:            req,
		SitePackagesDir:        filepath.Join(s.prefix, s.opts.Layout.LibDir, libName, s.opts.Layout.PackagesDir),
		PrivateSitePackagesDir: filepath.Join(s.prefix, s.opts.Layout.PrivateLibDir, libName, s.opts.Layout.PackagesDir),
		ActivationID:           uuid.New().String(),
	}
}

// scopedRun sets up the environment for rt, invokes step and restores the environment on every exit path
func (s *Selector) scopedRun(ctx context.Context, rt *ScopedRuntime, step BuildStep) (res interface{}, rerr error) {
	if !s.scopeMu.TryLock() {
		return nil, newScopeBusyError()
	}
	defer s.scopeMu.Unlock()

	if s.opts.LockFile != "" {
		unlock, err := s.lock(ctx)
		if err != nil {
			return nil, err
		}
		defer rtutils.Closer(unlock, &rerr)
	}

	logging.Debug("Runtime block (%s), activation: %s", rt.Binary, rt.ActivationID)

	// Deferred calls run in reverse, so the events below fire after the environment was restored
	defer func() {
		if r := recover(); r != nil {
			s.fireEvent(events.ScopeFailure{Runtime: eventRuntime(rt), Error: errs.New("Build step panicked: %v", r)})
			panic(r)
		}
		if rerr != nil {
			s.fireEvent(events.ScopeFailure{Runtime: eventRuntime(rt), Error: rerr})
			return
		}
		if err := s.fireEvent(events.ScopeSuccess{Runtime: eventRuntime(rt)}); err != nil {
			rerr = err
		}
	}()

	snapshot := s.env.Snapshot()
	defer rtutils.Closer(func() error { return s.teardown(rt, snapshot) }, &rerr)

	if err := s.setup(rt); err != nil {
		return nil, errs.Wrap(err, "Could not set up environment for %s", rt.Binary)
	}

	if err := s.fireEvent(events.ScopeStart{Runtime: eventRuntime(rt), Env: s.env.Snapshot().Diff(snapshot)}); err != nil {
		return nil, err
	}

	res, err := step(withActive(ctx, rt))
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Selector) setup(rt *ScopedRuntime) error {
	vars := s.opts.Vars

	if err := fileutils.Mkdir(rt.SitePackagesDir); err != nil {
		return errs.Wrap(err, "Could not create site packages dir")
	}
	if err := envstore.AppendPath(s.env, vars.ModulePath, rt.SitePackagesDir); err != nil {
		return err
	}

	if err := fileutils.Mkdir(rt.PrivateSitePackagesDir); err != nil {
		return errs.Wrap(err, "Could not create private site packages dir")
	}
	if err := envstore.AppendPath(s.env, vars.ModulePath, rt.PrivateSitePackagesDir); err != nil {
		return err
	}
	if modulePath, ok := s.env.Get(vars.ModulePath); ok {
		logging.Debug("%s=%s", vars.ModulePath, modulePath)
	}

	if err := s.env.Set(vars.Binary, rt.Binary); err != nil {
		return err
	}
	if rt.IncludeDir != "" {
		if err := envstore.PrependPath(s.env, vars.IncludePath, rt.IncludeDir); err != nil {
			return err
		}
	}
	if rt.PkgConfigPath != "" {
		if err := envstore.PrependPath(s.env, vars.PkgConfigPath, rt.PkgConfigPath); err != nil {
			return err
		}
	}
	if !rt.System {
		if err := envstore.PrependPath(s.env, vars.ExecPath, rt.BinDir()); err != nil {
			return err
		}
	}

	return nil
}

// teardown drops the private site packages dir if nothing was installed into it and restores the environment
func (s *Selector) teardown(rt *ScopedRuntime, snapshot envstore.Snapshot) error {
	var rerr error
	if _, err := fileutils.RemoveIfEmpty(rt.PrivateSitePackagesDir); err != nil {
		rerr = errs.Wrap(err, "Could not clean up private site packages dir")
	}
	if err := s.env.Restore(snapshot); err != nil {
		rerr = errs.Pack(rerr, errs.Wrap(err, "Could not restore environment"))
	}
	return rerr
}

func (s *Selector) lock(ctx context.Context) (func() error, error) {
	if err := fileutils.MkdirUnlessExists(filepath.Dir(s.opts.LockFile)); err != nil {
		return nil, locale.WrapError(err, "err_scope_lock", "", s.opts.LockFile)
	}

	lock := flock.New(s.opts.LockFile)
	locked, err := lock.TryLockContext(ctx, s.opts.LockRetryDelay)
	if err != nil || !locked {
		return nil, locale.WrapError(err, "err_scope_lock", "", s.opts.LockFile)
	}
	logging.Debug("Acquired lock: %s", s.opts.LockFile)

	return lock.Unlock, nil
}

func (s *Selector) fireEvent(ev events.Event) error {
	for _, h := range s.opts.EventHandlers {
		if err := h(ev); err != nil {
			return errs.Wrap(err, "Event handler failed")
		}
	}
	return nil
}

func eventRuntime(rt *ScopedRuntime) events.Runtime {
	version := ""
	if rt.Version != nil {
		version = rt.Version.String()
	}
	return events.Runtime{
		Name:         rt.Name,
		Binary:       rt.Binary,
		Version:      version,
		ActivationID: rt.ActivationID,
	}
}
