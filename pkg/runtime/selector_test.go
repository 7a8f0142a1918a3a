package runtime

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ActiveState/rtscope/internal/envstore"
	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/fileutils"
	"github.com/ActiveState/rtscope/pkg/runtime/events"
)

type staticSource struct {
	reqs  []Requirement
	err   error
	calls int
}

func (s *staticSource) RuntimeRequirements() ([]Requirement, error) {
	s.calls++
	return s.reqs, s.err
}

type excludeNames []string

func (e excludeNames) IsExcluded(name string) bool {
	for _, n := range e {
		if n == name {
			return true
		}
	}
	return false
}

func python(name, binary, version string) Requirement {
	return Requirement{
		Name:       name,
		Binary:     binary,
		Version:    MustParseVersion(version),
		Satisfied:  true,
		IncludeDir: filepath.Join(filepath.Dir(filepath.Dir(binary)), "include", "python"+version[:3]),
	}
}

func joinPaths(paths ...string) string {
	return strings.Join(paths, string(os.PathListSeparator))
}

func newTestSelector(t *testing.T, reqs []Requirement, setOpts ...SetOpt) (*Selector, *envstore.Memory, string) {
	prefix := t.TempDir()
	store := envstore.NewMemory(envstore.Snapshot{
		"PATH":       "/usr/bin",
		"PYTHONPATH": "/existing",
		"HOME":       "/home/builder",
	})
	return NewSelector(prefix, &staticSource{reqs: reqs}, nil, store, setOpts...), store, prefix
}

func activeXY(ctx context.Context) string {
	rt := Active(ctx)
	if rt == nil {
		return ""
	}
	return rt.Version.XY()
}

func TestRunSortsAndRunsEachRuntime(t *testing.T) {
	sel, store, _ := newTestSelector(t, []Requirement{
		python("python3", "/opt/py36/bin/python3.6", "3.6.6"),
		python("python", "/opt/py27/bin/python2.7", "2.7.14"),
	})
	before := store.Snapshot()

	var order []string
	results, err := sel.Run(context.Background(), Options{AllowedMajorVersions: []int{2, 3}}, func(ctx context.Context) (interface{}, error) {
		order = append(order, activeXY(ctx))
		return activeXY(ctx) + "-built", nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2.7", "3.6"}, order)
	assert.Equal(t, []interface{}{"2.7-built", "3.6-built"}, results)
	assert.Equal(t, before, store.Snapshot())
}

func TestScopedEnvironment(t *testing.T) {
	req := python("python", "/opt/py27/bin/python2.7", "2.7.14")
	req.PkgConfigPath = "/opt/py27/lib/pkgconfig"
	sel, store, prefix := newTestSelector(t, []Requirement{req})
	store.Set("CMAKE_INCLUDE_PATH", "/usr/include")

	site := filepath.Join(prefix, "lib", "python2.7", "site-packages")
	private := filepath.Join(prefix, "libexec", "lib", "python2.7", "site-packages")

	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		env := store.Snapshot()
		assert.Equal(t, joinPaths("/existing", site, private), env["PYTHONPATH"])
		assert.Equal(t, "/opt/py27/bin/python2.7", env["PYTHON"])
		assert.Equal(t, joinPaths("/opt/py27/include/python2.7", "/usr/include"), env["CMAKE_INCLUDE_PATH"])
		assert.Equal(t, "/opt/py27/lib/pkgconfig", env["PKG_CONFIG_PATH"])
		assert.Equal(t, joinPaths("/opt/py27/bin", "/usr/bin"), env["PATH"])
		assert.Equal(t, "/home/builder", env["HOME"])

		assert.True(t, fileutils.DirExists(site))
		assert.True(t, fileutils.DirExists(private))

		rt := Active(ctx)
		require.NotNil(t, rt)
		assert.Equal(t, site, rt.SitePackagesDir)
		assert.Equal(t, private, rt.PrivateSitePackagesDir)
		assert.NotEmpty(t, rt.ActivationID)
		return nil, nil
	})
	require.NoError(t, err)

	_, hasPkgConfig := store.Get("PKG_CONFIG_PATH")
	assert.False(t, hasPkgConfig, "variables added by the scoped run are removed")
}

func TestSystemRuntimeKeepsPath(t *testing.T) {
	req := python("python", "/usr/bin/python2.7", "2.7.16")
	req.System = true
	req.IncludeDir = ""
	sel, store, _ := newTestSelector(t, []Requirement{req})

	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		path, _ := store.Get("PATH")
		assert.Equal(t, "/usr/bin", path)
		_, hasInclude := store.Get("CMAKE_INCLUDE_PATH")
		assert.False(t, hasInclude)
		return nil, nil
	})
	require.NoError(t, err)
}

func TestFiltering(t *testing.T) {
	unsatisfied := python("python3", "/opt/py38/bin/python3.8", "3.8.1")
	unsatisfied.Satisfied = false

	optional := python("python3", "/opt/py36/bin/python3.6", "3.6.6")
	optional.Optional = true

	recommended := python("python2", "/opt/py27/bin/python2.7", "2.7.14")
	recommended.Recommended = true

	required := python("python3", "/opt/py37/bin/python3.7", "3.7.0")

	noVersion := Requirement{Name: "python", Binary: "/opt/unknown/bin/python", Satisfied: true}

	tests := []struct {
		name     string
		reqs     []Requirement
		build    BuildConfig
		majors   []int
		expected []string
	}{
		{
			"Duplicate binaries, first wins",
			[]Requirement{
				python("first", "/opt/py27/bin/python2.7", "2.7.14"),
				python("second", "/opt/py27/bin/python2.7", "2.7.14"),
			},
			nil, nil,
			[]string{"first"},
		},
		{
			"Duplicate of an unsatisfied requirement is kept",
			[]Requirement{
				unsatisfied,
				python("python3-again", "/opt/py38/bin/python3.8", "3.8.1"),
			},
			nil, nil,
			[]string{"python3-again"},
		},
		{
			"Unsatisfied is excluded regardless of version",
			[]Requirement{unsatisfied},
			nil, []int{3},
			[]string{},
		},
		{
			"Major version not allowed",
			[]Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")},
			nil, []int{3},
			[]string{},
		},
		{
			"Empty allowed majors excludes everything",
			[]Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")},
			nil, []int{},
			[]string{},
		},
		{
			"No allowed majors falls back to the defaults",
			[]Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")},
			nil, nil,
			[]string{"python"},
		},
		{
			"Requirement without version is not eligible",
			[]Requirement{noVersion},
			nil, nil,
			[]string{},
		},
		{
			"Excluded optional and recommended",
			[]Requirement{optional, recommended, required},
			excludeNames{"python3", "python2"}, nil,
			[]string{"python3"},
		},
		{
			"Not excluded optional",
			[]Requirement{optional, recommended},
			excludeNames{}, nil,
			[]string{"python2", "python3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelector(t.TempDir(), &staticSource{reqs: tt.reqs}, tt.build, envstore.NewMemory(nil))
			candidates, err := sel.Candidates(context.Background(), Options{AllowedMajorVersions: tt.majors})
			require.NoError(t, err)

			names := []string{}
			for _, c := range candidates {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestNoEligibleRuntime(t *testing.T) {
	sel, store, _ := newTestSelector(t, []Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")})
	before := store.Snapshot()

	invoked := false
	results, err := sel.Run(context.Background(), Options{AllowedMajorVersions: []int{3}}, func(ctx context.Context) (interface{}, error) {
		invoked = true
		return nil, nil
	})
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.False(t, invoked)
	assert.Equal(t, before, store.Snapshot())

	rt, err := sel.Select(context.Background(), Options{AllowedMajorVersions: []int{3}})
	require.NoError(t, err)
	assert.Nil(t, rt)
}

func TestNoRequirements(t *testing.T) {
	source := &staticSource{}
	sel := NewSelector(t.TempDir(), source, excludeNames{}, envstore.NewMemory(nil))

	invoked := false
	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		invoked = true
		return nil, nil
	})
	require.Error(t, err)
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.False(t, invoked)

	_, err = sel.Select(context.Background(), Options{})
	assert.True(t, errs.Matches(err, &ConfigurationError{}))
}

func TestSourceError(t *testing.T) {
	cause := errors.New("cannot read declarations")
	sel := NewSelector(t.TempDir(), &staticSource{err: cause}, nil, envstore.NewMemory(nil))

	_, err := sel.Select(context.Background(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errs.Matches(err, &ConfigurationError{}))
}

func TestSelectReturnsLowestWithoutScoping(t *testing.T) {
	sel, store, prefix := newTestSelector(t, []Requirement{
		python("python3", "/opt/py36/bin/python3.6", "3.6.6"),
		python("python", "/opt/py27/bin/python2.7", "2.7.14"),
	})
	before := store.Snapshot()

	rt, err := sel.Select(context.Background(), Options{})
	require.NoError(t, err)
	require.NotNil(t, rt)
	assert.Equal(t, "2.7", rt.Version.XY())
	assert.Equal(t, filepath.Join(prefix, "lib", "python2.7", "site-packages"), rt.SitePackagesDir)
	assert.False(t, fileutils.TargetExists(rt.SitePackagesDir), "handle mode does not touch the filesystem")
	assert.Equal(t, before, store.Snapshot())
}

func TestNestedSelection(t *testing.T) {
	sel, _, _ := newTestSelector(t, []Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")})
	source := sel.source.(*staticSource)

	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		callsBefore := source.calls

		rt, err := sel.Select(ctx, Options{AllowedMajorVersions: []int{2, 3}})
		require.NoError(t, err)
		assert.Same(t, Active(ctx), rt)

		rt, err = sel.Select(ctx, Options{AllowedMajorVersions: []int{3}})
		require.NoError(t, err)
		assert.Nil(t, rt)

		candidates, err := sel.Candidates(ctx, Options{})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Same(t, Active(ctx), candidates[0])

		assert.Equal(t, callsBefore, source.calls, "nested selection does not re-filter")
		return nil, nil
	})
	require.NoError(t, err)
}

func TestNestedRunReusesActiveRuntime(t *testing.T) {
	sel, _, _ := newTestSelector(t, []Requirement{
		python("python", "/opt/py27/bin/python2.7", "2.7.14"),
		python("python3", "/opt/py36/bin/python3.6", "3.6.6"),
	})

	var inner []string
	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		results, err := sel.Run(ctx, Options{AllowedMajorVersions: []int{3}}, func(ctx context.Context) (interface{}, error) {
			inner = append(inner, activeXY(ctx))
			return activeXY(ctx), nil
		})
		if activeXY(ctx) == "2.7" {
			assert.Nil(t, results)
		} else {
			assert.Equal(t, []interface{}{"3.6"}, results)
		}
		return nil, err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"3.6"}, inner)
}

func TestPrivateSitePackagesCleanup(t *testing.T) {
	sel, _, prefix := newTestSelector(t, []Requirement{
		python("python", "/opt/py27/bin/python2.7", "2.7.14"),
		python("python3", "/opt/py36/bin/python3.6", "3.6.6"),
	})

	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		rt := Active(ctx)
		if rt.Version.Major() == 3 {
			return nil, fileutils.WriteFile(filepath.Join(rt.PrivateSitePackagesDir, "module.py"), []byte("pass"))
		}
		return nil, nil
	})
	require.NoError(t, err)

	assert.False(t, fileutils.TargetExists(filepath.Join(prefix, "libexec", "lib", "python2.7", "site-packages")))
	assert.True(t, fileutils.FileExists(filepath.Join(prefix, "libexec", "lib", "python3.6", "site-packages", "module.py")))
	assert.True(t, fileutils.DirExists(filepath.Join(prefix, "lib", "python2.7", "site-packages")))
}

func TestStepErrorRestoresEnvironment(t *testing.T) {
	sel, store, _ := newTestSelector(t, []Requirement{
		python("python", "/opt/py27/bin/python2.7", "2.7.14"),
		python("python3", "/opt/py36/bin/python3.6", "3.6.6"),
	})
	before := store.Snapshot()
	cause := errors.New("compilation failed")

	calls := 0
	results, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		calls++
		store.Set("PYTHON", "/tampered")
		store.Set("BUILD_ONLY_VAR", "1")
		return nil, cause
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Empty(t, results)
	assert.Equal(t, 1, calls, "the sequence stops at the first failing step")
	assert.Equal(t, before, store.Snapshot())
}

func TestStepPanicRestoresEnvironment(t *testing.T) {
	sel, store, _ := newTestSelector(t, []Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")})
	before := store.Snapshot()

	assert.Panics(t, func() {
		sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
			panic("boom")
		})
	})
	assert.Equal(t, before, store.Snapshot())

	// The selector is usable again afterwards
	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) { return nil, nil })
	assert.NoError(t, err)
}

func TestScopeBusy(t *testing.T) {
	sel, _, _ := newTestSelector(t, []Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")})

	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
			return nil, nil
		})
		return nil, err
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScopeBusy))
	assert.True(t, errs.Matches(err, &ScopeBusyError{}))
}

func TestEvents(t *testing.T) {
	var fired []string
	handler := func(ev events.Event) error {
		switch e := ev.(type) {
		case events.ScopeStart:
			fired = append(fired, "start:"+e.Runtime.Version)
			assert.Equal(t, "/opt/py27/bin/python2.7", e.Env["PYTHON"])
		case events.ScopeSuccess:
			fired = append(fired, "success:"+e.Runtime.Version)
		case events.ScopeFailure:
			fired = append(fired, "failure:"+e.Runtime.Version)
		}
		return nil
	}
	sel, _, _ := newTestSelector(t, []Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")}, WithEventHandlers(handler))

	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) { return nil, nil })
	require.NoError(t, err)
	_, err = sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) { return nil, errs.New("fail") })
	require.Error(t, err)

	assert.Equal(t, []string{"start:2.7.14", "success:2.7.14", "start:2.7.14", "failure:2.7.14"}, fired)
}

func TestCustomVarNamesAndLayout(t *testing.T) {
	req := Requirement{
		Name:      "ruby",
		Binary:    "/opt/ruby/bin/ruby",
		Version:   MustParseVersion("2.6.3"),
		Family:    "ruby",
		Satisfied: true,
	}
	sel, store, prefix := newTestSelector(t, []Requirement{req},
		WithVarNames(VarNames{ModulePath: "RUBYLIB", Binary: "RUBY"}),
		WithLayout(Layout{PackagesDir: "site_ruby"}),
	)

	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		site := filepath.Join(prefix, "lib", "ruby2.6", "site_ruby")
		private := filepath.Join(prefix, "libexec", "lib", "ruby2.6", "site_ruby")
		rubylib, _ := store.Get("RUBYLIB")
		assert.Equal(t, joinPaths(site, private), rubylib)
		ruby, _ := store.Get("RUBY")
		assert.Equal(t, "/opt/ruby/bin/ruby", ruby)
		path, _ := store.Get("PATH")
		assert.Equal(t, joinPaths("/opt/ruby/bin", "/usr/bin"), path)
		pythonpath, _ := store.Get("PYTHONPATH")
		assert.Equal(t, "/existing", pythonpath)
		return nil, nil
	})
	require.NoError(t, err)
}

func TestLockFile(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "locks", "scope.lock")
	sel, _, _ := newTestSelector(t, []Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")}, WithLockFile(lockPath))

	_, err := sel.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		assert.True(t, fileutils.FileExists(lockPath))
		return nil, nil
	})
	require.NoError(t, err)
}

func TestLockFileCancelled(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "scope.lock")
	holder, _, _ := newTestSelector(t, []Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")}, WithLockFile(lockPath))
	waiter, _, _ := newTestSelector(t, []Requirement{python("python", "/opt/py27/bin/python2.7", "2.7.14")}, WithLockFile(lockPath))

	_, err := holder.Run(context.Background(), Options{}, func(ctx context.Context) (interface{}, error) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		invoked := false
		_, err := waiter.Run(cancelled, Options{}, func(ctx context.Context) (interface{}, error) {
			invoked = true
			return nil, nil
		})
		assert.Error(t, err)
		assert.False(t, invoked)
		return nil, nil
	})
	require.NoError(t, err)
}
