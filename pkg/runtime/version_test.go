package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	v, err := ParseVersion("2.7.14")
	require.NoError(t, err)
	assert.Equal(t, 2, v.Major())
	assert.Equal(t, 7, v.Minor())
	assert.Equal(t, "2.7", v.XY())
	assert.Equal(t, "2.7.14", v.String())

	short := MustParseVersion("3")
	assert.Equal(t, 3, short.Major())
	assert.Equal(t, 0, short.Minor())
	assert.Equal(t, "3.0", short.XY())

	_, err = ParseVersion("not-a-version")
	assert.Error(t, err)
	assert.Panics(t, func() { MustParseVersion("") })
}

func TestVersionCompare(t *testing.T) {
	assert.True(t, MustParseVersion("2.7.14").LessThan(MustParseVersion("3.6")))
	assert.True(t, MustParseVersion("3.6.6").LessThan(MustParseVersion("3.10.0")))
	assert.Equal(t, 0, MustParseVersion("3.6").Compare(MustParseVersion("3.6.0")))
	assert.Equal(t, 1, MustParseVersion("3.7").Compare(MustParseVersion("3.6.9")))
}

func TestVersionSatisfies(t *testing.T) {
	v := MustParseVersion("2.7.14")

	ok, err := v.Satisfies(">= 2.6, < 3")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Satisfies(">= 3")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = v.Satisfies("~~ nonsense")
	assert.Error(t, err)
}

func TestRequirement(t *testing.T) {
	req := Requirement{Name: "python", Binary: "/opt/py27/bin/python2.7", Version: MustParseVersion("2.7.14")}
	assert.Equal(t, "/opt/py27/bin", req.BinDir())
	assert.Equal(t, "python2.7", req.LibName())
	assert.Equal(t, "python 2.7.14 (/opt/py27/bin/python2.7)", req.String())

	req.Family = "pypy"
	assert.Equal(t, "pypy2.7", req.LibName())

	unknown := Requirement{Name: "python", Binary: "python"}
	assert.Equal(t, "python", unknown.LibName())
	assert.Equal(t, "python unknown (python)", unknown.String())
}

func TestOptionsDefaults(t *testing.T) {
	assert.Equal(t, []int{2, 3}, Options{}.allowedMajors())
	assert.Equal(t, []int{3}, Options{AllowedMajorVersions: []int{3}}.allowedMajors())

	opts := newOpts(WithVarNames(VarNames{Binary: "PY"}))
	assert.Equal(t, "PY", opts.Vars.Binary)
	assert.Equal(t, "PYTHONPATH", opts.Vars.ModulePath)
	assert.Equal(t, "PATH", opts.Vars.ExecPath)
	assert.Equal(t, "site-packages", opts.Layout.PackagesDir)
	assert.NotZero(t, opts.LockRetryDelay)
}
