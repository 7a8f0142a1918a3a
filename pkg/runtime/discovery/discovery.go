// Package discovery turns the runtimes declared in a project file into runtime requirements by resolving and probing
// their interpreters.
package discovery

import (
	"context"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ActiveState/rtscope/internal/constants"
	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/fileutils"
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/pkg/projectfile"
	"github.com/ActiveState/rtscope/pkg/runtime"
)

const probeTimeout = 30 * time.Second

const includeDirScript = "import sysconfig; print(sysconfig.get_paths()['include'])"

var versionRx = regexp.MustCompile(`\d+(\.\d+)+`)

var _ runtime.RequirementSource = &Source{}

type probeResult struct {
	output string
	err    error
}

// Source provides the requirements for the runtimes declared in a project file
type Source struct {
	runtimes   []projectfile.Runtime
	baseDir    string
	systemDirs []string
	cache      *cache.Cache
}

// New returns a source for the given runtime declarations. Relative binary paths are resolved against baseDir.
func New(runtimes []projectfile.Runtime, baseDir string) *Source {
	return &Source{
		runtimes:   runtimes,
		baseDir:    baseDir,
		systemDirs: constants.SystemBinDirs,
		cache:      cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// NewFromProject returns a source for the runtimes declared in the given project file
func NewFromProject(project *projectfile.Project) *Source {
	return New(project.Runtimes, project.Dir())
}

// SetSystemDirs overrides the directories whose interpreters are considered provided by the system
func (s *Source) SetSystemDirs(dirs []string) {
	s.systemDirs = dirs
}

// RuntimeRequirements resolves and probes every declared runtime. Runtimes that cannot be resolved or probed, or that
// do not match their constraint, are returned as unsatisfied.
func (s *Source) RuntimeRequirements() ([]runtime.Requirement, error) {
	reqs := make([]runtime.Requirement, 0, len(s.runtimes))
	for _, rt := range s.runtimes {
		req, err := s.requirement(rt)
		if err != nil {
			return nil, errs.Wrap(err, "Could not discover runtime %s", rt.Name)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (s *Source) requirement(rt projectfile.Runtime) (runtime.Requirement, error) {
	req := runtime.Requirement{
		Name:          rt.Name,
		Binary:        rt.Binary,
		Family:        rt.Family,
		Optional:      rt.Optional,
		Recommended:   rt.Recommended,
		IncludeDir:    rt.IncludeDir,
		PkgConfigPath: rt.PkgConfigPath,
	}
	if req.Family == "" {
		req.Family = constants.DefaultFamily
	}

	if rt.Version != "" {
		v, err := runtime.ParseVersion(rt.Version)
		if err != nil {
			return req, err
		}
		req.Version = v
	}

	binary, err := s.resolve(rt.Binary)
	if err != nil {
		logging.Debug("Runtime %s is not available: %v", rt.Name, err)
		return req, nil
	}
	req.Binary = binary

	if rt.System != nil {
		req.System = *rt.System
	} else {
		req.System = s.isSystem(binary)
	}

	if req.Version == nil {
		v, err := s.probeVersion(binary)
		if err != nil {
			logging.Debug("Could not determine version of %s: %v", binary, err)
			return req, nil
		}
		req.Version = v
	}

	if rt.Constraint != "" {
		ok, err := req.Version.Satisfies(rt.Constraint)
		if err != nil {
			return req, err
		}
		if !ok {
			logging.Debug("Runtime %s %s does not satisfy %s", rt.Name, req.Version, rt.Constraint)
			return req, nil
		}
	}

	if req.IncludeDir == "" && req.Family == constants.DefaultFamily {
		req.IncludeDir = s.probeIncludeDir(binary)
	}

	req.Satisfied = true
	return req, nil
}

func (s *Source) resolve(binary string) (string, error) {
	if !strings.ContainsRune(binary, '/') && !strings.ContainsRune(binary, filepath.Separator) {
		return exec.LookPath(binary)
	}

	if !filepath.IsAbs(binary) {
		binary = filepath.Join(s.baseDir, binary)
	}
	if !fileutils.FileExists(binary) {
		return "", errs.New("File does not exist: %s", binary)
	}
	if !fileutils.IsExecutable(binary) {
		return "", errs.New("File is not executable: %s", binary)
	}
	return filepath.Clean(binary), nil
}

func (s *Source) isSystem(binary string) bool {
	dir := filepath.Dir(binary)
	for _, sysDir := range s.systemDirs {
		sysDir = filepath.Clean(sysDir)
		if dir == sysDir || strings.HasPrefix(dir, sysDir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (s *Source) probeVersion(binary string) (*runtime.Version, error) {
	out, err := s.probe(binary, "--version")
	if err != nil {
		return nil, err
	}
	match := versionRx.FindString(out)
	if match == "" {
		return nil, errs.New("No version found in output: %s", out)
	}
	return runtime.ParseVersion(match)
}

func (s *Source) probeIncludeDir(binary string) string {
	out, err := s.probe(binary, "-c", includeDirScript)
	if err != nil {
		logging.Debug("Could not determine include dir of %s: %v", binary, err)
		return ""
	}
	return strings.TrimSpace(out)
}

// probe runs binary with args and returns its combined output, results are cached for the lifetime of the source
func (s *Source) probe(binary string, args ...string) (string, error) {
	key := binary + "\x00" + strings.Join(args, "\x00")
	if cached, ok := s.cache.Get(key); ok {
		res := cached.(probeResult)
		return res.output, res.err
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	logging.Debug("Probing %s %v", binary, args)
	out, err := exec.CommandContext(ctx, binary, args...).CombinedOutput()
	res := probeResult{output: string(out)}
	if err != nil {
		res.err = errs.Wrap(err, "Running %s failed, output: %s", binary, string(out))
	}

	s.cache.Set(key, res, cache.NoExpiration)
	return res.output, res.err
}
