package projectfile

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"

	"github.com/ActiveState/rtscope/internal/constants"
	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/fileutils"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/pkg/runtime"
)

// Project covers the top level project structure of our yaml
type Project struct {
	Prefix   string    `yaml:"prefix"`
	Runtimes []Runtime `yaml:"runtimes"`
	Build    Build     `yaml:"build"`
	// AllowedMajorVersions is loosely typed so that both `[2, 3]` and `["2", "3"]` are accepted
	AllowedMajorVersions interface{} `yaml:"allowed_major_versions"`
	path                 string      // "private"
}

// Runtime covers the runtime structure, which goes under Project
type Runtime struct {
	Name          string `yaml:"name"`
	Binary        string `yaml:"binary"`
	Version       string `yaml:"version"`
	Constraint    string `yaml:"constraint"`
	Family        string `yaml:"family"`
	Optional      bool   `yaml:"optional"`
	Recommended   bool   `yaml:"recommended"`
	System        *bool  `yaml:"system"`
	IncludeDir    string `yaml:"include_dir"`
	PkgConfigPath string `yaml:"pkg_config_path"`
}

// Build covers the default build options, which goes under Project
type Build struct {
	With    []string `yaml:"with"`
	Without []string `yaml:"without"`
}

// Parse the given filepath, which should be the full path to an rtscope.yaml file
func Parse(path string) (*Project, error) {
	dat, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, locale.WrapInputError(err, "err_projectfile_read", "", path)
	}

	project, err := parseData(dat, path)
	if err != nil {
		return nil, err
	}

	logging.Debug("Parsed project file %s, %d runtime(s) declared", path, len(project.Runtimes))
	return project, nil
}

func parseData(dat []byte, path string) (*Project, error) {
	project := &Project{}
	if err := yaml.Unmarshal(dat, project); err != nil {
		return nil, locale.WrapInputError(err, "err_projectfile_parse", "", path, err.Error())
	}
	project.path = path

	if project.Prefix != "" && !filepath.IsAbs(project.Prefix) {
		project.Prefix = filepath.Join(filepath.Dir(path), project.Prefix)
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks that every declared runtime is usable
func (p *Project) Validate() error {
	for i, rt := range p.Runtimes {
		if rt.Name == "" {
			return locale.NewInputError("err_projectfile_runtime_name", "", strconv.Itoa(i+1))
		}
		if rt.Binary == "" {
			return locale.NewInputError("err_projectfile_runtime_binary", "", rt.Name)
		}
		if rt.Version != "" {
			if _, err := runtime.ParseVersion(rt.Version); err != nil {
				return locale.WrapInputError(err, "err_projectfile_runtime_version", "", rt.Name, rt.Version)
			}
		}
		if rt.Constraint != "" {
			if _, err := runtime.MustParseVersion("0").Satisfies(rt.Constraint); err != nil {
				return locale.WrapInputError(err, "err_projectfile_runtime_constraint", "", rt.Name, rt.Constraint)
			}
		}
	}

	if _, err := p.AllowedMajors(); err != nil {
		return err
	}

	return nil
}

// AllowedMajors returns the major versions configured in the project file, nil if not configured
func (p *Project) AllowedMajors() ([]int, error) {
	if p.AllowedMajorVersions == nil {
		return nil, nil
	}
	majors, err := cast.ToIntSliceE(p.AllowedMajorVersions)
	if err != nil {
		return nil, locale.WrapInputError(err, "err_projectfile_majors", "The allowed_major_versions setting must be a list of numbers.")
	}
	return majors, nil
}

// Path returns the project's rtscope.yaml file path.
func (p *Project) Path() string {
	return p.path
}

// Dir returns the directory holding the project file
func (p *Project) Dir() string {
	return filepath.Dir(p.path)
}

// GetProjectFilePath returns the path of the project file to use: the given path if set, otherwise the path named by
// constants.ProjectFileEnvVarName, otherwise constants.ConfigFileName in the working directory
func GetProjectFilePath(path string) (string, error) {
	if path == "" {
		path = os.Getenv(constants.ProjectFileEnvVarName)
	}
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errs.Wrap(err, "Could not get working directory")
		}
		path = filepath.Join(wd, constants.ConfigFileName)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errs.Wrap(err, "Could not resolve project file path: %s", path)
	}
	return abs, nil
}
