package selection

import (
	"fmt"
	"strings"

	"github.com/ActiveState/rtscope/internal/envstore"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/output"
	"github.com/ActiveState/rtscope/pkg/runtime"
)

// RuntimeOutput describes a selected runtime
type RuntimeOutput struct {
	Name                   string `json:"name"`
	Binary                 string `json:"binary"`
	Version                string `json:"version"`
	System                 bool   `json:"system"`
	SitePackagesDir        string `json:"site_packages_dir"`
	PrivateSitePackagesDir string `json:"private_site_packages_dir"`
	IncludeDir             string `json:"include_dir,omitempty"`
	PkgConfigPath          string `json:"pkg_config_path,omitempty"`
}

var _ output.Marshaller = &RuntimeOutput{}

func NewRuntimeOutput(rt *runtime.ScopedRuntime) *RuntimeOutput {
	version := ""
	if rt.Version != nil {
		version = rt.Version.String()
	}
	return &RuntimeOutput{
		Name:                   rt.Name,
		Binary:                 rt.Binary,
		Version:                version,
		System:                 rt.System,
		SitePackagesDir:        rt.SitePackagesDir,
		PrivateSitePackagesDir: rt.PrivateSitePackagesDir,
		IncludeDir:             rt.IncludeDir,
		PkgConfigPath:          rt.PkgConfigPath,
	}
}

func (o *RuntimeOutput) MarshalOutput(f output.Format) interface{} {
	if f != output.PlainFormatName {
		return o
	}

	lines := []string{
		fmt.Sprintf("[INFO]%s[/RESET] %s", o.Name, o.Version),
		fmt.Sprintf("  %s: %s", locale.Tl("field_binary", "Binary"), o.Binary),
		fmt.Sprintf("  %s: %s", locale.Tl("field_site_packages", "Site packages"), o.SitePackagesDir),
		fmt.Sprintf("  %s: %s", locale.Tl("field_private_site_packages", "Private site packages"), o.PrivateSitePackagesDir),
	}
	if o.System {
		lines = append(lines, fmt.Sprintf("  %s: %t", locale.Tl("field_system", "System"), o.System))
	}
	if o.IncludeDir != "" {
		lines = append(lines, fmt.Sprintf("  %s: %s", locale.Tl("field_include_dir", "Include dir"), o.IncludeDir))
	}
	if o.PkgConfigPath != "" {
		lines = append(lines, fmt.Sprintf("  %s: %s", locale.Tl("field_pkg_config_path", "pkg-config path"), o.PkgConfigPath))
	}
	return strings.Join(lines, "\n")
}

// RuntimesOutput lists runtimes in processing order
type RuntimesOutput []*RuntimeOutput

var _ output.Marshaller = RuntimesOutput{}

func NewRuntimesOutput(rts []*runtime.ScopedRuntime) RuntimesOutput {
	result := make(RuntimesOutput, 0, len(rts))
	for _, rt := range rts {
		result = append(result, NewRuntimeOutput(rt))
	}
	return result
}

func (o RuntimesOutput) MarshalOutput(f output.Format) interface{} {
	if f != output.PlainFormatName {
		return []*RuntimeOutput(o)
	}

	blocks := make([]string, 0, len(o))
	for _, rt := range o {
		blocks = append(blocks, rt.MarshalOutput(f).(string))
	}
	return strings.Join(blocks, "\n\n")
}

// EnvOutput holds the variables a scoped run sets for a runtime
type EnvOutput struct {
	Runtime *RuntimeOutput    `json:"runtime"`
	Env     map[string]string `json:"env"`
}

// EnvsOutput lists the scoped environments in processing order
type EnvsOutput []*EnvOutput

var _ output.Marshaller = EnvsOutput{}

func (o EnvsOutput) MarshalOutput(f output.Format) interface{} {
	if f != output.PlainFormatName {
		return []*EnvOutput(o)
	}

	blocks := make([]string, 0, len(o))
	for _, e := range o {
		lines := []string{fmt.Sprintf("[INFO]%s[/RESET]", Heading(e.Runtime.Binary, e.Runtime.Version))}
		lines = append(lines, envstore.Snapshot(e.Env).Environ()...)
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// Heading is the title of a runtime block
func Heading(binary, version string) string {
	return locale.Tl("heading_runtime_block", "Runtime {{.V0}} ({{.V1}})", binary, version)
}
