// Package buildopts implements the --with/--without build options that decide whether an optional or recommended
// runtime takes part in a build.
package buildopts

import (
	"strings"

	"github.com/thoas/go-funk"

	"github.com/ActiveState/rtscope/internal/logging"
)

const (
	withPrefix    = "with-"
	withoutPrefix = "without-"
)

// Options holds the defined and the requested build options
type Options struct {
	defined   []string
	requested []string
}

// New returns build options with the given requests, eg. "with-python3" or "without-python"
func New(requested ...string) *Options {
	o := &Options{}
	o.Request(requested...)
	return o
}

// Optional registers names as optional, each defines a with-<name> option
func (o *Options) Optional(names ...string) {
	for _, name := range names {
		o.define(withPrefix + name)
	}
}

// Recommended registers names as recommended, each defines a without-<name> option
func (o *Options) Recommended(names ...string) {
	for _, name := range names {
		o.define(withoutPrefix + name)
	}
}

// Request records requested options. Leading dashes are ignored so that "--with-python3" works as well.
func (o *Options) Request(options ...string) {
	for _, opt := range options {
		opt = strings.TrimLeft(strings.TrimSpace(opt), "-")
		if opt == "" || funk.ContainsString(o.requested, opt) {
			continue
		}
		o.requested = append(o.requested, opt)
	}
}

// With requests with-<name> for each name
func (o *Options) With(names ...string) {
	for _, name := range names {
		o.Request(withPrefix + name)
	}
}

// Without requests without-<name> for each name
func (o *Options) Without(names ...string) {
	for _, name := range names {
		o.Request(withoutPrefix + name)
	}
}

func (o *Options) define(opt string) {
	if !funk.ContainsString(o.defined, opt) {
		o.defined = append(o.defined, opt)
	}
}

// IsDefined tells whether the option was registered
func (o *Options) IsDefined(opt string) bool {
	return funk.ContainsString(o.defined, opt)
}

// IsRequested tells whether the option was requested
func (o *Options) IsRequested(opt string) bool {
	return funk.ContainsString(o.requested, opt)
}

// IsExcluded tells whether the runtime called name is left out of the build
func (o *Options) IsExcluded(name string) bool {
	excluded := o.isExcluded(name)
	logging.Debug("Build option for %s: excluded=%v", name, excluded)
	return excluded
}

func (o *Options) isExcluded(name string) bool {
	if o.IsDefined(withPrefix + name) {
		return !o.IsRequested(withPrefix + name)
	}
	return o.IsRequested(withoutPrefix + name)
}

// Defined returns the registered options
func (o *Options) Defined() []string {
	return o.defined
}

// Requested returns the requested options
func (o *Options) Requested() []string {
	return o.requested
}
