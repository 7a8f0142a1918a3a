package envstore

import (
	"os"
	"strings"

	"github.com/ActiveState/rtscope/internal/errs"
)

// Process is a Store backed by the environment of the current process
type Process struct{}

var _ Store = &Process{}

// NewProcess returns a Store for the process environment
func NewProcess() *Process {
	return &Process{}
}

func (p *Process) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (p *Process) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return errs.Wrap(err, "os.Setenv %s failed", key)
	}
	return nil
}

func (p *Process) Unset(key string) error {
	if err := os.Unsetenv(key); err != nil {
		return errs.Wrap(err, "os.Unsetenv %s failed", key)
	}
	return nil
}

func (p *Process) Snapshot() Snapshot {
	return parseEnviron(os.Environ())
}

func (p *Process) Restore(snapshot Snapshot) error {
	return restore(p, snapshot)
}

// parseEnviron turns os.Environ() style entries into a snapshot.
// cmd.exe on Windows uses dynamic environment variables that begin with an '=', those cannot be set through
// os.Setenv so we leave them out.
func parseEnviron(environ []string) Snapshot {
	result := Snapshot{}
	for _, kv := range environ {
		if strings.HasPrefix(kv, "=") {
			continue
		}
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		result[key] = value
	}
	return result
}
