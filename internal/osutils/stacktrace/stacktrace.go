package stacktrace

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// maxDepth is the deepest call chain we record
const maxDepth = 32

// Stacktrace represents a stacktrace
type Stacktrace struct {
	Frames []Frame
}

// Frame is a single frame in a stacktrace
type Frame struct {
	Func    string
	Source  string
	Line    int
	Path    string
	Package string
}

// String returns a string representation of a stacktrace
func (t *Stacktrace) String() string {
	result := []string{}
	for _, frame := range t.Frames {
		result = append(result, fmt.Sprintf(`%s:%s:%d`, frame.Path, frame.Func, frame.Line))
	}
	return strings.Join(result, "\n")
}

// Get returns a stacktrace starting at the caller
func Get() *Stacktrace {
	return GetWithSkip([]string{})
}

// GetWithSkip returns a stacktrace, omitting any frames originating from the given files
func GetWithSkip(skipFiles []string) *Stacktrace {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	_, self, _, _ := runtime.Caller(0)
	skip := append([]string{self}, skipFiles...)

	stacktrace := &Stacktrace{}
	for {
		frame, more := frames.Next()
		if !skipped(frame.File, skip) {
			pkg, fn := splitFunc(frame.Function)
			stacktrace.Frames = append(stacktrace.Frames, Frame{
				Func:    fn,
				Source:  filepath.Base(frame.File),
				Line:    frame.Line,
				Path:    frame.File,
				Package: pkg,
			})
		}
		if !more {
			break
		}
	}

	return stacktrace
}

func skipped(file string, skip []string) bool {
	for _, s := range skip {
		if s != "" && file == s {
			return true
		}
	}
	return false
}

// splitFunc splits a fully qualified function name into its package and function name
func splitFunc(name string) (string, string) {
	lastSlash := strings.LastIndex(name, "/")
	dot := strings.Index(name[lastSlash+1:], ".")
	if dot < 0 {
		return "", name
	}
	dot += lastSlash + 1
	return name[:dot], name[dot+1:]
}
