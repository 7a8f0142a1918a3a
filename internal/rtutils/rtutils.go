package rtutils

import (
	"runtime"

	"github.com/ActiveState/rtscope/internal/errs"
)

// Returns path of currently running Go file
func CurrentFile() string {
	pc := make([]uintptr, 2)
	n := runtime.Callers(1, pc)
	if n == 0 {
		return ""
	}

	pc = pc[:n]
	frames := runtime.CallersFrames(pc)

	frame, _ := frames.Next()
	frame, _ = frames.Next() // Skip rtutils.go

	return frame.File
}

// Closer is meant to be deferred. It runs the closer and packs its error, if any, in front of the error returned by
// the enclosing function.
//
//	defer rtutils.Closer(f.Close, &rerr)
func Closer(closer func() error, rerr *error) {
	if err := closer(); err != nil {
		*rerr = errs.Pack(err, *rerr)
	}
}
