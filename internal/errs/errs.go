package errs

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/ActiveState/rtscope/internal/osutils/stacktrace"
)

// Error enforces errors that include a stacktrace
type Error interface {
	Unwrap() error
	Stack() *stacktrace.Stacktrace
}

// WrappedErr is what we use for errors created from this package, this does not mean every error returned from this
// package is wrapping something, it simply has the plumbing to.
type WrappedErr struct {
	msg     string
	wrapped error
	stack   *stacktrace.Stacktrace
}

// Error returns the error message
func (e *WrappedErr) Error() string {
	return e.msg
}

// Unwrap returns the parent error, if one exists
func (e *WrappedErr) Unwrap() error {
	return e.wrapped
}

// Stack returns the stacktrace for where this error was created
func (e *WrappedErr) Stack() *stacktrace.Stacktrace {
	return e.stack
}

func newError(err string, wrapTarget error) error {
	return &WrappedErr{
		err,
		wrapTarget,
		stacktrace.GetWithSkip([]string{currentFile()}),
	}
}

// New creates a new error, similar to errors.New
func New(message string, args ...interface{}) error {
	return newError(fmt.Sprintf(message, args...), nil)
}

// Wrap creates a new error that wraps the given error
func Wrap(wrapTarget error, message string, args ...interface{}) error {
	return newError(fmt.Sprintf(message, args...), wrapTarget)
}

// Join all error messages in the Unwrap stack
func Join(err error, sep string) error {
	var message []string
	for err != nil {
		message = append(message, err.Error())
		err = errors.Unwrap(err)
	}
	return Wrap(err, "%s", strings.Join(message, sep))
}

// PackedErrors represents multiple errors that occurred at the same level, eg. a failure and the cleanup that
// followed it.
type PackedErrors struct {
	errors []error
}

func (e *PackedErrors) Error() string {
	msgs := make([]string, 0, len(e.errors))
	for _, err := range e.errors {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes all packed errors, so errors.Is and errors.As consider each of them
func (e *PackedErrors) Unwrap() []error {
	return e.errors
}

// Pack combines the given errors, nil errors are dropped. If only one error remains it is returned as is.
func Pack(err error, errs ...error) error {
	result := []error{}
	for _, e := range append([]error{err}, errs...) {
		if e != nil {
			result = append(result, e)
		}
	}
	switch len(result) {
	case 0:
		return nil
	case 1:
		return result[0]
	}
	return &PackedErrors{result}
}

// Unpack returns the error chain flattened, including errors held by PackedErrors
func Unpack(err error) []error {
	result := []error{}
	for err != nil {
		result = append(result, err)
		if packed, ok := err.(*PackedErrors); ok {
			for _, e := range packed.errors {
				result = append(result, Unpack(e)...)
			}
			break
		}
		err = errors.Unwrap(err)
	}
	return result
}

// Matches is an analog for errors.As that just checks whether err matches the given type, so you can do:
// errs.Matches(err, &ErrStruct{})
// Without having to first assign it to a variable
func Matches(err error, target interface{}) bool {
	if target == nil {
		panic("target cannot be nil")
	}

	val := reflect.ValueOf(target)
	targetType := val.Type()
	if targetType.Kind() != reflect.Interface && targetType.Kind() != reflect.Ptr {
		panic("target must be interface or ptr")
	}

	for _, candidate := range Unpack(err) {
		if reflect.TypeOf(candidate).AssignableTo(targetType) {
			return true
		}
		if reflect.TypeOf(candidate).AssignableTo(targetType.Elem()) {
			return true
		}
	}
	return false
}

// currentFile returns the path of this file, so its frames can be dropped from stacktraces
func currentFile() string {
	_, file, _, _ := runtime.Caller(0)
	return file
}
