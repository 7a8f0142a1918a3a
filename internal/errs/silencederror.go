package errs

import (
	"errors"
)

type silencedError struct {
	error
}

// Silence marks an error as already communicated to the user
func Silence(err error) *silencedError {
	return &silencedError{err}
}

func (s *silencedError) Unwrap() error { return s.error }

func (s *silencedError) IsSilent() bool { return true }

func IsSilent(err error) bool {
	var silentErr interface {
		IsSilent() bool
	}
	return errors.As(err, &silentErr) && silentErr.IsSilent()
}
