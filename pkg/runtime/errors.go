package runtime

import (
	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/locale"
)

// ConfigurationError is returned when no runtime requirements are declared at all
type ConfigurationError struct {
	*locale.LocalizedError
}

// ErrScopeBusy is returned when a scoped run is requested while another one is in progress on the same selector,
// outside of its call chain
var ErrScopeBusy = errs.New("scoped run already in progress")

// ScopeBusyError wraps ErrScopeBusy with a localized message
type ScopeBusyError struct {
	*locale.LocalizedError
}

func newScopeBusyError() error {
	return &ScopeBusyError{locale.WrapError(ErrScopeBusy, "err_scope_busy", "Another scoped run is already in progress for this selector.")}
}
