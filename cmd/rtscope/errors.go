package main

import (
	"errors"
	"strings"

	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
)

type errorTipper interface {
	ErrorTips() []string
}

// unwrapError returns the exit code err calls for, along with the message to show the user, if any
func unwrapError(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	stack := "not provided"
	var ee errs.Error
	if errors.As(err, &ee) {
		stack = ee.Stack().String()
	}

	if !locale.IsInputError(err) {
		logging.Debug("Returning error:\n%s\nCreated at:\n%s", errs.Join(err, "\n").Error(), stack)
	}

	// unwrap exit code before we remove un-localized wrapped errors from err variable
	code := errs.UnwrapExitCode(err)

	if errs.IsSilent(err) {
		logging.Debug("Suppressing silent failure: %v", err.Error())
		return code, nil
	}

	var message string
	var uerr errs.UserFacingError
	switch {
	case errors.As(err, &uerr):
		message = uerr.UserError()
	case locale.HasError(err):
		message = locale.JoinedErrorMessage(err)
	default:
		message = err.Error()
	}

	var tips []string
	for _, e := range errs.Unpack(err) {
		if tipper, ok := e.(errorTipper); ok {
			tips = append(tips, tipper.ErrorTips()...)
		}
	}
	if len(tips) > 0 {
		message += "\n\n" + locale.Tl("err_tips_heading", "Tips:") + "\n - " + strings.Join(tips, "\n - ")
	}

	return code, errors.New(message)
}
