package run

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/ActiveState/rtscope/internal/envstore"
	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/internal/output"
	"github.com/ActiveState/rtscope/internal/primer"
	"github.com/ActiveState/rtscope/internal/runbits/selection"
	"github.com/ActiveState/rtscope/pkg/runtime"
)

type primeable interface {
	primer.Outputer
	primer.Enver
}

// Run runs a command once per eligible runtime, each time in an environment scoped to that runtime
type Run struct {
	out output.Outputer
	env envstore.Store
}

type Params struct {
	selection.Params
	Command []string
}

// New constructs a new instance of Run.
func New(prime primeable) *Run {
	return &Run{prime.Output(), prime.Env()}
}

func (r *Run) Run(ctx context.Context, params *Params) (rerr error) {
	defer selection.RationalizeError(&rerr)
	logging.Debug("Execute run: %v", params.Command)

	if len(params.Command) == 0 {
		return locale.NewInputError("err_run_no_command", "")
	}

	sel, err := selection.New(params.Params, r.env, runtime.WithEventHandlers(selection.NewEventHandler(r.out)))
	if err != nil {
		return err
	}

	results, err := sel.Selector.Run(ctx, sel.Options, func(ctx context.Context) (interface{}, error) {
		return r.execute(ctx, params.Command)
	})
	if err != nil {
		return err
	}

	if results == nil {
		r.out.Notice(locale.Tl("notice_no_eligible_runtime", "No eligible runtime found."))
	}
	return nil
}

func (r *Run) execute(ctx context.Context, command []string) (interface{}, error) {
	active := runtime.Active(ctx)

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Env = r.env.Snapshot().Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.out.Config().OutWriter
	cmd.Stderr = r.out.Config().ErrWriter

	logging.Debug("Running %v for %s", command, active.Binary)
	if err := cmd.Run(); err != nil {
		lerr := locale.WrapError(err, "err_run_command", "", strings.Join(command, " "), active.Binary)
		var eerr *exec.ExitError
		if errors.As(err, &eerr) {
			return nil, errs.WrapExitCode(lerr, eerr.ExitCode())
		}
		return nil, lerr
	}

	return cmd.ProcessState.ExitCode(), nil
}
