package env

import (
	"context"

	"github.com/ActiveState/rtscope/internal/envstore"
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

// Env prints the variables a scoped run would set for every eligible runtime, without touching the environment
type Env struct {
	out output.Outputer
	env envstore.Store
}

func New(prime primeable) *Env {
	return &Env{prime.Output(), prime.Env()}
}

func (e *Env) Run(ctx context.Context, params *selection.Params) (rerr error) {
	defer selection.RationalizeError(&rerr)
	logging.Debug("Execute env")

	base := e.env.Snapshot()
	scratch := envstore.NewMemory(base)

	sel, err := selection.New(*params, scratch)
	if err != nil {
		return err
	}

	envs := selection.EnvsOutput{}
	_, err = sel.Selector.Run(ctx, sel.Options, func(ctx context.Context) (interface{}, error) {
		envs = append(envs, &selection.EnvOutput{
			Runtime: selection.NewRuntimeOutput(runtime.Active(ctx)),
			Env:     scratch.Snapshot().Diff(base),
		})
		return nil, nil
	})
	if err != nil {
		return err
	}

	if len(envs) == 0 && e.out.Type() == output.PlainFormatName {
		e.out.Notice(locale.Tl("notice_no_eligible_runtime", "No eligible runtime found."))
		return nil
	}

	e.out.Print(envs)
	return nil
}
