package slct

import (
	"context"

	"github.com/ActiveState/rtscope/internal/envstore"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/internal/output"
	"github.com/ActiveState/rtscope/internal/primer"
	"github.com/ActiveState/rtscope/internal/runbits/selection"
)

type primeable interface {
	primer.Outputer
	primer.Enver
}

// Select prints the runtime a build would use
type Select struct {
	out output.Outputer
	env envstore.Store
}

func New(prime primeable) *Select {
	return &Select{prime.Output(), prime.Env()}
}

func (s *Select) Run(ctx context.Context, params *selection.Params) (rerr error) {
	defer selection.RationalizeError(&rerr)
	logging.Debug("Execute select")

	sel, err := selection.New(*params, s.env)
	if err != nil {
		return err
	}

	rt, err := sel.Selector.Select(ctx, sel.Options)
	if err != nil {
		return err
	}

	if rt == nil {
		s.out.Notice(locale.Tl("notice_no_eligible_runtime", "No eligible runtime found."))
		if s.out.Type() != output.PlainFormatName {
			s.out.Print(nil)
		}
		return nil
	}

	s.out.Print(selection.NewRuntimeOutput(rt))
	return nil
}
