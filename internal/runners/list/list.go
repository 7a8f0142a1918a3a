package list

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

// List prints every eligible runtime in the order builds would process them in
type List struct {
	out output.Outputer
	env envstore.Store
}

func New(prime primeable) *List {
	return &List{prime.Output(), prime.Env()}
}

func (l *List) Run(ctx context.Context, params *selection.Params) (rerr error) {
	defer selection.RationalizeError(&rerr)
	logging.Debug("Execute list")

	sel, err := selection.New(*params, l.env)
	if err != nil {
		return err
	}

	candidates, err := sel.Selector.Candidates(ctx, sel.Options)
	if err != nil {
		return err
	}

	if len(candidates) == 0 && l.out.Type() == output.PlainFormatName {
		l.out.Notice(locale.Tl("notice_no_eligible_runtime", "No eligible runtime found."))
		return nil
	}

	l.out.Print(selection.NewRuntimesOutput(candidates))
	return nil
}
