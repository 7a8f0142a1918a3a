package cmdtree

import (
	"github.com/ActiveState/rtscope/internal/captain"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/primer"
	"github.com/ActiveState/rtscope/internal/runners/slct"
)

func newSelectCommand(prime *primer.Values, globals *globalOptions) *captain.Command {
	runner := slct.New(prime)

	return captain.NewCommand(
		"select",
		locale.Tl("select_description", "Print the runtime a build would use. That is the eligible runtime with the lowest version."),
		nil,
		nil,
		func(ccmd *captain.Command, args []string) error {
			return runner.Run(ccmd.Context(), globals.params())
		},
	)
}
