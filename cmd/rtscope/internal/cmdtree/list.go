package cmdtree

import (
	"github.com/ActiveState/rtscope/internal/captain"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/primer"
	"github.com/ActiveState/rtscope/internal/runners/list"
)

func newListCommand(prime *primer.Values, globals *globalOptions) *captain.Command {
	runner := list.New(prime)

	cmd := captain.NewCommand(
		"list",
		locale.Tl("list_description", "List every eligible runtime in the order builds process them in."),
		nil,
		nil,
		func(ccmd *captain.Command, args []string) error {
			return runner.Run(ccmd.Context(), globals.params())
		},
	)
	cmd.SetAliases("ls")
	return cmd
}
