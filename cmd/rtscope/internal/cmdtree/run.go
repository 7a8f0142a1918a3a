package cmdtree

import (
	"github.com/ActiveState/rtscope/internal/captain"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/primer"
	"github.com/ActiveState/rtscope/internal/runners/run"
)

func newRunCommand(prime *primer.Values, globals *globalOptions) *captain.Command {
	runner := run.New(prime)

	return captain.NewCommand(
		"run",
		locale.Tl("run_description", "Run a command once for every eligible runtime, in an environment scoped to that runtime. Usage: rtscope run -- <command> [args]"),
		nil,
		nil,
		func(ccmd *captain.Command, args []string) error {
			return runner.Run(ccmd.Context(), &run.Params{
				Params:  *globals.params(),
				Command: args,
			})
		},
	)
}
