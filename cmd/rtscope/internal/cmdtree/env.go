package cmdtree

import (
	"github.com/ActiveState/rtscope/internal/captain"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/primer"
	"github.com/ActiveState/rtscope/internal/runners/env"
)

func newEnvCommand(prime *primer.Values, globals *globalOptions) *captain.Command {
	runner := env.New(prime)

	return captain.NewCommand(
		"env",
		locale.Tl("env_description", "Print the environment variables a scoped run sets for every eligible runtime."),
		nil,
		nil,
		func(ccmd *captain.Command, args []string) error {
			return runner.Run(ccmd.Context(), globals.params())
		},
	)
}
