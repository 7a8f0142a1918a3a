package cmdtree

import (
	"context"

	"github.com/ActiveState/rtscope/internal/captain"
	"github.com/ActiveState/rtscope/internal/constants"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/internal/primer"
	"github.com/ActiveState/rtscope/internal/runbits/selection"
)

// CmdTree manages a tree of captain.Command instances.
type CmdTree struct {
	cmd *captain.Command
}

// New prepares a CmdTree.
func New(prime *primer.Values) *CmdTree {
	globals := newGlobalOptions()

	rtscopeCmd := newRtscopeCommand(globals)
	rtscopeCmd.AddChildren(
		newSelectCommand(prime, globals),
		newListCommand(prime, globals),
		newRunCommand(prime, globals),
		newEnvCommand(prime, globals),
	)

	return &CmdTree{
		cmd: rtscopeCmd,
	}
}

type globalOptions struct {
	ProjectFile string
	Prefix      string
	Majors      captain.IntListFlag
	With        []string
	Without     []string
	LockFile    string
	Output      string
	NoColor     bool
	Verbose     bool
	Debug       bool
}

func newGlobalOptions() *globalOptions {
	return &globalOptions{}
}

// params returns the selection params the global flags describe
func (g *globalOptions) params() *selection.Params {
	return &selection.Params{
		ProjectFile: g.ProjectFile,
		Prefix:      g.Prefix,
		Majors:      []int(g.Majors),
		With:        g.With,
		Without:     g.Without,
		LockFile:    g.LockFile,
	}
}

func newRtscopeCommand(globals *globalOptions) *captain.Command {
	return captain.NewCommand(
		constants.CommandName,
		locale.Tl("rtscope_description", "Selects the language runtimes a build runs against and runs commands in an environment scoped to each of them."),
		[]*captain.Flag{
			{
				Name:        "file",
				Shorthand:   "f",
				Description: locale.Tl("flag_file_description", "Project file declaring the runtimes, defaults to {{.V0}} in the working directory", constants.ConfigFileName),
				Persist:     true,
				Value:       &globals.ProjectFile,
			},
			{
				Name:        "prefix",
				Description: locale.Tl("flag_prefix_description", "Installation prefix that site packages directories are created under"),
				Persist:     true,
				Value:       &globals.Prefix,
			},
			{
				Name:        "major",
				Description: locale.Tl("flag_major_description", "Allowed major version, can be repeated or comma separated (default 2,3)"),
				Persist:     true,
				Value:       &globals.Majors,
			},
			{
				Name:        "with",
				Description: locale.Tl("flag_with_description", "Include the given optional runtime"),
				Persist:     true,
				Value:       &globals.With,
			},
			{
				Name:        "without",
				Description: locale.Tl("flag_without_description", "Exclude the given recommended runtime"),
				Persist:     true,
				Value:       &globals.Without,
			},
			{
				Name:        "lock",
				Description: locale.Tl("flag_lock_description", "Lock file that serializes scoped runs across processes"),
				Persist:     true,
				Value:       &globals.LockFile,
			},
			{
				Name:        "output", // Name and Shorthand should be kept in sync with cmd/rtscope/main.go
				Shorthand:   "o",
				Description: locale.Tl("flag_output_description", "Output format: plain or json"),
				Persist:     true,
				Value:       &globals.Output,
			},
			{
				Name:        "no-color", // Should be kept in sync with cmd/rtscope/main.go
				Description: locale.Tl("flag_no_color_description", "Disable colored output"),
				Persist:     true,
				Value:       &globals.NoColor,
			},
			{
				Name:        "verbose",
				Shorthand:   "v",
				Description: locale.Tl("flag_verbose_description", "Verbose output"),
				Persist:     true,
				Value:       &globals.Verbose,
				OnUse: func() error {
					if logging.Level()&logging.DEBUG == 0 {
						logging.SetMinimalLevel(logging.INFO)
					}
					return nil
				},
			},
			{
				Name:        "debug",
				Shorthand:   "d",
				Description: locale.Tl("flag_debug_description", "Debug output"),
				Persist:     true,
				Value:       &globals.Debug,
				OnUse: func() error {
					logging.SetMinimalLevel(logging.DEBUG)
					return nil
				},
			},
		},
		nil,
		func(ccmd *captain.Command, args []string) error {
			return ccmd.Usage()
		},
	)
}

// Execute runs the command tree with the given args, excluding the program name
func (ct *CmdTree) Execute(ctx context.Context, args []string) error {
	return ct.cmd.Execute(ctx, args)
}

// Command returns the root command of the tree
func (ct *CmdTree) Command() *captain.Command {
	return ct.cmd
}
