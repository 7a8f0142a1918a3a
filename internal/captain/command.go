package captain

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
)

type Executor func(cmd *Command, args []string) error

type Command struct {
	cobra  *cobra.Command
	parent *Command

	flags     []*Flag
	arguments []*Argument

	execute Executor
}

func NewCommand(name, description string, flags []*Flag, args []*Argument, executor Executor) *Command {
	// Validate args
	for idx, arg := range args {
		if idx > 0 && arg.Required && !args[idx-1].Required {
			msg := fmt.Sprintf(
				"Cannot have a non-required argument followed by a required argument.\n\n%v\n\n%v",
				arg, args[len(args)-1],
			)
			panic(msg)
		}
	}

	cmd := &Command{
		execute:   executor,
		arguments: args,
		flags:     flags,
	}

	short := description
	if idx := strings.IndexByte(description, '.'); idx > 0 {
		short = description[0:idx]
	}

	cmd.cobra = &cobra.Command{
		Use:               name,
		Short:             short,
		Long:              description,
		PersistentPreRunE: cmd.persistRunner,
		RunE:              cmd.runner,

		// Silence errors and usage, we handle that ourselves
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	if err := cmd.setFlags(flags); err != nil {
		panic(err)
	}

	return cmd
}

func (c *Command) Use() string {
	return c.cobra.Use
}

func (c *Command) Usage() error {
	return c.cobra.Usage()
}

// Context returns the context the command is executing with
func (c *Command) Context() context.Context {
	if ctx := c.cobra.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute parses args and runs the matching command
func (c *Command) Execute(ctx context.Context, args []string) error {
	c.cobra.SetArgs(args)
	err := c.cobra.ExecuteContext(ctx)
	c.cobra.SetArgs(nil)
	return setupSensibleErrors(err)
}

func (c *Command) SetAliases(aliases ...string) {
	c.cobra.Aliases = aliases
}

func (c *Command) AddChildren(children ...*Command) {
	for _, child := range children {
		child.parent = c
		c.cobra.AddCommand(child.cobra)
	}
}

func (c *Command) setFlags(flags []*Flag) error {
	for _, flag := range flags {
		flagSetter := c.cobra.Flags
		if flag.Persist {
			flagSetter = c.cobra.PersistentFlags
		}

		switch v := flag.Value.(type) {
		case *string:
			flagSetter().StringVarP(v, flag.Name, flag.Shorthand, *v, flag.Description)
		case *int:
			flagSetter().IntVarP(v, flag.Name, flag.Shorthand, *v, flag.Description)
		case *bool:
			flagSetter().BoolVarP(v, flag.Name, flag.Shorthand, *v, flag.Description)
		case *[]string:
			flagSetter().StringSliceVarP(v, flag.Name, flag.Shorthand, *v, flag.Description)
		case *[]int:
			flagSetter().IntSliceVarP(v, flag.Name, flag.Shorthand, *v, flag.Description)
		case FlagMarshaler:
			flagSetter().VarP(v, flag.Name, flag.Shorthand, flag.Description)
		default:
			return errs.New("Unknown type for flag %s: %T", flag.Name, v)
		}

		if flag.Hidden {
			if err := flagSetter().MarkHidden(flag.Name); err != nil {
				return errs.Wrap(err, "Could not hide flag %s", flag.Name)
			}
		}
	}

	return nil
}

func (c *Command) flagByName(name string, persistOnly bool) *Flag {
	for _, flag := range c.flags {
		if flag.Name == name && (!persistOnly || flag.Persist) {
			return flag
		}
	}
	return nil
}

func (c *Command) persistRunner(cobraCmd *cobra.Command, args []string) error {
	// Persistent flags are defined on the root, which is where their OnUse functions live
	root := c
	for root.parent != nil {
		root = root.parent
	}
	return root.runFlags(cobraCmd.Flags(), true)
}

func (c *Command) runner(cobraCmd *cobra.Command, args []string) error {
	// Run OnUse functions for non-persistent flags
	if err := c.runFlags(cobraCmd.Flags(), false); err != nil {
		return err
	}

	for idx, arg := range c.arguments {
		if arg.Required && idx > len(args)-1 {
			return locale.NewInputError("err_arg_required", "The following argument is required:\n  Name: {{.V0}}\n  Description: {{.V1}}", arg.Name, arg.Description)
		}

		if idx >= len(args) {
			break
		}

		switch v := arg.Value.(type) {
		case *string:
			*v = args[idx]
		case ArgMarshaler:
			if err := v.Set(args[idx]); err != nil {
				return err
			}
		default:
			return errs.New("arg: %s must be *string, or ArgMarshaler", arg.Name)
		}
	}

	logging.Debug("Executing command: %s", cobraCmd.CommandPath())
	return c.execute(c, args)
}

func (c *Command) runFlags(flagSet *pflag.FlagSet, persistOnly bool) error {
	var rerr error
	flagSet.VisitAll(func(cobraFlag *pflag.Flag) {
		if rerr != nil || !cobraFlag.Changed {
			return
		}

		flag := c.flagByName(cobraFlag.Name, persistOnly)
		if flag == nil || flag.OnUse == nil {
			return
		}

		rerr = flag.OnUse()
	})
	return rerr
}
