package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/ActiveState/rtscope/cmd/rtscope/internal/cmdtree"
	"github.com/ActiveState/rtscope/internal/constants"
	"github.com/ActiveState/rtscope/internal/envstore"
	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
	"github.com/ActiveState/rtscope/internal/output"
	"github.com/ActiveState/rtscope/internal/primer"
)

func main() {
	var exitCode int
	defer func() {
		// Handle panics gracefully, and ensure that we exit with non-zero code
		if r := recover(); r != nil {
			logging.Critical("%v - caught panic", r)
			logging.Debug("Panic: %v\n%s", r, string(debug.Stack()))
			exitCode = 1
		}

		logging.Close()
		os.Exit(exitCode)
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	exitCode = run(ctx, os.Args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logging.SetHandler(logging.NewStandardHandler(stderr))
	if err := setupLogging(); err != nil {
		fmt.Fprintln(stderr, locale.JoinedErrorMessage(err))
		return 1
	}

	// Set up our output formatter/writer
	outFlags := parseOutputFlags(args)
	out, err := initOutput(outFlags, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, locale.JoinedErrorMessage(err))
		return 1
	}

	prime := primer.New(out, envstore.NewProcess())
	err = cmdtree.New(prime).Execute(ctx, args[1:])

	exitCode, err := unwrapError(err)
	if err != nil {
		out.Error(err)
	}
	return exitCode
}

// setupLogging applies the log level configured through the environment, flags can raise it later on
func setupLogging() error {
	logging.SetMinimalLevel(logging.WARNING)

	if cast.ToBool(os.Getenv(constants.VerboseEnvVarName)) {
		logging.SetMinimalLevel(logging.INFO)
	}

	if lvl := os.Getenv(constants.LogLevelEnvVarName); lvl != "" {
		if err := logging.SetMinimalLevelByName(lvl); err != nil {
			return locale.WrapInputError(err, "err_log_level", "", lvl)
		}
	}

	return nil
}

type outputFlags struct {
	Output  string
	NoColor bool
}

// parseOutputFlags parses the output flags ahead of the command tree, so errors the tree returns can be rendered
// in the requested format
func parseOutputFlags(args []string) outputFlags {
	flags := outputFlags{}
	if len(args) < 2 {
		return flags
	}

	// Name and Shorthand should be kept in sync with cmd/rtscope/internal/cmdtree/cmdtree.go
	fs := pflag.NewFlagSet("output", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.StringVarP(&flags.Output, "output", "o", "", "")
	fs.BoolVar(&flags.NoColor, "no-color", false, "")

	if err := fs.Parse(args[1:]); err != nil {
		logging.Debug("Could not parse output flag: %s", err.Error())
	}

	return flags
}

func initOutput(flags outputFlags, stdout, stderr io.Writer) (output.Outputer, error) {
	return output.New(flags.Output, &output.Config{
		OutWriter: stdout,
		ErrWriter: stderr,
		Colored:   !flags.NoColor && !color.NoColor && stdout == io.Writer(os.Stdout),
	})
}
