package captain

import (
	"strings"

	"github.com/ActiveState/rtscope/internal/locale"
)

// setupSensibleErrors inspects an error value for certain errors and returns a
// wrapped error that can be checked and that is localized.
func setupSensibleErrors(err error) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	// pflag: flag.go: output being parsed:
	// fmt.Errorf("invalid argument %q for %q flag: %v", value, flagName, err)
	invalidArg := "invalid argument "
	if strings.Contains(errMsg, invalidArg) {
		segments := strings.SplitN(errMsg, ": ", 2)

		flagText := "{unknown flag}"
		msg := "unknown error"

		if len(segments) > 0 {
			subsegs := strings.SplitN(segments[0], "for ", 2)
			if len(subsegs) > 1 {
				flagText = strings.TrimSuffix(subsegs[1], " flag")
			}
		}

		if len(segments) > 1 {
			msg = segments[1]
		}

		return locale.WrapInputError(err, "command_flag_invalid_value", "Invalid value for {{.V0}} flag: {{.V1}}", flagText, msg)
	}

	// pflag: flag.go: output being parsed:
	// fmt.Errorf("unknown flag: --%s", name)
	unknownFlag := "unknown flag: "
	if strings.Contains(errMsg, unknownFlag) {
		flagText := strings.TrimPrefix(errMsg, unknownFlag)
		return locale.WrapInputError(err, "command_flag_no_such_flag", "No such flag: {{.V0}}", flagText)
	}

	// cobra: command.go: output being parsed:
	// fmt.Errorf("unknown command %q for %q%s", arg, cmd.CommandPath(), suggestionsString)
	if strings.HasPrefix(errMsg, "unknown command ") {
		return locale.WrapInputError(err, "command_unknown", "{{.V0}}", errMsg)
	}

	return err
}
