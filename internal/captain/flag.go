package captain

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ActiveState/rtscope/internal/locale"
)

// FlagMarshaler is a flag value that parses itself
type FlagMarshaler pflag.Value

// ArgMarshaler is an argument value that parses itself
type ArgMarshaler interface {
	Set(string) error
}

// Flag represents a flag that a command accepts. Value must be a pointer to a string, int, bool, []string or []int,
// or a FlagMarshaler.
type Flag struct {
	Name        string
	Shorthand   string
	Description string
	Persist     bool
	Hidden      bool
	OnUse       func() error

	Value interface{}
}

// Argument represents a positional argument that a command accepts
type Argument struct {
	Name        string
	Description string
	Required    bool
	Value       interface{}
}

// IntListFlag is a list of ints that accepts both repeated flags and comma separated values, eg. --major 2,3
type IntListFlag []int

var _ FlagMarshaler = &IntListFlag{}

func (l *IntListFlag) String() string {
	var result []string
	for _, v := range *l {
		result = append(result, strconv.Itoa(v))
	}
	return strings.Join(result, ",")
}

func (l *IntListFlag) Set(s string) error {
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return locale.WrapInputError(err, "err_invalid_major", "", field)
		}
		*l = append(*l, v)
	}
	return nil
}

func (l *IntListFlag) Type() string {
	return "ints"
}
