package output

import (
	"io"

	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
)

// Format is the name of an output format
type Format string

// FormatName constants are tokens representing supported output formats.
const (
	PlainFormatName Format = "plain" // human readable
	JSONFormatName  Format = "json"  // plain json
)

// Outputer is the initialized formatter
type Outputer interface {
	Print(value interface{})
	Error(value interface{})
	Notice(value interface{})
	Type() Format
	Config() *Config
}

// New constructs a new Outputer according to the given format name
func New(formatName string, config *Config) (Outputer, error) {
	logging.Debug("Requested outputer for %s", formatName)

	format := Format(formatName)
	switch format {
	case "", PlainFormatName:
		logging.Debug("Using Plain outputer")
		plain := NewPlain(config)
		return &Mediator{&plain, PlainFormatName}, nil
	case JSONFormatName:
		logging.Debug("Using JSON outputer")
		json := NewJSON(config)
		return &Mediator{&json, JSONFormatName}, nil
	}

	return nil, locale.NewInputError("err_invalid_output", "", formatName)
}

// Config is the thing we pass to Outputer constructors
type Config struct {
	OutWriter io.Writer
	ErrWriter io.Writer
	Colored   bool
}
