package output

import (
	"bytes"
	"encoding/json"

	"github.com/ActiveState/rtscope/internal/locale"
	"github.com/ActiveState/rtscope/internal/logging"
)

// JSON writes machine readable output
type JSON struct {
	cfg *Config
}

// NewJSON returns a json outputer
func NewJSON(config *Config) JSON {
	return JSON{config}
}

// Print writes value as json to the out writer
func (f *JSON) Print(value interface{}) {
	if err, ok := value.(error); ok {
		value = err.Error()
	}
	b, err := marshal(value)
	if err != nil {
		logging.Error("Could not marshal value, error: %v", err)
		f.Error(locale.Tl("err_could_not_marshal_print", "Could not marshal output."))
		return
	}
	f.write(b)
}

// Error writes value as a json error object to the error writer
func (f *JSON) Error(value interface{}) {
	if err, ok := value.(error); ok {
		value = locale.JoinedErrorMessage(err)
	}
	errStruct := struct {
		Error interface{} `json:"error"`
	}{value}
	b, err := marshal(errStruct)
	if err != nil {
		logging.Error("Could not marshal value, error: %v", err)
		b = []byte(locale.Tl("err_could_not_marshal_print", "Could not marshal output."))
	}
	f.cfg.ErrWriter.Write(append(b, '\n'))
}

// Notice is a no-op, notices are not machine readable
func (f *JSON) Notice(value interface{}) {
	logging.Debug("Omitting notice from json output: %v", value)
}

// Type tells callers what type of outputer we are
func (f *JSON) Type() Format {
	return JSONFormatName
}

// Config returns the Config struct for the active instance
func (f *JSON) Config() *Config {
	return f.cfg
}

func (f *JSON) write(b []byte) {
	if _, err := f.cfg.OutWriter.Write(append(b, '\n')); err != nil {
		logging.Warning("Could not write output: %v", err)
	}
}

// marshal encodes value without escaping html characters, these show up in command usage
func marshal(value interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
