package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/ActiveState/rtscope/internal/logging"
)

// Plain writes human readable output
type Plain struct {
	cfg *Config
}

// NewPlain returns a plain outputer
func NewPlain(config *Config) Plain {
	return Plain{config}
}

// Print writes value to the out writer
func (f *Plain) Print(value interface{}) {
	f.write(f.cfg.OutWriter, value)
}

// Error writes value to the error writer, in red
func (f *Plain) Error(value interface{}) {
	f.write(f.cfg.ErrWriter, fmt.Sprintf("[RED]%s[/RESET]", f.sprint(value)))
}

// Notice writes value to the error writer
func (f *Plain) Notice(value interface{}) {
	f.write(f.cfg.ErrWriter, value)
}

// Type tells callers what type of outputer we are
func (f *Plain) Type() Format {
	return PlainFormatName
}

// Config returns the Config struct for the active instance
func (f *Plain) Config() *Config {
	return f.cfg
}

func (f *Plain) sprint(value interface{}) string {
	v, err := sprint(value)
	if err != nil {
		logging.Errorf("Could not sprint value: %v, error: %v", value, err)
		return fmt.Sprintf("%v", value)
	}
	return v
}

func (f *Plain) write(writer io.Writer, value interface{}) {
	if err := writeColorized(f.sprint(value)+"\n", writer, !f.cfg.Colored); err != nil {
		logging.Warning("Could not write output: %v", err)
	}
}

func sprint(value interface{}) (string, error) {
	if value == nil {
		return "", nil
	}
	if err, ok := value.(error); ok {
		return err.Error(), nil
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String(), nil
	}

	valueRfl := reflect.ValueOf(value)
	switch valueRfl.Kind() {
	case reflect.Ptr:
		if valueRfl.IsNil() {
			return "", nil
		}
		return sprint(valueRfl.Elem().Interface())
	case reflect.Struct:
		return sprintStruct(value)
	case reflect.Slice:
		return sprintSlice(value)
	case reflect.Map:
		return sprintMap(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", value), nil
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", valueRfl.Float()), nil
	case reflect.Bool:
		return fmt.Sprintf("%t", valueRfl.Bool()), nil
	case reflect.String:
		return valueRfl.String(), nil
	}

	return "", fmt.Errorf("unknown type: %s", valueRfl.Type().String())
}

func sprintStruct(value interface{}) (string, error) {
	structMeta, err := parseStructMeta(value)
	if err != nil {
		return "", err
	}
	result := []string{}
	for i, value := range structMeta.values {
		stringValue, err := sprint(value)
		if err != nil {
			return "", err
		}

		result = append(result, fmt.Sprintf("%s: %s", structMeta.serializedFields[i], stringValue))
	}
	return strings.Join(result, "\n"), nil
}

func sprintSlice(value interface{}) (string, error) {
	slice, err := parseSlice(value)
	if err != nil {
		return "", err
	}

	result := []string{}
	for _, v := range slice {
		stringValue, err := sprint(v)
		if err != nil {
			return "", err
		}

		result = append(result, stringValue)
	}

	return "\n - " + strings.Join(result, "\n - "), nil
}

func sprintMap(value interface{}) (string, error) {
	keys, values, err := parseMap(value)
	if err != nil {
		return "", err
	}

	result := []string{}
	for i, k := range keys {
		stringValue, err := sprint(values[i])
		if err != nil {
			return "", err
		}
		result = append(result, fmt.Sprintf("%s=%s", k, stringValue))
	}
	return strings.Join(result, "\n"), nil
}
