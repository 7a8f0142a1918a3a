package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ActiveState/rtscope/internal/locale"
)

func TestJSON_Print(t *testing.T) {
	type args struct {
		value interface{}
	}
	tests := []struct {
		name        string
		args        args
		expectedOut string
	}{
		{
			"simple string",
			args{"hello"},
			`"hello"`,
		},
		{
			"error string",
			args{errors.New("hello")},
			`"hello"`,
		},
		{
			"struct",
			args{
				struct {
					Field1 string
					Field2 string
					field3 string
				}{
					"value1", "value2", "value3",
				},
			},
			`{"Field1":"value1","Field2":"value2"}`,
		},
		{
			"struct with json tags",
			args{
				struct {
					Field1 string `json:"field_1"`
					Field2 string `json:"-"`
				}{
					"value1", "value2",
				},
			},
			`{"field_1":"value1"}`,
		},
		{
			"html characters",
			args{"rtscope run -- <command> && exit"},
			`"rtscope run -- <command> && exit"`,
		},
		{
			"slice",
			args{[]int{1, 2}},
			`[1,2]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outWriter := &bytes.Buffer{}
			errWriter := &bytes.Buffer{}

			f := NewJSON(&Config{
				OutWriter: outWriter,
				ErrWriter: errWriter,
			})

			f.Print(tt.args.value)
			assert.Equal(t, tt.expectedOut+"\n", outWriter.String(), "Output did not match")
			assert.Empty(t, errWriter.String(), "Error writer should be empty")
		})
	}
}

func TestJSON_Error(t *testing.T) {
	outWriter := &bytes.Buffer{}
	errWriter := &bytes.Buffer{}
	f := NewJSON(&Config{OutWriter: outWriter, ErrWriter: errWriter})

	f.Error(locale.NewError("err_run_no_command", ""))
	f.Notice("ignored")

	assert.Empty(t, outWriter.String())
	assert.Equal(t, `{"error":"No command given, usage: rtscope run -- <command> [args]."}`+"\n", errWriter.String())
	assert.Equal(t, JSONFormatName, f.Type())
}

type marshaller struct{}

func (marshaller) MarshalOutput(f Format) interface{} {
	if f == JSONFormatName {
		return map[string]string{"format": "json"}
	}
	return "plain"
}

func TestNew(t *testing.T) {
	outWriter := &bytes.Buffer{}
	cfg := &Config{OutWriter: outWriter, ErrWriter: &bytes.Buffer{}}

	out, err := New("", cfg)
	require.NoError(t, err)
	assert.Equal(t, PlainFormatName, out.Type())
	out.Print(marshaller{})
	assert.Equal(t, "plain\n", outWriter.String())

	outWriter.Reset()
	out, err = New("json", cfg)
	require.NoError(t, err)
	assert.Equal(t, JSONFormatName, out.Type())
	assert.Equal(t, cfg, out.Config())
	out.Print(marshaller{})
	assert.Equal(t, `{"format":"json"}`+"\n", outWriter.String())

	_, err = New("yaml", cfg)
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
}
