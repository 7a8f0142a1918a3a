package env

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ActiveState/rtscope/internal/constants"
	"github.com/ActiveState/rtscope/internal/envstore"
	"github.com/ActiveState/rtscope/internal/output"
	"github.com/ActiveState/rtscope/internal/primer"
	"github.com/ActiveState/rtscope/internal/runbits/selection"
)

const fakeInterpreter = `#!/bin/sh
if [ "$1" = "--version" ]; then
	echo "Python %s"
	exit 0
fi
exit 1
`

func writeInterpreter(t *testing.T, dir, name, version string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(fakeInterpreter, version)), 0755))
	return path
}

type envResult struct {
	Runtime struct {
		Binary string `json:"binary"`
	} `json:"runtime"`
	Env map[string]string `json:"env"`
}

func TestEnvLeavesStoreUntouched(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("Fake interpreters are shell scripts")
	}

	dir := t.TempDir()
	prefix := filepath.Join(dir, "prefix")
	py27 := writeInterpreter(t, dir, "python2.7", "2.7.18")
	py36 := writeInterpreter(t, dir, "python3.6", "3.6.15")

	project := filepath.Join(dir, constants.ConfigFileName)
	require.NoError(t, os.WriteFile(project, []byte(fmt.Sprintf(`
prefix: %s
runtimes:
  - name: python3
    binary: %s
    include_dir: /fake/include
  - name: python
    binary: %s
    include_dir: /fake/include
`, prefix, py36, py27)), 0644))

	processPython, processPythonSet := os.LookupEnv(constants.BinaryEnvVarName)

	store := envstore.NewMemory(envstore.Snapshot{
		constants.ModulePathEnvVarName: "/existing",
		constants.ExecPathEnvVarName:   "/usr/bin",
	})
	before := store.Snapshot()

	outWriter := &bytes.Buffer{}
	out, err := output.New(string(output.JSONFormatName), &output.Config{OutWriter: outWriter, ErrWriter: &bytes.Buffer{}})
	require.NoError(t, err)

	runner := New(primer.New(out, store))
	require.NoError(t, runner.Run(context.Background(), &selection.Params{ProjectFile: project}))

	assert.Equal(t, before, store.Snapshot(), "The primed store is not mutated")
	python, pythonSet := os.LookupEnv(constants.BinaryEnvVarName)
	assert.Equal(t, processPythonSet, pythonSet, "The process environment is not mutated")
	assert.Equal(t, processPython, python)

	var results []envResult
	require.NoError(t, json.Unmarshal(outWriter.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, py27, results[0].Runtime.Binary, "Lowest version comes first")
	assert.Equal(t, py36, results[1].Runtime.Binary)

	env := results[0].Env
	assert.Equal(t, py27, env[constants.BinaryEnvVarName])
	assert.Equal(t, "/existing", filepath.SplitList(env[constants.ModulePathEnvVarName])[0], "Site packages are appended")
	assert.Contains(t, env[constants.ModulePathEnvVarName], filepath.Join(prefix, "lib", "python2.7", "site-packages"))
	assert.Equal(t, dir, filepath.SplitList(env[constants.ExecPathEnvVarName])[0], "The interpreter dir is prepended to the exec path")
}
