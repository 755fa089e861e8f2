package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommandFromStdin(t *testing.T) {
	input := "Here is your survey:\n```json\n" +
		`{"questions":[{"text":"Tea?","options":["yes","no"]},{"text":"bad","options":["only"]}]}` +
		"\n```"

	out, err := execute(t, input, "parse", "-")
	require.NoError(t, err)
	assert.Equal(t, "1) Tea?\n   1. yes\n   2. no\n", out)
}

func TestParseCommandNothingUsable(t *testing.T) {
	out, err := execute(t, "no json here", "parse")
	assert.Error(t, err)
	assert.Contains(t, out, "no candidate block found")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
presets:
  - name: lunch
    questions:
      - text: Where?
        options: [pizza, sushi]
`), 0o600))

	out, err := execute(t, "", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ lunch (1 questions)")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
presets:
  - name: empty
    questions: []
`), 0o600))

	out, err = execute(t, "", "validate", bad)
	assert.ErrorContains(t, err, "1 invalid preset(s)")
	assert.Contains(t, out, "✗ empty")
}
