package commands

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCLIContract(t *testing.T) {
	out, _, err := execute(t, nil, "--help")
	require.NoError(t, err)

	// Top-level commands that are part of the contract
	for _, c := range []string{"check", "message", "rules", "version", "completion", "help"} {
		assert.Contains(t, out, c, "expected top-level command %q in root help", c)
	}
	for _, f := range []string{"--verbose", "--config", "--color"} {
		assert.Contains(t, out, f)
	}
}

func TestCLICommandHelp(t *testing.T) {
	tests := map[string][]string{
		"check":   {"--env-file", "--repo", "--source", "--header-max-length", "--format", "--report-file", "--strict"},
		"message": {"--message", "--header-max-length", "--format", "--strict"},
		"rules":   {"--format", "--header-max-length"},
	}
	for name, flags := range tests {
		t.Run(name, func(t *testing.T) {
			out, _, err := execute(t, nil, name, "--help")
			require.NoError(t, err)
			assert.Contains(t, out, "Usage:")
			for _, f := range flags {
				assert.Contains(t, out, f)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	// The environment has no say in the reported version.
	t.Setenv("MRLINT_VERSION", "v9.9.9")

	prev := version
	t.Cleanup(func() { version = prev })

	version = "v1.4.0"
	out, _, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "mrlint version 1.4.0\n", out)

	version = ""
	out, _, err = execute(t, nil, "version")
	require.NoError(t, err)
	assert.NotContains(t, out, "9.9.9")
}

func TestNormalizeVersion(t *testing.T) {
	assert.Equal(t, "1.2.3", normalizeVersion("v1.2.3"))
	assert.Equal(t, "1.2.3-rc.1", normalizeVersion("1.2.3-rc.1"))
	assert.Equal(t, devVersion, normalizeVersion(""))
	assert.Equal(t, devVersion, normalizeVersion("not-a-version"))
}

func TestUnknownColorMode(t *testing.T) {
	_, _, err := execute(t, nil, "message", "--color", "sometimes", "-m", "feat: ok")
	require.Error(t, err)
}
