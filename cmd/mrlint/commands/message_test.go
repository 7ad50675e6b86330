package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/mrlint/cmd/mrlint/internal/clierr"
)

func TestMessage_Valid(t *testing.T) {
	out, _, err := execute(t, nil, "message", "--color", "never", "-m", "feat(mr): add squash flag")
	require.NoError(t, err)
	assert.Equal(t, "✔   found 0 problems, 0 warnings\n", out)
}

func TestMessage_ViolationFromStdin(t *testing.T) {
	out, _, err := execute(t, strings.NewReader("Add squash flag\n"), "message", "--color", "never")
	require.Error(t, err)
	assert.True(t, clierr.IsSilent(err))
	assert.Equal(t, clierr.LintViolation, clierr.KindOf(err))
	assert.Equal(t, 1, clierr.ExitCodeOf(err))

	assert.Contains(t, out, "⧗   input: Add squash flag")
	assert.Contains(t, out, "[subject-empty]")
	assert.Contains(t, out, "[type-empty]")
	assert.Contains(t, out, "ⓘ   Get help:")
}

func TestMessage_FileStripsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	content := "fix: handle empty title\n\n# Please enter the commit message for your changes.\n" +
		"# ------------------------ >8 ------------------------\ndiff --git a/x b/x\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, _, err := execute(t, nil, "message", "--color", "never", path)
	require.NoError(t, err)
}

func TestMessage_IgnoredRevert(t *testing.T) {
	out, _, err := execute(t, nil, "message", "--color", "never", "--verbose", "-m", `Revert "feat: add login"`)
	require.NoError(t, err)
	assert.Contains(t, out, "-   ignored")
}

func TestMessage_StrictWarnings(t *testing.T) {
	msg := "feat: add login\n\n" + strings.Repeat("x", 120)

	_, _, err := execute(t, nil, "message", "--color", "never", "-m", msg)
	require.NoError(t, err)

	_, _, err = execute(t, nil, "message", "--color", "never", "--strict", "-m", msg)
	require.Error(t, err)
	assert.Equal(t, clierr.LintViolation, clierr.KindOf(err))
}

func TestMessage_HeaderMaxLength72(t *testing.T) {
	msg := "feat: " + strings.Repeat("a", 80)

	_, _, err := execute(t, nil, "message", "--color", "never", "-m", msg)
	require.NoError(t, err)

	out, _, err := execute(t, nil, "message", "--color", "never", "--header-max-length", "72", "-m", msg)
	require.Error(t, err)
	assert.Contains(t, out, "[header-max-length]")

	_, _, err = execute(t, nil, "message", "--header-max-length", "80", "-m", msg)
	require.Error(t, err)
	assert.Equal(t, clierr.InvalidContext, clierr.KindOf(err))
}

func TestMessage_JSONAndReportFile(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "reports", "mrlint.json")
	out, _, err := execute(t, nil, "message", "--format", "json", "--report-file", reportPath, "-m", "feat: Done.")
	require.Error(t, err)

	var doc struct {
		Valid      bool `json:"valid"`
		ErrorCount int  `json:"errorCount"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.False(t, doc.Valid)
	assert.Equal(t, 1, doc.ErrorCount)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.JSONEq(t, out, string(data))
}

func TestMessage_Errors(t *testing.T) {
	_, _, err := execute(t, nil, "message", "-m", "feat: x", "file.txt")
	require.Error(t, err)
	assert.Equal(t, clierr.InvalidContext, clierr.KindOf(err))
	assert.NotEmpty(t, clierr.HintOf(err))

	_, _, err = execute(t, nil, "message", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, clierr.InvalidContext, clierr.KindOf(err))
}
