package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/mrlint/internal/commitlint"
	"github.com/bartekus/mrlint/internal/testutil/golden"
)

func sampleOutcomes() []commitlint.Outcome {
	return []commitlint.Outcome{
		{Input: "feat: add login", Errors: []commitlint.Problem{}, Warnings: []commitlint.Problem{}},
		{
			Input: "wip\n\nmore",
			Errors: []commitlint.Problem{
				{Rule: "type-empty", Severity: commitlint.LevelError, Message: "type may not be empty"},
				{Rule: "subject-empty", Severity: commitlint.LevelError, Message: "subject may not be empty"},
			},
			Warnings: []commitlint.Problem{},
		},
		{
			Input:  "fix: a\n\nlong",
			Errors: []commitlint.Problem{},
			Warnings: []commitlint.Problem{
				{Rule: "body-max-line-length", Severity: commitlint.LevelWarning, Message: "body's lines must not be longer than 100 characters"},
			},
		},
		{Input: "Revert abc123", Ignored: true, Errors: []commitlint.Problem{}, Warnings: []commitlint.Problem{}},
	}
}

func TestText_Golden(t *testing.T) {
	out := Text{HelpURL: "https://example.com/CONTRIBUTING.md#commit-messages"}.Report(sampleOutcomes())
	golden.Assert(t, golden.TestdataDir(t), "text_report", out)
}

func TestText_Verbose(t *testing.T) {
	out := Text{Verbose: true}.Report(sampleOutcomes())

	assert.Contains(t, out, "⧗   input: feat: add login\n✔   no problems\n")
	assert.Contains(t, out, "⧗   input: Revert abc123\n-   ignored\n")
	assert.NotContains(t, out, "Get help")
}

func TestText_NoProblems(t *testing.T) {
	out := Text{HelpURL: "https://example.com"}.Report([]commitlint.Outcome{{Input: "fix: a"}})
	assert.Equal(t, "✔   found 0 problems, 0 warnings\n", out)
}

func TestText_Color(t *testing.T) {
	out := Text{Color: true}.Report(sampleOutcomes())
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "type may not be empty")

	plain := Text{}.Report(sampleOutcomes())
	assert.NotContains(t, plain, "\x1b[")
}

func TestJSON(t *testing.T) {
	out := JSON{}.Report(sampleOutcomes())

	var got struct {
		Valid        bool `json:"valid"`
		ErrorCount   int  `json:"errorCount"`
		WarningCount int  `json:"warningCount"`
		Results      []struct {
			Input   string `json:"input"`
			Ignored bool   `json:"ignored"`
			Errors  []struct {
				Rule     string `json:"rule"`
				Severity string `json:"severity"`
			} `json:"errors"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.False(t, got.Valid)
	assert.Equal(t, 2, got.ErrorCount)
	assert.Equal(t, 1, got.WarningCount)
	require.Len(t, got.Results, 4)
	assert.Equal(t, "type-empty", got.Results[1].Errors[0].Rule)
	assert.Equal(t, "error", got.Results[1].Errors[0].Severity)
	assert.True(t, got.Results[3].Ignored)
}

func TestJSON_Empty(t *testing.T) {
	out := JSON{}.Report(nil)
	assert.True(t, strings.Contains(out, `"results": []`))
	assert.True(t, strings.Contains(out, `"valid": true`))
}

func TestNew(t *testing.T) {
	r, err := New("json", Text{})
	require.NoError(t, err)
	assert.IsType(t, JSON{}, r)

	r, err = New("text", Text{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, Text{Verbose: true}, r)

	_, err = New("xml", Text{})
	require.Error(t, err)
}

func TestWriteArtifact(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reports", "mrlint.json")
	require.NoError(t, WriteArtifact(target, []byte("{}\n")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(got))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be cleaned up")
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"Rule", "Level"}, [][]string{{"header-max-length", "error"}})
	assert.Equal(t, "| Rule | Level |\n| --- | --- |\n| header-max-length | error |\n", out)
}
