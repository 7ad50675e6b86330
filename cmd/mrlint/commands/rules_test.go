package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Text(t *testing.T) {
	out, _, err := execute(t, nil, "rules")
	require.NoError(t, err)

	assert.Contains(t, out, "| Rule | Severity | When | Value |")
	assert.Contains(t, out, "| header-max-length | error | always | 100 |")
	assert.Contains(t, out, "| body-max-line-length | warning | always | 100 |")
	assert.Contains(t, out, "| subject-case | disabled | never | sentence-case, start-case, pascal-case, upper-case |")
	assert.Contains(t, out, "- ^(R|r)evert ")
}

func TestRules_JSON(t *testing.T) {
	out, _, err := execute(t, nil, "rules", "--format", "json", "--header-max-length", "72")
	require.NoError(t, err)

	var doc struct {
		Rules map[string]struct {
			Level  string `json:"level"`
			Length int    `json:"length"`
		} `json:"rules"`
		Ignores []string `json:"ignores"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Rules, 13)
	assert.Equal(t, 72, doc.Rules["header-max-length"].Length)
	assert.Equal(t, "error", doc.Rules["type-enum"].Level)
	assert.Len(t, doc.Ignores, 4)
}

func TestRules_InvalidInput(t *testing.T) {
	_, _, err := execute(t, nil, "rules", "--format", "yaml")
	require.Error(t, err)

	_, _, err = execute(t, nil, "rules", "--header-max-length", "50")
	require.Error(t, err)
}
