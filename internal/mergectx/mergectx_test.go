package mergectx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	mc, err := Load(mapLookup(map[string]string{
		EnvIID:           "17",
		EnvProjectID:     "278964",
		EnvSquashOnMerge: "true",
		EnvEventType:     "merge_train",
		EnvTitle:         "  feat: add login\n",
		EnvDiffBaseSHA:   "aaa",
		EnvCommitSHA:     "bbb",
		EnvAPIURL:        "https://gitlab.example.com/api/v4",
		EnvToken:         "secret",
	}))
	require.NoError(t, err)

	assert.True(t, mc.SquashEnabled)
	assert.True(t, mc.SquashKnown())
	assert.True(t, mc.MergeTrainEvent)
	assert.Equal(t, "  feat: add login\n", mc.Title, "title is kept verbatim")
	assert.Equal(t, 17, mc.MergeRequestIID)
	assert.Equal(t, "278964", mc.ProjectID)
	assert.Equal(t, "aaa", mc.BaseSHA)
	assert.Equal(t, "bbb", mc.HeadSHA)
	assert.Equal(t, "https://gitlab.example.com/api/v4", mc.APIURL)
	assert.Equal(t, "secret", mc.Token)
	assert.Empty(t, mc.Commits)
}

func TestLoad_Defaults(t *testing.T) {
	mc, err := Load(mapLookup(map[string]string{EnvIID: "3", EnvEventType: "merged_result"}))
	require.NoError(t, err)

	assert.False(t, mc.SquashEnabled)
	assert.False(t, mc.SquashKnown())
	assert.False(t, mc.MergeTrainEvent)
	assert.Empty(t, mc.Title)
}

func TestLoad_NotMergeRequest(t *testing.T) {
	for _, iid := range []string{"", "abc", "0", "-4"} {
		env := map[string]string{}
		if iid != "" {
			env[EnvIID] = iid
		}
		_, err := Load(mapLookup(env))
		require.Error(t, err, "iid %q", iid)
		assert.ErrorIs(t, err, ErrNotMergeRequest)
	}
}

func TestLoad_InvalidSquash(t *testing.T) {
	_, err := Load(mapLookup(map[string]string{EnvIID: "1", EnvSquashOnMerge: "maybe"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSquashOnMerge)
}

func TestWithMergeRequest(t *testing.T) {
	base := MergeContext{MergeRequestIID: 1}
	filled := base.WithMergeRequest("fix: from api", true)

	assert.Equal(t, "fix: from api", filled.Title)
	assert.True(t, filled.SquashEnabled)
	assert.Empty(t, base.Title, "original must not change")

	mc, err := Load(mapLookup(map[string]string{EnvIID: "1", EnvSquashOnMerge: "false", EnvTitle: "feat: env"}))
	require.NoError(t, err)
	kept := mc.WithMergeRequest("fix: from api", true)
	assert.Equal(t, "feat: env", kept.Title)
	assert.False(t, kept.SquashEnabled)
}

func TestWithCommits_Copies(t *testing.T) {
	commits := []string{"fix: a"}
	mc := MergeContext{}.WithCommits(commits)
	commits[0] = "changed"
	assert.Equal(t, []string{"fix: a"}, mc.Commits)
}

func TestEnviron_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ci.env")
	require.NoError(t, os.WriteFile(path, []byte("CI_MERGE_REQUEST_IID=42\nCI_MERGE_REQUEST_TITLE=\"feat: from file\"\n"), 0o600))

	t.Setenv(EnvIID, "1")
	t.Setenv(EnvProjectID, "99")

	lookup, err := Environ(path)
	require.NoError(t, err)

	mc, err := Load(lookup)
	require.NoError(t, err)
	assert.Equal(t, 42, mc.MergeRequestIID)
	assert.Equal(t, "feat: from file", mc.Title)
	assert.Equal(t, "99", mc.ProjectID)

	v, _ := os.LookupEnv(EnvIID)
	assert.Equal(t, "1", v)
}

func TestEnviron_MissingFile(t *testing.T) {
	_, err := Environ(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
