// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mergectx loads the merge-request context of a CI run.
//
// The context is read once at process start from the pipeline environment
// (optionally layered with a dotenv file) and never mutated afterwards.
package mergectx

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// GitLab predefined CI/CD variables consumed by Load.
const (
	EnvSquashOnMerge = "CI_MERGE_REQUEST_SQUASH_ON_MERGE"
	EnvEventType     = "CI_MERGE_REQUEST_EVENT_TYPE"
	EnvTitle         = "CI_MERGE_REQUEST_TITLE"
	EnvDiffBaseSHA   = "CI_MERGE_REQUEST_DIFF_BASE_SHA"
	EnvCommitSHA     = "CI_COMMIT_SHA"
	EnvProjectID     = "CI_MERGE_REQUEST_PROJECT_ID"
	EnvIID           = "CI_MERGE_REQUEST_IID"
	EnvAPIURL        = "CI_API_V4_URL"
	EnvToken         = "GITLAB_TOKEN"
)

// EventMergeTrain is the CI_MERGE_REQUEST_EVENT_TYPE value of merge train pipelines.
const EventMergeTrain = "merge_train"

// ErrNotMergeRequest is returned when the environment does not describe a
// merge request pipeline.
var ErrNotMergeRequest = errors.New("not running in a merge request pipeline")

// MergeContext is the immutable input of the selection policy.
type MergeContext struct {
	SquashEnabled   bool
	MergeTrainEvent bool
	Title           string
	// Commits holds full commit messages, oldest first.
	Commits []string

	// squashKnown reports whether SquashEnabled came from the environment
	// rather than its zero value.
	squashKnown bool

	ProjectID       string
	MergeRequestIID int
	BaseSHA         string
	HeadSHA         string
	APIURL          string
	Token           string
}

// SquashKnown reports whether the squash setting was present in the environment.
func (m MergeContext) SquashKnown() bool { return m.squashKnown }

// WithCommits returns a copy of m carrying the given commit messages.
func (m MergeContext) WithCommits(commits []string) MergeContext {
	m.Commits = append([]string(nil), commits...)
	return m
}

// WithMergeRequest returns a copy of m with the title and squash setting
// filled in from the code-hosting API.
func (m MergeContext) WithMergeRequest(title string, squash bool) MergeContext {
	if m.Title == "" {
		m.Title = title
	}
	if !m.squashKnown {
		m.SquashEnabled = squash
		m.squashKnown = true
	}
	return m
}

// LookupFunc resolves an environment variable. It has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Environ returns a LookupFunc over the process environment layered under the
// variables of envFile. An empty envFile means the process environment only.
// The process environment is never modified.
func Environ(envFile string) (LookupFunc, error) {
	if envFile == "" {
		return os.LookupEnv, nil
	}
	vars, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", envFile, err)
	}
	return func(key string) (string, bool) {
		if v, ok := vars[key]; ok {
			return v, true
		}
		return os.LookupEnv(key)
	}, nil
}

// Load builds a MergeContext from the environment. Commit messages are not
// part of the environment; callers attach them with WithCommits.
func Load(lookup LookupFunc) (MergeContext, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	rawIID := get(EnvIID)
	if rawIID == "" {
		return MergeContext{}, fmt.Errorf("%w: %s is not set", ErrNotMergeRequest, EnvIID)
	}
	iid, err := strconv.Atoi(rawIID)
	if err != nil || iid <= 0 {
		return MergeContext{}, fmt.Errorf("%w: invalid %s %q", ErrNotMergeRequest, EnvIID, rawIID)
	}

	mc := MergeContext{
		MergeTrainEvent: get(EnvEventType) == EventMergeTrain,
		ProjectID:       get(EnvProjectID),
		MergeRequestIID: iid,
		BaseSHA:         get(EnvDiffBaseSHA),
		HeadSHA:         get(EnvCommitSHA),
		APIURL:          get(EnvAPIURL),
		Token:           get(EnvToken),
	}

	// The title is kept verbatim; header-trim judges its whitespace.
	if v, ok := lookup(EnvTitle); ok {
		mc.Title = v
	}

	if raw := get(EnvSquashOnMerge); raw != "" {
		squash, err := strconv.ParseBool(raw)
		if err != nil {
			return MergeContext{}, fmt.Errorf("invalid %s %q: %w", EnvSquashOnMerge, raw, err)
		}
		mc.SquashEnabled = squash
		mc.squashKnown = true
	}

	return mc, nil
}
