// SPDX-License-Identifier: AGPL-3.0-or-later

// Package policy decides which message(s) of a merge request must follow the
// commit convention.
package policy

import (
	"errors"
	"fmt"

	"github.com/bartekus/mrlint/internal/mergectx"
)

// ErrInvalidContext reports incomplete data from the context collaborators.
var ErrInvalidContext = errors.New("invalid merge request context")

// Kind tags the variant held by a Target.
type Kind string

const (
	KindTitle     Kind = "title"
	KindCommitSet Kind = "commits"
)

// Target is either a merge request title or an ordered set of commit messages.
type Target struct {
	kind    Kind
	title   string
	commits []string
}

// Title returns a title target.
func Title(title string) Target {
	return Target{kind: KindTitle, title: title}
}

// CommitSet returns a commit set target. The slice is copied.
func CommitSet(commits []string) Target {
	return Target{kind: KindCommitSet, commits: append([]string(nil), commits...)}
}

func (t Target) Kind() Kind { return t.kind }

// Messages returns the strings to validate, in order.
func (t Target) Messages() []string {
	if t.kind == KindTitle {
		return []string{t.title}
	}
	return append([]string(nil), t.commits...)
}

// NeedsCommits reports whether Select will take the commit set branch for mc,
// letting callers skip the commit lookup when only the title is checked.
func NeedsCommits(mc mergectx.MergeContext) bool {
	return !titleOnly(mc)
}

func titleOnly(mc mergectx.MergeContext) bool {
	return mc.SquashEnabled && !mc.MergeTrainEvent
}

// Select picks the validation target for a merge request.
//
// With squash on merge outside a merge train the squash commit takes the
// merge request title, so only the title is checked. Otherwise every commit
// lands on the target branch as-is and each one is checked.
func Select(mc mergectx.MergeContext) (Target, error) {
	if titleOnly(mc) {
		if mc.Title == "" {
			return Target{}, fmt.Errorf("%w: squash on merge is enabled but the merge request title is empty", ErrInvalidContext)
		}
		return Title(mc.Title), nil
	}

	if len(mc.Commits) == 0 {
		return Target{}, fmt.Errorf("%w: no commits found for the merge request", ErrInvalidContext)
	}
	return CommitSet(mc.Commits), nil
}
