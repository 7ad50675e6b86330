// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mrlint - mrlint checks merge request commit messages against the Conventional Commits convention in CI.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package history reads the commit messages of a merge request.
package history

import (
	"context"
	"fmt"
)

// CommitMetadata represents a single commit's metadata.
type CommitMetadata struct {
	SHA         string
	Message     string
	AuthorName  string
	AuthorEmail string
}

// Source provides the commits of a merge request, oldest first.
type Source interface {
	Commits(ctx context.Context) ([]CommitMetadata, error)
}

// Kind names a commit source.
type Kind string

const (
	KindGit Kind = "git"
	KindAPI Kind = "api"
)

// ParseKind validates a source name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindGit, KindAPI:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown commit source: %s (must be 'git' or 'api')", s)
	}
}

// Messages extracts the messages of commits, keeping their order.
func Messages(commits []CommitMetadata) []string {
	out := make([]string, 0, len(commits))
	for _, c := range commits {
		out = append(out, c.Message)
	}
	return out
}

func reverse(commits []CommitMetadata) {
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
}
