// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projectroot locates the root of the git working tree.
package projectroot

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when start is not inside a git working tree.
var ErrNotRepository = errors.New("not inside a git repository")

// Find returns the top directory of the working tree containing start.
func Find(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", fmt.Errorf("%w: %s", ErrNotRepository, abs)
	}
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no working tree.
		return "", fmt.Errorf("%w: %s", ErrNotRepository, abs)
	}
	return wt.Filesystem.Root(), nil
}

// Resolve joins rel to the working tree root of start. Outside a repository
// rel is returned unchanged.
func Resolve(start, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	root, err := Find(start)
	if err != nil {
		return rel
	}
	return filepath.Join(root, rel)
}
