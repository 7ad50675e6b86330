// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"fmt"
	"sort"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitRange reads the commits reachable from Head and not from Base in a
// local repository.
type GitRange struct {
	RepoPath string
	Base     string
	Head     string
}

// RevisionNotFoundError is returned when base or head cannot be resolved.
type RevisionNotFoundError struct {
	Revision string
	Err      error
}

func (e *RevisionNotFoundError) Error() string {
	return fmt.Sprintf("revision %q not found: %v", e.Revision, e.Err)
}

func (e *RevisionNotFoundError) Unwrap() error { return e.Err }

// Commits returns the range oldest first.
func (g *GitRange) Commits(ctx context.Context) ([]CommitMetadata, error) {
	if g.Base == "" || g.Head == "" {
		return nil, fmt.Errorf("git range needs both a base and a head revision (base=%q head=%q)", g.Base, g.Head)
	}

	repo, err := git.PlainOpenWithOptions(g.RepoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", g.RepoPath, err)
	}

	baseHash, err := repo.ResolveRevision(plumbing.Revision(g.Base))
	if err != nil {
		return nil, &RevisionNotFoundError{Revision: g.Base, Err: err}
	}
	headHash, err := repo.ResolveRevision(plumbing.Revision(g.Head))
	if err != nil {
		return nil, &RevisionNotFoundError{Revision: g.Head, Err: err}
	}

	headCommit, err := repo.CommitObject(*headHash)
	if err != nil {
		return nil, fmt.Errorf("reading head %s: %w", g.Head, err)
	}
	baseCommit, err := repo.CommitObject(*baseHash)
	if err != nil {
		return nil, fmt.Errorf("reading base %s: %w", g.Base, err)
	}

	only, err := headOnly(ctx, headCommit, baseCommit)
	if err != nil {
		return nil, fmt.Errorf("walking %s..%s: %w", g.Base, g.Head, err)
	}

	commits := make([]CommitMetadata, 0, len(only))
	for _, c := range only {
		commits = append(commits, CommitMetadata{
			SHA:         c.Hash.String(),
			Message:     c.Message,
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
		})
	}
	return commits, nil
}

type reach uint8

const (
	fromHead reach = 1 << iota
	fromBase
)

// headOnly returns the commits reachable from head but not from base, oldest
// first. Both sides are walked newest first and marks flow to the parents;
// the walk ends once every queued commit is reachable from base, so only
// the history back to the merge base is read.
func headOnly(ctx context.Context, head, base *object.Commit) ([]*object.Commit, error) {
	marks := make(map[plumbing.Hash]reach)
	queue := priorityqueue.NewWith(func(a, b any) int {
		// Newest committer time first.
		return b.(*object.Commit).Committer.When.Compare(a.(*object.Commit).Committer.When)
	})
	push := func(c *object.Commit, r reach) {
		old := marks[c.Hash]
		if old|r == old {
			return
		}
		marks[c.Hash] = old | r
		queue.Enqueue(c)
	}
	pending := func() bool {
		for _, v := range queue.Values() {
			if marks[v.(*object.Commit).Hash]&fromBase == 0 {
				return true
			}
		}
		return false
	}

	push(head, fromHead)
	push(base, fromBase)

	var only []*object.Commit
	seen := make(map[plumbing.Hash]bool)
	for pending() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, _ := queue.Dequeue()
		c := v.(*object.Commit)
		r := marks[c.Hash]
		if r == fromHead && !seen[c.Hash] {
			seen[c.Hash] = true
			only = append(only, c)
		}
		err := c.Parents().ForEach(func(p *object.Commit) error {
			push(p, r)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// A commit collected early may have been reached from base later on.
	kept := only[:0]
	for _, c := range only {
		if marks[c.Hash]&fromBase == 0 {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Committer.When.Before(kept[j].Committer.When)
	})
	return kept, nil
}
