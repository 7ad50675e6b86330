// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"fmt"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// DefaultPerPage is the page size used when listing merge request commits.
const DefaultPerPage = 100

// GitLab reads a merge request through the GitLab REST API.
type GitLab struct {
	client    *gitlab.Client
	projectID string
	iid       int
	perPage   int
}

// NewGitLab returns a GitLab source for one merge request.
func NewGitLab(apiURL, token, projectID string, iid int) (*GitLab, error) {
	if apiURL == "" {
		return nil, errors.New("GitLab API URL is not set")
	}
	if projectID == "" {
		return nil, errors.New("GitLab project ID is not set")
	}
	client, err := gitlab.NewClient(token, gitlab.WithBaseURL(apiURL))
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client: %w", err)
	}
	return &GitLab{client: client, projectID: projectID, iid: iid, perPage: DefaultPerPage}, nil
}

// MergeRequest returns the title and squash setting of the merge request.
func (g *GitLab) MergeRequest(ctx context.Context) (string, bool, error) {
	mr, _, err := g.client.MergeRequests.GetMergeRequest(g.projectID, g.iid, nil, gitlab.WithContext(ctx))
	if err != nil {
		return "", false, fmt.Errorf("getting merge request !%d: %w", g.iid, err)
	}
	return mr.Title, mr.Squash, nil
}

// Commits lists every commit of the merge request, oldest first.
func (g *GitLab) Commits(ctx context.Context) ([]CommitMetadata, error) {
	opt := &gitlab.GetMergeRequestCommitsOptions{}
	opt.PerPage = g.perPage
	opt.Page = 1

	var commits []CommitMetadata
	for {
		page, resp, err := g.client.MergeRequests.GetMergeRequestCommits(g.projectID, g.iid, opt, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing commits of merge request !%d: %w", g.iid, err)
		}
		for _, c := range page {
			commits = append(commits, CommitMetadata{
				SHA:         c.ID,
				Message:     c.Message,
				AuthorName:  c.AuthorName,
				AuthorEmail: c.AuthorEmail,
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	// The API lists the newest commit first.
	reverse(commits)
	return commits, nil
}
