package github

import (
	"context"
	"time"

	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
)

// GetCommit fetches the commit at ref.
func (c *Client) GetCommit(ctx context.Context, owner, repo, ref string) (*driven.Commit, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}

	rc, resp, err := c.gh.Repositories.GetCommit(ctx, owner, repo, ref, nil)
	if lerr := c.after(ctx, resp); lerr != nil {
		return nil, lerr
	}
	if err != nil {
		return nil, wrapError(err, "get commit")
	}

	commit := &driven.Commit{SHA: rc.GetSHA()}
	author := rc.GetCommit().GetAuthor()
	if author == nil {
		return commit, nil
	}
	if author.Date != nil {
		commit.Date = author.Date.UTC().Format(time.RFC3339)
	}
	if author.Email != nil {
		commit.AuthorEmail = *author.Email
		commit.HasEmail = true
	}
	if author.Name != nil {
		commit.AuthorName = *author.Name
		commit.HasName = true
	}
	return commit, nil
}
