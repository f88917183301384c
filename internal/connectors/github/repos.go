package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// GetDefaultBranch returns the repository's default branch name.
func (c *Client) GetDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	if err := c.before(ctx); err != nil {
		return "", err
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if lerr := c.after(ctx, resp); lerr != nil {
		return "", lerr
	}
	if err != nil {
		return "", wrapError(err, "get repo")
	}

	branch := repository.GetDefaultBranch()
	if branch == "" {
		return "", domain.NewOpError("get repo", domain.KindDecode, ErrNoDefaultBranch)
	}
	return branch, nil
}

// ListUserRepos returns the HTML URLs of one page of a user's or
// organisation's repositories, in API order.
func (c *Client) ListUserRepos(ctx context.Context, user string, page, perPage int) ([]string, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}

	opts := &gh.RepositoryListByUserOptions{
		ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
	}
	repos, resp, err := c.gh.Repositories.ListByUser(ctx, user, opts)
	if lerr := c.after(ctx, resp); lerr != nil {
		return nil, lerr
	}
	if err != nil {
		return nil, wrapError(err, "list user repos")
	}

	urls := make([]string, 0, len(repos))
	for _, r := range repos {
		if r.GetName() == "" || r.GetHTMLURL() == "" {
			continue
		}
		urls = append(urls, r.GetHTMLURL())
	}
	return urls, nil
}
