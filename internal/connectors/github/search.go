package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// SearchCode runs one code search query and returns the first page of hits.
func (c *Client) SearchCode(ctx context.Context, query string, perPage int) ([]domain.CodeHit, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}

	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
	result, resp, err := c.gh.Search.Code(ctx, query, opts)
	if lerr := c.after(ctx, resp); lerr != nil {
		return nil, lerr
	}
	if err != nil {
		return nil, wrapError(err, "search code")
	}

	hits := make([]domain.CodeHit, 0, len(result.CodeResults))
	for _, r := range result.CodeResults {
		hits = append(hits, domain.CodeHit{
			HTMLURL:     r.GetHTMLURL(),
			Path:        r.GetPath(),
			RepoName:    r.GetRepository().GetFullName(),
			RepoHTMLURL: r.GetRepository().GetHTMLURL(),
		})
	}
	return hits, nil
}
