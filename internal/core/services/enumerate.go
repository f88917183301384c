package services

import (
	"context"

	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
	"github.com/custodia-labs/reposcout/internal/logger"
)

// RepoPageSize is the page size used to list a user's repositories.
const RepoPageSize = 100

// Enumerator lists every repository of a user or organisation.
type Enumerator struct {
	api driven.GitHubAPI
}

// NewEnumerator creates an enumerator.
func NewEnumerator(api driven.GitHubAPI) *Enumerator {
	return &Enumerator{api: api}
}

// Enumerate pages through user's repositories from page 1 until an empty
// page. An error ends enumeration; the URLs collected so far are returned.
func (e *Enumerator) Enumerate(ctx context.Context, user string) []string {
	var urls []string
	for page := 1; ; page++ {
		batch, err := e.api.ListUserRepos(ctx, user, page, RepoPageSize)
		if err != nil {
			logger.Warn("Listing repositories of %s stopped at page %d: %v", user, page, err)
			return urls
		}
		if len(batch) == 0 {
			return urls
		}
		urls = append(urls, batch...)
	}
}
