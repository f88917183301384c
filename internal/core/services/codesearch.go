package services

import (
	"context"
	"sort"
	"strings"

	"github.com/gitsight/go-vcsurl"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
	"github.com/custodia-labs/reposcout/internal/logger"
)

// SearchPageSize is the provider's maximum code search page size.
const SearchPageSize = 100

// CodeSearch discovers repositories through code search queries.
type CodeSearch struct {
	api driven.GitHubAPI
}

// NewCodeSearch creates a code search deduper.
func NewCodeSearch(api driven.GitHubAPI) *CodeSearch {
	return &CodeSearch{api: api}
}

// Search runs every query and returns the distinct repository URLs of the
// hits, minus any whose lower-cased URL contains a lower-cased exclusion.
// A failing query is logged and skipped. The result is sorted.
func (c *CodeSearch) Search(ctx context.Context, queries, exclude []string) []string {
	seen := make(map[string]struct{})
	for _, q := range queries {
		hits, err := c.api.SearchCode(ctx, q, SearchPageSize)
		if err != nil {
			logger.Warn("Code search %q failed: %v", q, err)
			continue
		}
		for _, hit := range hits {
			if u := repoURLOf(hit); u != "" {
				seen[u] = struct{}{}
			}
		}
	}

	blocked := make([]string, 0, len(exclude))
	for _, e := range exclude {
		if e != "" {
			blocked = append(blocked, strings.ToLower(e))
		}
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		if isExcluded(u, blocked) {
			logger.Debug("Excluding %s", u)
			continue
		}
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// repoURLOf derives the repository URL from a hit's file URL, falling back
// to the repository URL in the payload.
func repoURLOf(hit domain.CodeHit) string {
	if info, err := vcsurl.Parse(hit.HTMLURL); err == nil && info.Username != "" && info.Name != "" {
		return domain.RepositoryRef{Owner: info.Username, Name: info.Name}.HTMLURL()
	}
	return hit.RepoHTMLURL
}

func isExcluded(u string, blocked []string) bool {
	lower := strings.ToLower(u)
	for _, b := range blocked {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}
