package services

import (
	"net/url"
	"strings"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// ClassifyURL decides whether raw names a user or organisation, a concrete
// repository, or nothing routable. Only the path is inspected: one segment
// is a user, two are owner and repository (case preserved), anything else
// is invalid. Inputs without a scheme and host are invalid.
func ClassifyURL(raw string) domain.Target {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.Target{Kind: domain.TargetInvalid}
	}

	segments := pathSegments(u.Path)
	switch len(segments) {
	case 1:
		return domain.Target{Kind: domain.TargetUser, User: segments[0]}
	case 2:
		return domain.Target{
			Kind: domain.TargetRepository,
			Repo: domain.RepositoryRef{Owner: segments[0], Name: segments[1]},
		}
	default:
		return domain.Target{Kind: domain.TargetInvalid}
	}
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
