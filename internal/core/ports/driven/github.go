package driven

import (
	"context"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// GitHubAPI is the subset of the GitHub REST API the scanner consumes.
// Implementations must honour the provider's rate limit after every call,
// before returning.
type GitHubAPI interface {
	// GetTree lists every entry of the tree at ref, recursively.
	GetTree(ctx context.Context, owner, repo, ref string) ([]domain.TreeEntry, error)

	// GetFileContent fetches the raw contents payload of a file.
	GetFileContent(ctx context.Context, owner, repo, path string) (*domain.FileContent, error)

	// GetDefaultBranch returns the repository's default branch name.
	GetDefaultBranch(ctx context.Context, owner, repo string) (string, error)

	// GetCommit returns the commit at ref.
	GetCommit(ctx context.Context, owner, repo, ref string) (*Commit, error)

	// ListUserRepos returns the HTML URLs of one page of a user's repositories.
	ListUserRepos(ctx context.Context, user string, page, perPage int) ([]string, error)

	// SearchCode runs one code search query and returns a single page of hits.
	SearchCode(ctx context.Context, query string, perPage int) ([]domain.CodeHit, error)
}

// Commit is a commit as returned by the API. HasEmail and HasName are
// false when the payload omits the author field.
type Commit struct {
	SHA string
	// Date is RFC3339; empty when the payload has no author date.
	Date        string
	AuthorEmail string
	HasEmail    bool
	AuthorName  string
	HasName     bool
}
