package domain

import "fmt"

// GitHubWebURL is the web host used to build repository permalinks.
const GitHubWebURL = "https://github.com"

// RepositoryRef identifies a single GitHub repository scan target.
type RepositoryRef struct {
	Owner string
	Name  string
}

// FullName returns the owner/name form used by the GitHub API.
func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// HTMLURL returns the repository's web URL.
func (r RepositoryRef) HTMLURL() string {
	return fmt.Sprintf("%s/%s/%s", GitHubWebURL, r.Owner, r.Name)
}

// BlobURL returns the permalink of a file at HEAD.
func (r RepositoryRef) BlobURL(path string) string {
	return fmt.Sprintf("%s/%s/%s/blob/HEAD/%s", GitHubWebURL, r.Owner, r.Name, path)
}

// SnapshotURL returns a permalink to the repository tree at a commit.
func (r RepositoryRef) SnapshotURL(sha string) string {
	return fmt.Sprintf("%s/%s/%s/tree/%s", GitHubWebURL, r.Owner, r.Name, sha)
}

// String implements fmt.Stringer.
func (r RepositoryRef) String() string {
	return r.FullName()
}

// TargetKind classifies an input string.
type TargetKind int

// Target kinds.
const (
	// TargetInvalid is an input that cannot be routed.
	TargetInvalid TargetKind = iota

	// TargetUser names a user or organisation whose repositories are expanded.
	TargetUser

	// TargetRepository names a concrete repository.
	TargetRepository
)

// String returns the string representation.
func (k TargetKind) String() string {
	switch k {
	case TargetUser:
		return "user"
	case TargetRepository:
		return "repository"
	default:
		return "invalid"
	}
}

// Target is the result of classifying an input URL.
// User is set for TargetUser, Repo for TargetRepository.
type Target struct {
	Kind TargetKind
	User string
	Repo RepositoryRef
}

// TreeEntry is a single entry of a recursive tree listing.
type TreeEntry struct {
	Path string
	Type string
}

// IsBlob reports whether the entry is a file.
func (e TreeEntry) IsBlob() bool {
	return e.Type == "blob"
}

// FileContent is the raw contents payload of a file.
// Content is base64 encoded when Encoding is "base64" and may contain newlines.
type FileContent struct {
	Path     string
	Encoding string
	Content  string
}

// CodeHit is a single code search result.
type CodeHit struct {
	HTMLURL     string
	Path        string
	RepoName    string
	RepoHTMLURL string
}
