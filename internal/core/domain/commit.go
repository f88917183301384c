package domain

import "time"

// UnknownAuthor is substituted when the API omits commit author fields.
const UnknownAuthor = "unknown"

// CommitInfo is the latest-commit provenance of a repository's default branch.
type CommitInfo struct {
	SHA         string
	Date        string
	AuthorEmail string
	AuthorName  string
}

// FallbackCommit returns the provenance used when lookup fails:
// no SHA, the given time as the date, and no author.
func FallbackCommit(now time.Time) CommitInfo {
	return CommitInfo{
		Date: now.UTC().Format(time.RFC3339),
	}
}
