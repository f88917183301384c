package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
)

// Provenance resolves the latest commit of a repository's default branch.
type Provenance struct {
	api driven.GitHubAPI
}

// NewProvenance creates a provenance resolver.
func NewProvenance(api driven.GitHubAPI) *Provenance {
	return &Provenance{api: api}
}

// Resolve returns the tip commit of the default branch. Missing author
// email or name become domain.UnknownAuthor; a missing SHA or date is an
// error. Callers substitute domain.FallbackCommit on error.
func (p *Provenance) Resolve(ctx context.Context, ref domain.RepositoryRef) (domain.CommitInfo, error) {
	branch, err := p.api.GetDefaultBranch(ctx, ref.Owner, ref.Name)
	if err != nil {
		return domain.CommitInfo{}, fmt.Errorf("default branch: %w", err)
	}

	commit, err := p.api.GetCommit(ctx, ref.Owner, ref.Name, branch)
	if err != nil {
		return domain.CommitInfo{}, fmt.Errorf("commit %s: %w", branch, err)
	}
	if commit.SHA == "" || commit.Date == "" {
		return domain.CommitInfo{}, domain.NewOpError("commit "+branch, domain.KindDecode, domain.ErrMissingCommit)
	}

	info := domain.CommitInfo{
		SHA:         commit.SHA,
		Date:        commit.Date,
		AuthorEmail: domain.UnknownAuthor,
		AuthorName:  domain.UnknownAuthor,
	}
	if commit.HasEmail {
		info.AuthorEmail = commit.AuthorEmail
	}
	if commit.HasName {
		info.AuthorName = commit.AuthorName
	}
	return info, nil
}
