package github

import (
	"context"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/logger"
)

// GetTree fetches the entire tree for a repository recursively.
// This is efficient for getting all file paths in one API call.
func (c *Client) GetTree(ctx context.Context, owner, repo, ref string) ([]domain.TreeEntry, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, ref, true) // recursive=true
	if lerr := c.after(ctx, resp); lerr != nil {
		return nil, lerr
	}
	if err != nil {
		return nil, wrapError(err, "get tree")
	}

	if tree.GetTruncated() {
		logger.Warn("Tree listing for %s/%s was truncated by the API", owner, repo)
	}

	entries := make([]domain.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		entries = append(entries, domain.TreeEntry{
			Path: entry.GetPath(),
			Type: entry.GetType(),
		})
	}
	return entries, nil
}

// GetFileContent fetches the contents payload of a file.
// For files < 1MB, content is base64 encoded in the response.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (*domain.FileContent, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}

	content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if lerr := c.after(ctx, resp); lerr != nil {
		return nil, lerr
	}
	if err != nil {
		return nil, wrapError(err, "get contents")
	}
	if content == nil {
		return nil, domain.NewOpError("get contents", domain.KindDecode, ErrNotAFile)
	}

	fc := &domain.FileContent{
		Path:     content.GetPath(),
		Encoding: content.GetEncoding(),
	}
	if content.Content != nil {
		fc.Content = *content.Content
	}
	if fc.Path == "" {
		fc.Path = path
	}
	return fc, nil
}
