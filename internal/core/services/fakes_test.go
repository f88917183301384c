package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
)

// fakeGitHub is an in-memory driven.GitHubAPI keyed by "owner/repo".
type fakeGitHub struct {
	trees    map[string][]domain.TreeEntry
	treeErr  map[string]error
	files    map[string]string // "owner/repo/path" -> plain text
	rawFiles map[string]*domain.FileContent
	fileErr  map[string]error
	branches map[string]string
	commits  map[string]*driven.Commit // "owner/repo@ref"
	pages    map[string][][]string
	pageErr  map[string]int // user -> page number that fails
	hits     map[string][]domain.CodeHit
	hitErr   map[string]error

	fileCalls   []string
	commitCalls []string
	listCalls   []string
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{
		trees:    map[string][]domain.TreeEntry{},
		treeErr:  map[string]error{},
		files:    map[string]string{},
		rawFiles: map[string]*domain.FileContent{},
		fileErr:  map[string]error{},
		branches: map[string]string{},
		commits:  map[string]*driven.Commit{},
		pages:    map[string][][]string{},
		pageErr:  map[string]int{},
		hits:     map[string][]domain.CodeHit{},
		hitErr:   map[string]error{},
	}
}

var _ driven.GitHubAPI = (*fakeGitHub)(nil)

// addRepo registers a repository with a tree of files, a default branch
// "main" and a commit with the given SHA.
func (f *fakeGitHub) addRepo(owner, name, sha string, files map[string]string, order ...string) {
	key := owner + "/" + name
	for _, path := range order {
		f.trees[key] = append(f.trees[key], domain.TreeEntry{Path: path, Type: "blob"})
		if text, ok := files[path]; ok {
			f.files[key+"/"+path] = text
		}
	}
	f.branches[key] = "main"
	if sha != "" {
		f.commits[key+"@main"] = &driven.Commit{
			SHA:         sha,
			Date:        "2024-03-01T10:00:00Z",
			AuthorEmail: "dev@" + owner + ".io",
			HasEmail:    true,
			AuthorName:  "Dev " + owner,
			HasName:     true,
		}
	}
}

func (f *fakeGitHub) GetTree(_ context.Context, owner, repo, _ string) ([]domain.TreeEntry, error) {
	key := owner + "/" + repo
	if err := f.treeErr[key]; err != nil {
		return nil, err
	}
	entries, ok := f.trees[key]
	if !ok {
		return nil, domain.NewOpError("get tree", domain.KindNotFound, domain.ErrNotFound)
	}
	return entries, nil
}

func (f *fakeGitHub) GetFileContent(_ context.Context, owner, repo, path string) (*domain.FileContent, error) {
	key := owner + "/" + repo + "/" + path
	f.fileCalls = append(f.fileCalls, key)
	if err := f.fileErr[key]; err != nil {
		return nil, err
	}
	if raw, ok := f.rawFiles[key]; ok {
		return raw, nil
	}
	text, ok := f.files[key]
	if !ok {
		return nil, domain.NewOpError("get contents", domain.KindNotFound, domain.ErrNotFound)
	}
	return &domain.FileContent{Path: path, Encoding: "base64", Content: wrapBase64(text)}, nil
}

func (f *fakeGitHub) GetDefaultBranch(_ context.Context, owner, repo string) (string, error) {
	branch, ok := f.branches[owner+"/"+repo]
	if !ok {
		return "", domain.NewOpError("get repo", domain.KindNotFound, domain.ErrNotFound)
	}
	return branch, nil
}

func (f *fakeGitHub) GetCommit(_ context.Context, owner, repo, ref string) (*driven.Commit, error) {
	key := owner + "/" + repo + "@" + ref
	f.commitCalls = append(f.commitCalls, key)
	c, ok := f.commits[key]
	if !ok {
		return nil, domain.NewOpError("get commit", domain.KindNotFound, domain.ErrNotFound)
	}
	return c, nil
}

func (f *fakeGitHub) ListUserRepos(_ context.Context, user string, page, perPage int) ([]string, error) {
	f.listCalls = append(f.listCalls, fmt.Sprintf("%s:%d:%d", user, page, perPage))
	if failAt, ok := f.pageErr[user]; ok && failAt == page {
		return nil, domain.NewOpError("list user repos", domain.KindTransport, fmt.Errorf("connection reset"))
	}
	pages := f.pages[user]
	if page-1 >= len(pages) {
		return nil, nil
	}
	return pages[page-1], nil
}

func (f *fakeGitHub) SearchCode(_ context.Context, query string, _ int) ([]domain.CodeHit, error) {
	if err := f.hitErr[query]; err != nil {
		return nil, err
	}
	return f.hits[query], nil
}

// wrapBase64 encodes text the way the contents API does, with a newline
// every 60 characters.
func wrapBase64(text string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(text))
	var b strings.Builder
	for len(enc) > 60 {
		b.WriteString(enc[:60])
		b.WriteString("\n")
		enc = enc[60:]
	}
	b.WriteString(enc)
	b.WriteString("\n")
	return b.String()
}

// countingIndex wraps an index sink and counts calls.
type countingIndex struct {
	driven.IndexSink
	existsCalls int
	ingestCalls int
	existsErr   error
	ingestErr   error
}

func (c *countingIndex) DocumentExists(ctx context.Context, index, id string) (bool, error) {
	c.existsCalls++
	if c.existsErr != nil {
		return false, c.existsErr
	}
	return c.IndexSink.DocumentExists(ctx, index, id)
}

func (c *countingIndex) Ingest(ctx context.Context, record *domain.OutputRecord) (string, error) {
	c.ingestCalls++
	if c.ingestErr != nil {
		return "", c.ingestErr
	}
	return c.IndexSink.Ingest(ctx, record)
}

// failingSheet fails every write.
type failingSheet struct {
	driven.SpreadsheetSink
	err error
}

func (f *failingSheet) WriteRow(context.Context, string, string, int, []string) error { return f.err }
func (f *failingSheet) WriteCell(context.Context, string, string, int, string) error  { return f.err }
