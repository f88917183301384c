package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
	"github.com/custodia-labs/reposcout/internal/logger"
)

// HeadRef is the tree reference scanned.
const HeadRef = "HEAD"

var errUnsupportedEncoding = errors.New("unsupported content encoding")

// TreeScanner counts keyword occurrences across a repository's files.
type TreeScanner struct {
	api driven.GitHubAPI
}

// NewTreeScanner creates a scanner.
func NewTreeScanner(api driven.GitHubAPI) *TreeScanner {
	return &TreeScanner{api: api}
}

// Scan lists the tree at HEAD, keeps at most cfg.FileLimit blobs with an
// allowed extension in tree order, and counts case-insensitive,
// non-overlapping keyword occurrences in each.
//
// A tree listing failure fails the scan. A file that cannot be fetched or
// decoded is skipped unless cfg.StrictFiles is set.
func (s *TreeScanner) Scan(ctx context.Context, ref domain.RepositoryRef, cfg domain.ScanConfig) (*domain.ScanResult, error) {
	entries, err := s.api.GetTree(ctx, ref.Owner, ref.Name, HeadRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrScanFailed, err)
	}

	files := selectFiles(entries, cfg.Extensions, cfg.FileLimit)
	logger.Debug("Scanning %d files in %s", len(files), ref)

	keywords := scanKeywords(cfg.Keywords)

	result := &domain.ScanResult{
		Keywords:  domain.RepoKeywordMap{},
		FileTypes: cfg.FileTypesLabel(),
	}

	for _, path := range files {
		text, err := s.fetchText(ctx, ref, path)
		if err != nil {
			if cfg.StrictFiles {
				return nil, fmt.Errorf("%w: %s: %w", domain.ErrScanFailed, path, err)
			}
			logger.Warn("Skipping %s in %s: %v", path, ref, err)
			continue
		}
		result.FilesProcessed++

		fileURL := ref.BlobURL(path)
		for _, kw := range keywords {
			if n := strings.Count(text, kw.needle); n > 0 {
				result.Keywords.Add(kw.name, uint(n), fileURL)
			}
		}
	}

	return result, nil
}

type scanKeyword struct {
	name   string // as configured, used as the result key
	needle string // lower-cased search text
}

// scanKeywords drops empty keywords and keywords that repeat an earlier one
// case-insensitively; the first spelling wins.
func scanKeywords(configured []string) []scanKeyword {
	seen := make(map[string]struct{}, len(configured))
	keywords := make([]scanKeyword, 0, len(configured))
	for _, k := range configured {
		needle := strings.ToLower(k)
		if needle == "" {
			continue
		}
		if _, dup := seen[needle]; dup {
			continue
		}
		seen[needle] = struct{}{}
		keywords = append(keywords, scanKeyword{name: k, needle: needle})
	}
	return keywords
}

// fetchText returns the lower-cased decoded contents of path.
func (s *TreeScanner) fetchText(ctx context.Context, ref domain.RepositoryRef, path string) (string, error) {
	fc, err := s.api.GetFileContent(ctx, ref.Owner, ref.Name, path)
	if err != nil {
		return "", err
	}
	if fc.Encoding != "base64" {
		return "", domain.NewOpError("decode content", domain.KindDecode,
			fmt.Errorf("%w %q", errUnsupportedEncoding, fc.Encoding))
	}

	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(fc.Content)
	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", domain.NewOpError("decode content", domain.KindDecode, err)
	}
	return strings.ToLower(string(decoded)), nil
}

// selectFiles returns blob paths ending in one of extensions, in tree
// order, truncated to limit. A limit of 0 or less means no cap.
func selectFiles(entries []domain.TreeEntry, extensions []string, limit int) []string {
	var files []string
	for _, e := range entries {
		if limit > 0 && len(files) >= limit {
			break
		}
		if !e.IsBlob() || !hasExtension(e.Path, extensions) {
			continue
		}
		files = append(files, e.Path)
	}
	return files
}

func hasExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
