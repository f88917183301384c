package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/logger"
)

// UnknownOrigin is the origin of records whose source is not known.
const UnknownOrigin = "unknown"

// BuildRecord merges a scan and its provenance into an output record.
func BuildRecord(ref domain.RepositoryRef, commit domain.CommitInfo, scan *domain.ScanResult, origin string) domain.OutputRecord {
	if origin == "" {
		origin = UnknownOrigin
	}
	keywords := domain.RepoKeywordMap{}
	var fileTypes string
	var processed int
	if scan != nil {
		if scan.Keywords != nil {
			keywords = scan.Keywords
		}
		fileTypes = scan.FileTypes
		processed = scan.FilesProcessed
	}

	return domain.OutputRecord{
		CommitSHA:      commit.SHA,
		Email:          commit.AuthorEmail,
		KeywordCounts:  keywords,
		KeywordMatches: strconv.Itoa(keywords.Matches()),
		CommitDate:     commit.Date,
		Name:           commit.AuthorName,
		Owner:          ref.Owner,
		RepoName:       ref.Name,
		SnapshotURL:    ref.SnapshotURL(commit.SHA),
		Origin:         origin,
		FileTypes:      fileTypes,
		FilesProcessed: strconv.Itoa(processed),
	}
}

// RenameColumns normalises spreadsheet headers. Each header is lower-cased
// and renamed by the first rule with a matching substring; headers matching
// no rule keep their original name. When several headers end up with the
// same name, the first in sorted order wins and the others are dropped, so
// every column stays aligned with the sheet's data rows.
func RenameColumns(columns domain.Columns, rules []domain.ColumnRule) domain.Columns {
	headers := make([]string, 0, len(columns))
	for h := range columns {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	out := make(domain.Columns, len(columns))
	source := make(map[string]string, len(columns))
	for _, h := range headers {
		name := renameColumn(h, rules)
		if first, taken := source[name]; taken {
			logger.Warn("Column %q also maps to %q, keeping %q", h, name, first)
			continue
		}
		source[name] = h
		out[name] = columns[h]
	}
	return out
}

func renameColumn(header string, rules []domain.ColumnRule) string {
	lower := strings.ToLower(header)
	for _, rule := range rules {
		for _, m := range rule.Match {
			if m != "" && strings.Contains(lower, strings.ToLower(m)) {
				return rule.Rename
			}
		}
	}
	return header
}
