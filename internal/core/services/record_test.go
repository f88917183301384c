package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

func TestBuildRecord(t *testing.T) {
	ref := domain.RepositoryRef{Owner: "acme", Name: "widgets"}
	commit := domain.CommitInfo{SHA: "abc", Date: "2024-03-01T10:00:00Z", AuthorEmail: "a@b.c", AuthorName: "Ada"}
	scan := &domain.ScanResult{
		Keywords: domain.RepoKeywordMap{
			"a": {Count: 5, Files: []string{"f1"}},
			"b": {Count: 1, Files: []string{"f2"}},
		},
		FileTypes:      ".rs, .ts",
		FilesProcessed: 7,
	}

	record := BuildRecord(ref, commit, scan, "Submissions")

	assert.Equal(t, domain.OutputRecord{
		CommitSHA:      "abc",
		Email:          "a@b.c",
		KeywordCounts:  scan.Keywords,
		KeywordMatches: "2",
		CommitDate:     "2024-03-01T10:00:00Z",
		Name:           "Ada",
		Owner:          "acme",
		RepoName:       "widgets",
		SnapshotURL:    "https://github.com/acme/widgets/tree/abc",
		Origin:         "Submissions",
		FileTypes:      ".rs, .ts",
		FilesProcessed: "7",
	}, record)
}

func TestBuildRecord_Defaults(t *testing.T) {
	record := BuildRecord(domain.RepositoryRef{Owner: "acme", Name: "widgets"}, domain.CommitInfo{}, nil, "")

	assert.Equal(t, UnknownOrigin, record.Origin)
	assert.Equal(t, "0", record.KeywordMatches)
	assert.Equal(t, "0", record.FilesProcessed)
	assert.NotNil(t, record.KeywordCounts)
	assert.False(t, record.IsEmpty())
}

func TestBuildRecord_EnrichmentNeverOverwrites(t *testing.T) {
	record := BuildRecord(domain.RepositoryRef{Owner: "acme", Name: "widgets"},
		domain.CommitInfo{SHA: "abc"}, &domain.ScanResult{}, "Submissions")
	columns := domain.Columns{
		"snapshot_url": {"https://example.com/other"},
		"location":     {"Lisbon"},
		"wallet":       {"So1ana"},
	}

	record.Backfill(columns, []string{"snapshot_url", "location", "unknown_field"}, 0)

	assert.Equal(t, "https://github.com/acme/widgets/tree/abc", record.SnapshotURL)
	if assert.NotNil(t, record.Location) {
		assert.Equal(t, "Lisbon", *record.Location)
	}
	assert.Nil(t, record.Wallet, "fields not listed are not enriched")
}

func TestRenameColumns(t *testing.T) {
	columns := domain.Columns{
		"GitHub Repo":         {"https://github.com/acme/a"},
		"Repo (backup)":       {"https://github.com/acme/b"},
		"Country":             {"PT"},
		"Team Twitter":        {"@acme"},
		"Presentation Slides": {"https://slides"},
		"Notes":               {"n"},
	}

	got := RenameColumns(columns, domain.DefaultConfig().Sheets.ColumnRules)

	assert.Equal(t, domain.Columns{
		"snapshot_url":      {"https://github.com/acme/a"},
		"location":          {"PT"},
		"contact":           {"@acme"},
		"presentation_link": {"https://slides"},
		"Notes":             {"n"},
	}, got)
}

func TestRenameColumns_CollisionKeepsRowsAligned(t *testing.T) {
	columns := domain.Columns{
		"GitHub Repo":   {"https://github.com/acme/a", "https://github.com/acme/b"},
		"Repo (backup)": {"https://github.com/acme/c", "https://github.com/acme/d"},
		"Country":       {"PT", "ES"},
	}

	got := RenameColumns(columns, domain.DefaultConfig().Sheets.ColumnRules)

	require.Len(t, got["snapshot_url"], len(got["location"]))
	assert.Equal(t, []string{"https://github.com/acme/a", "https://github.com/acme/b"}, got["snapshot_url"])
	value, ok := got.Value("location", 1)
	assert.True(t, ok)
	assert.Equal(t, "ES", value)
}
