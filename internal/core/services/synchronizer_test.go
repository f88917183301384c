package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposcout/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reposcout/internal/core/domain"
)

func sheetsConfig() domain.SheetsConfig {
	cfg := domain.DefaultConfig().Sheets
	cfg.WriteSheet = "Results"
	return cfg
}

func sampleRecord(sha string) *domain.OutputRecord {
	r := BuildRecord(domain.RepositoryRef{Owner: "acme", Name: "widgets"},
		domain.CommitInfo{SHA: sha, Date: "2024-03-01T10:00:00Z"},
		&domain.ScanResult{Keywords: domain.RepoKeywordMap{"delegate_account": {Count: 1, Files: []string{"f"}}}},
		"Submissions")
	return &r
}

func TestSynchronizer_SameCommitIngestedOnce(t *testing.T) {
	sheet := memory.NewSheetStore(nil)
	index := &countingIndex{IndexSink: memory.NewIndexStore("github-repos")}
	sync := NewSynchronizer(sheet, index, sheetsConfig(), "github-repos")
	ctx := context.Background()

	first := sync.Sync(ctx, domain.WorkItem{Row: 2, Record: sampleRecord("abc")})
	second := sync.Sync(ctx, domain.WorkItem{Row: 3, Record: sampleRecord("abc")})

	assert.Equal(t, 1, index.ingestCalls)
	assert.True(t, first.Ingested)
	assert.Equal(t, domain.StageTabulated, first.Stage)
	assert.False(t, second.Ingested)
	assert.True(t, second.Duplicate)
	assert.Equal(t, 1, index.existsCalls, "in-run duplicates skip the index lookup")

	writes := sheet.Writes()
	require.Len(t, writes, 2, "duplicates are still tabulated")
	assert.Equal(t, 3, writes[1].Row)
}

func TestSynchronizer_AlreadyIndexed(t *testing.T) {
	store := memory.NewIndexStore("github-repos")
	_, err := store.Ingest(context.Background(), sampleRecord("abc"))
	require.NoError(t, err)
	index := &countingIndex{IndexSink: store}

	report := NewSynchronizer(memory.NewSheetStore(nil), index, sheetsConfig(), "github-repos").
		Sync(context.Background(), domain.WorkItem{Row: 2, Record: sampleRecord("abc")})

	assert.True(t, report.Duplicate)
	assert.Equal(t, 0, index.ingestCalls)
}

func TestSynchronizer_EmptySHASkipsIndex(t *testing.T) {
	sheet := memory.NewSheetStore(nil)
	index := &countingIndex{IndexSink: memory.NewIndexStore("github-repos")}

	report := NewSynchronizer(sheet, index, sheetsConfig(), "github-repos").
		Sync(context.Background(), domain.WorkItem{Row: 2, Record: sampleRecord("")})

	assert.Equal(t, 0, index.existsCalls)
	assert.Equal(t, 0, index.ingestCalls)
	assert.False(t, report.Failed())
	assert.Len(t, sheet.Writes(), 1)
}

func TestSynchronizer_SuccessRow(t *testing.T) {
	sheet := memory.NewSheetStore(nil)
	record := sampleRecord("abc")

	report := NewSynchronizer(sheet, memory.NewIndexStore("github-repos"), sheetsConfig(), "github-repos").
		Sync(context.Background(), domain.WorkItem{Row: 4, Record: record})
	require.False(t, report.Failed())

	writes := sheet.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, "Results", writes[0].Sheet)
	assert.Equal(t, "C", writes[0].Column)
	assert.Equal(t, 4, writes[0].Row)
	require.Len(t, writes[0].Values, 3)

	var decoded domain.OutputRecord
	require.NoError(t, json.Unmarshal([]byte(writes[0].Values[0]), &decoded))
	assert.Equal(t, "abc", decoded.CommitSHA)
	assert.Equal(t, "1", writes[0].Values[1])
	assert.Equal(t, "https://github.com/acme/widgets/tree/abc", writes[0].Values[2])
}

func TestSynchronizer_ErrorRow(t *testing.T) {
	sheet := memory.NewSheetStore(nil)
	index := &countingIndex{IndexSink: memory.NewIndexStore("github-repos")}

	report := NewSynchronizer(sheet, index, sheetsConfig(), "github-repos").Sync(context.Background(), domain.WorkItem{
		Row:   5,
		Input: domain.Input{URL: "https://github.com/a/b/c"},
		Err:   domain.ErrInvalidURL,
	})

	assert.True(t, report.Failed())
	assert.Equal(t, domain.StageTabulated, report.Stage)
	assert.Equal(t, 0, index.existsCalls)
	assert.Equal(t, []memory.CellWrite{
		{Sheet: "Results", Column: "C", Row: 5, Values: []string{"Error: invalid GitHub URL"}},
	}, sheet.Writes())
}

func TestSynchronizer_EmptyRecordNeverReachesSinks(t *testing.T) {
	sheet := memory.NewSheetStore(nil)
	index := &countingIndex{IndexSink: memory.NewIndexStore("github-repos")}

	report := NewSynchronizer(sheet, index, sheetsConfig(), "github-repos").
		Sync(context.Background(), domain.WorkItem{Row: 2, Record: &domain.OutputRecord{}})

	assert.ErrorIs(t, report.Err, domain.ErrEmptyRecord)
	assert.Equal(t, 0, index.ingestCalls)
	require.Len(t, sheet.Writes(), 1)
	assert.Equal(t, []string{"Error: empty record"}, sheet.Writes()[0].Values)
}

func TestSynchronizer_ExpandedOwnerWrittenFirst(t *testing.T) {
	sheet := memory.NewSheetStore(nil)

	NewSynchronizer(sheet, memory.NewIndexStore("github-repos"), sheetsConfig(), "github-repos").
		Sync(context.Background(), domain.WorkItem{
			Row:    6,
			Input:  domain.Input{Origin: "Submissions"},
			Owner:  "acme",
			Record: sampleRecord("abc"),
		})

	writes := sheet.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, memory.CellWrite{Sheet: "Results", Column: "A", Row: 6, Values: []string{"acme", "Submissions"}}, writes[0])
	assert.Equal(t, "C", writes[1].Column)
}

func TestSynchronizer_IngestFailureContinues(t *testing.T) {
	sheet := memory.NewSheetStore(nil)
	index := &countingIndex{IndexSink: memory.NewIndexStore("github-repos"), ingestErr: errors.New("ingest failed: 500")}
	sync := NewSynchronizer(sheet, index, sheetsConfig(), "github-repos")

	report := sync.Sync(context.Background(), domain.WorkItem{Row: 2, Record: sampleRecord("abc")})
	assert.Error(t, report.IngestErr)
	assert.False(t, report.Ingested)
	assert.True(t, report.Failed())
	assert.Equal(t, domain.StageTabulated, report.Stage)
	require.Len(t, sheet.Writes(), 1)
	assert.Equal(t, memory.CellWrite{
		Sheet:  "Results",
		Column: "C",
		Row:    2,
		Values: []string{"Error: ingest failed: 500"},
	}, sheet.Writes()[0])

	// A failed ingest is not remembered, so a later item may try again.
	index.ingestErr = nil
	again := sync.Sync(context.Background(), domain.WorkItem{Row: 3, Record: sampleRecord("abc")})
	assert.True(t, again.Ingested)
	assert.Equal(t, 2, index.ingestCalls)
}

func TestSynchronizer_ExistsCheckFailureSkipsIngest(t *testing.T) {
	index := &countingIndex{IndexSink: memory.NewIndexStore("github-repos"), existsErr: errors.New("es down")}

	report := NewSynchronizer(memory.NewSheetStore(nil), index, sheetsConfig(), "github-repos").
		Sync(context.Background(), domain.WorkItem{Row: 2, Record: sampleRecord("abc")})

	assert.Equal(t, 0, index.ingestCalls)
	assert.Error(t, report.IngestErr)
	assert.Equal(t, domain.StageTabulated, report.Stage)
}

func TestSynchronizer_SheetFailureReported(t *testing.T) {
	sheet := &failingSheet{err: errors.New("quota")}

	report := NewSynchronizer(sheet, memory.NewIndexStore("github-repos"), sheetsConfig(), "github-repos").
		Sync(context.Background(), domain.WorkItem{Row: 2, Record: sampleRecord("abc")})

	assert.True(t, report.Ingested)
	assert.Error(t, report.SheetErr)
	assert.Equal(t, domain.StageIngested, report.Stage)
}
