package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
	"github.com/custodia-labs/reposcout/internal/logger"
)

// ErrorCellPrefix starts the text written to a row's data cell on failure.
const ErrorCellPrefix = "Error: "

// Synchronizer writes work items to the index and spreadsheet sinks.
// It remembers the commits it ingested, so one instance must serve exactly
// one run.
type Synchronizer struct {
	sheet     driven.SpreadsheetSink
	index     driven.IndexSink
	cfg       domain.SheetsConfig
	indexName string
	ingested  map[string]struct{}
}

// NewSynchronizer creates a synchroniser for one run.
func NewSynchronizer(sheet driven.SpreadsheetSink, index driven.IndexSink, cfg domain.SheetsConfig, indexName string) *Synchronizer {
	return &Synchronizer{
		sheet:     sheet,
		index:     index,
		cfg:       cfg,
		indexName: indexName,
		ingested:  make(map[string]struct{}),
	}
}

// Sync ingests item's record unless its commit is unknown or already
// indexed, then writes the spreadsheet row. A failed ingest turns the row
// into an error cell. Sink failures are logged and reported; they never
// stop the run.
func (s *Synchronizer) Sync(ctx context.Context, item domain.WorkItem) domain.SyncReport {
	report := domain.SyncReport{
		Row:   item.Row,
		Input: item.Input,
		Repo:  item.Repo,
		Stage: domain.StageScanned,
		Err:   item.Err,
	}

	if report.Err == nil && (item.Record == nil || item.Record.IsEmpty()) {
		report.Err = domain.ErrEmptyRecord
	}

	if report.Err == nil {
		report.Stage = domain.StageBuilt
		s.ingest(ctx, item.Record, &report)
	}

	s.tabulate(ctx, item, &report)
	return report
}

func (s *Synchronizer) ingest(ctx context.Context, record *domain.OutputRecord, report *domain.SyncReport) {
	id := record.DocumentID()
	if id == "" {
		logger.Debug("No commit for %s, skipping ingest", report.Repo)
		report.Stage = domain.StageChecked
		return
	}

	if _, ok := s.ingested[id]; ok {
		logger.Info("Commit %s already ingested this run, skipping", id)
		report.Stage = domain.StageChecked
		report.Duplicate = true
		return
	}

	exists, err := s.index.DocumentExists(ctx, s.indexName, id)
	report.Stage = domain.StageChecked
	if err != nil {
		logger.Warn("Could not check index for %s (%s), skipping ingest: %v", report.Repo, id, err)
		report.IngestErr = err
		return
	}
	if exists {
		logger.Info("Commit %s already indexed, skipping", id)
		report.Duplicate = true
		return
	}

	status, err := s.index.Ingest(ctx, record)
	if err != nil {
		// A rejected POST marks the row as failed; a failed exists check does not.
		logger.Error("Ingest of %s failed: %v", report.Repo, err)
		report.IngestErr = err
		report.Err = err
		return
	}
	s.ingested[id] = struct{}{}
	report.Ingested = true
	report.Stage = domain.StageIngested
	logger.Info("Ingest response: %s", status)
}

func (s *Synchronizer) tabulate(ctx context.Context, item domain.WorkItem, report *domain.SyncReport) {
	sheet := s.cfg.WriteSheet

	if item.Owner != "" {
		err := s.sheet.WriteRow(ctx, sheet, s.cfg.UserColumn, item.Row, []string{item.Owner, item.Input.Origin})
		if err != nil {
			logger.Error("Writing owner of row %d failed: %v", item.Row, err)
			report.SheetErr = err
			return
		}
	}

	if report.Err != nil {
		logger.Error("Error processing %s: %v", describe(item), report.Err)
		if err := s.sheet.WriteCell(ctx, sheet, s.cfg.DataColumn, item.Row, ErrorCellPrefix+report.Err.Error()); err != nil {
			logger.Error("Writing error to row %d failed: %v", item.Row, err)
			report.SheetErr = err
			return
		}
		report.Stage = domain.StageTabulated
		return
	}

	data, err := json.Marshal(item.Record)
	if err != nil {
		report.SheetErr = fmt.Errorf("encode record: %w", err)
		logger.Error("Encoding record of %s failed: %v", report.Repo, err)
		return
	}
	values := []string{string(data), item.Record.KeywordMatches, item.Record.SnapshotURL}
	if err := s.sheet.WriteRow(ctx, sheet, s.cfg.DataColumn, item.Row, values); err != nil {
		logger.Error("Writing row %d failed: %v", item.Row, err)
		report.SheetErr = err
		return
	}
	report.Stage = domain.StageTabulated
	logger.Info("Row %d updated", item.Row)
}

func describe(item domain.WorkItem) string {
	if item.Repo.Owner != "" {
		return item.Repo.String()
	}
	return item.Input.URL
}
