package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
	"github.com/custodia-labs/reposcout/internal/core/ports/driving"
	"github.com/custodia-labs/reposcout/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.SyncOrchestrator = (*Pipeline)(nil)

// ErrRunInProgress is returned when a run is started while another is active.
var ErrRunInProgress = errors.New("a run is already in progress")

// Pipeline routes inputs through classification, scanning, provenance and
// the synchroniser, one repository at a time.
type Pipeline struct {
	cfg     domain.Config
	sheet   driven.SpreadsheetSink
	index   driven.IndexSink
	results driven.ResultStore

	scanner    *TreeScanner
	provenance *Provenance
	enumerator *Enumerator
	search     *CodeSearch

	runID string
	now   func() time.Time

	// Status tracking
	mu     sync.RWMutex
	status *driving.SyncStatus
}

// NewPipeline creates a pipeline. An empty runID is replaced by a new UUID.
// results may be nil, in which case nothing is persisted.
func NewPipeline(
	cfg domain.Config,
	api driven.GitHubAPI,
	sheet driven.SpreadsheetSink,
	index driven.IndexSink,
	results driven.ResultStore,
	runID string,
) *Pipeline {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Pipeline{
		cfg:        cfg,
		sheet:      sheet,
		index:      index,
		results:    results,
		scanner:    NewTreeScanner(api),
		provenance: NewProvenance(api),
		enumerator: NewEnumerator(api),
		search:     NewCodeSearch(api),
		runID:      runID,
		now:        time.Now,
	}
}

// RunID returns the identifier attached to this pipeline's runs.
func (p *Pipeline) RunID() string {
	return p.runID
}

// SyncSheet processes every URL in the input column of the read sheet.
func (p *Pipeline) SyncSheet(ctx context.Context) (*domain.RunSummary, error) {
	if err := p.cfg.ValidateSheetInput(); err != nil {
		return nil, err
	}
	sc := p.cfg.Sheets

	raw, err := p.sheet.ReadColumns(ctx, sc.ReadSheet, sc.ReadRange)
	if err != nil {
		return nil, fmt.Errorf("read input sheet: %w", err)
	}
	columns := RenameColumns(raw, sc.ColumnRules)

	urls := columns[sc.InputColumn]
	logger.Info("Read %d rows from %s", len(urls), sc.ReadSheet)

	inputs := make([]domain.Input, len(urls))
	for i, u := range urls {
		inputs[i] = domain.Input{URL: u, Origin: sc.ReadSheet, DataRow: i}
	}
	return p.process(ctx, inputs, columns)
}

// SyncSearch processes every repository found by the configured code
// search queries.
func (p *Pipeline) SyncSearch(ctx context.Context) (*domain.RunSummary, error) {
	urls := p.search.Search(ctx, p.cfg.Search.Queries, p.cfg.Search.Exclude)
	logger.Info("Code search found %d repositories", len(urls))
	return p.SyncURLs(ctx, urls, p.cfg.Search.Origin)
}

// SyncURLs processes urls in order with the given origin.
func (p *Pipeline) SyncURLs(ctx context.Context, urls []string, origin string) (*domain.RunSummary, error) {
	inputs := make([]domain.Input, len(urls))
	for i, u := range urls {
		inputs[i] = domain.Input{URL: u, Origin: origin, DataRow: -1}
	}
	return p.process(ctx, inputs, nil)
}

// Status returns the progress of the current run.
func (p *Pipeline) Status(_ context.Context) (*driving.SyncStatus, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.status == nil {
		return &driving.SyncStatus{RunID: p.runID}, nil
	}
	// Return a copy to avoid race conditions
	s := *p.status
	return &s, nil
}

// process runs inputs sequentially. Rows start at the configured start row
// and advance once per routed repository or invalid input.
func (p *Pipeline) process(ctx context.Context, inputs []domain.Input, columns domain.Columns) (*domain.RunSummary, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	defer p.finish()

	runLog := logger.Named("pipeline").With("run_id", p.runID)
	runLog.Info("run started", "inputs", len(inputs))

	summary := &domain.RunSummary{RunID: p.runID}
	sink := NewSynchronizer(p.sheet, p.index, p.cfg.Sheets, p.cfg.Ingest.Index)
	row := p.cfg.Sheets.StartRow

	emit := func(item domain.WorkItem) {
		report := sink.Sync(ctx, item)
		summary.Reports = append(summary.Reports, report)
		if item.Record != nil {
			summary.Records = append(summary.Records, *item.Record)
		}
		p.progress(report)
		row++
	}

	var runErr error
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		logger.Section(fmt.Sprintf("Row %d", row))
		logger.Info("Reading row %d in %s: %s", row, in.Origin, in.URL)

		target := ClassifyURL(in.URL)
		switch target.Kind {
		case domain.TargetRepository:
			p.setCurrent(target.Repo.String())
			emit(p.buildItem(ctx, row, in, columns, target.Repo))

		case domain.TargetUser:
			logger.Info("Detected GitHub user/org: %s", target.User)
			repos := p.enumerator.Enumerate(ctx, target.User)
			logger.Info("Found %d repos for %s", len(repos), target.User)
			for _, u := range repos {
				if ctx.Err() != nil {
					break
				}
				t := ClassifyURL(u)
				if t.Kind != domain.TargetRepository {
					logger.Warn("Ignoring unroutable repository URL %s of %s", u, target.User)
					continue
				}
				p.setCurrent(t.Repo.String())
				scan, scanErr := p.scanner.Scan(ctx, t.Repo, p.cfg.Scan)
				if scanErr == nil && p.cfg.Scan.SkipUnmatchedExpanded && scan.Keywords.Matches() == 0 {
					logger.Info("No keyword matches in %s, skipping", t.Repo)
					continue
				}
				item := p.itemFromScan(ctx, row, in, columns, t.Repo, scan, scanErr)
				item.Owner = target.User
				emit(item)
			}

		default:
			logger.Warn("Invalid GitHub URL: %s", in.URL)
			emit(domain.WorkItem{
				Row:   row,
				Input: in,
				Err:   domain.ErrInvalidURL,
			})
		}
	}

	if p.results != nil {
		if err := p.results.SaveAll(context.WithoutCancel(ctx), summary.Records); err != nil {
			runLog.Error("saving results failed", "error", err)
			runErr = errors.Join(runErr, fmt.Errorf("save results: %w", err))
		}
	}

	ingested, failed, duplicates := summary.Counts()
	runLog.Info("run finished", "rows", len(summary.Reports), "ingested", ingested,
		"failed", failed, "duplicates", duplicates)
	return summary, runErr
}

// buildItem scans ref and resolves its provenance.
func (p *Pipeline) buildItem(ctx context.Context, row int, in domain.Input, columns domain.Columns,
	ref domain.RepositoryRef) domain.WorkItem {
	scan, err := p.scanner.Scan(ctx, ref, p.cfg.Scan)
	return p.itemFromScan(ctx, row, in, columns, ref, scan, err)
}

// itemFromScan completes a work item from a finished scan. A scan failure
// becomes the item's error; a provenance failure falls back to a commit
// without SHA.
func (p *Pipeline) itemFromScan(ctx context.Context, row int, in domain.Input, columns domain.Columns,
	ref domain.RepositoryRef, scan *domain.ScanResult, scanErr error) domain.WorkItem {
	item := domain.WorkItem{Row: row, Input: in, Repo: ref}
	if scanErr != nil {
		logger.Warn("Scan of %s failed: %v", ref, scanErr)
		item.Err = scanErr
		return item
	}

	commit, err := p.provenance.Resolve(ctx, ref)
	if err != nil {
		logger.Warn("Commit lookup for %s failed, using fallback: %v", ref, err)
		commit = domain.FallbackCommit(p.now())
	}

	record := BuildRecord(ref, commit, scan, in.Origin)
	if columns != nil && in.DataRow >= 0 {
		record.Backfill(columns, p.cfg.Sheets.EnrichFields, in.DataRow)
	}
	item.Record = &record
	return item
}

func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != nil && p.status.Running {
		return ErrRunInProgress
	}
	p.status = &driving.SyncStatus{RunID: p.runID, Running: true}
	return nil
}

func (p *Pipeline) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Running = false
	p.status.Current = ""
}

func (p *Pipeline) setCurrent(repo string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Current = repo
}

func (p *Pipeline) progress(report domain.SyncReport) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.RowsProcessed++
	if report.Failed() {
		p.status.ErrorCount++
	}
}
