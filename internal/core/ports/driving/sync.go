package driving

import (
	"context"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// SyncOrchestrator runs the scan and synchronisation pipeline.
type SyncOrchestrator interface {
	// SyncSheet processes every repository listed in the input spreadsheet.
	SyncSheet(ctx context.Context) (*domain.RunSummary, error)

	// SyncSearch processes every repository discovered by code search.
	SyncSearch(ctx context.Context) (*domain.RunSummary, error)

	// SyncURLs processes the given URLs in order.
	SyncURLs(ctx context.Context, urls []string, origin string) (*domain.RunSummary, error)

	// Status returns the progress of the running pipeline.
	Status(ctx context.Context) (*SyncStatus, error)
}

// SyncStatus represents the current state of a pipeline run.
type SyncStatus struct {
	// RunID identifies the run.
	RunID string

	// Running indicates if a run is currently in progress.
	Running bool

	// RowsProcessed is the count of spreadsheet rows written or attempted.
	RowsProcessed int

	// ErrorCount is the number of rows that ended in an error.
	ErrorCount int

	// Current is the repository being processed.
	Current string
}
