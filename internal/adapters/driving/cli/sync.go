package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driving"
)

// progressInterval is how often a running pipeline is polled for status.
var progressInterval = 500 * time.Millisecond

type runFunc func(ctx context.Context) (*domain.RunSummary, error)

// runWithProgress runs fn while displaying progress updates.
func runWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	orch driving.SyncOrchestrator,
	fn runFunc,
) (*domain.RunSummary, error) {
	type result struct {
		summary *domain.RunSummary
		err     error
	}

	// Start run in goroutine
	done := make(chan result, 1)
	go func() {
		s, err := fn(ctx)
		done <- result{summary: s, err: err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case r := <-done:
			if lastCount > 0 {
				cmd.Println()
			}
			return r.summary, r.err
		case <-ticker.C:
			// Best effort, a status error only skips this update
			status, err := orch.Status(ctx)
			if err == nil && status != nil && status.RowsProcessed > lastCount {
				cmd.Printf("\rProcessed %d rows (%d errors) %s", status.RowsProcessed, status.ErrorCount, status.Current)
				lastCount = status.RowsProcessed
			}
		}
	}
}

// finishRun prints the summary of a run. A run that failed part way still
// prints what it completed before the error is returned.
func finishRun(cmd *cobra.Command, summary *domain.RunSummary, err error) error {
	if summary != nil {
		printSummary(cmd, summary)
	}
	return err
}
