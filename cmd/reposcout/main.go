// Command reposcout scans GitHub repositories for a keyword vocabulary and
// synchronises the results into a spreadsheet and a search index.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	configfile "github.com/custodia-labs/reposcout/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reposcout/internal/adapters/driven/ingest"
	"github.com/custodia-labs/reposcout/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/reposcout/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reposcout/internal/adapters/driving/cli"
	"github.com/custodia-labs/reposcout/internal/connectors/github"
	"github.com/custodia-labs/reposcout/internal/connectors/google"
	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
	"github.com/custodia-labs/reposcout/internal/core/ports/driving"
	"github.com/custodia-labs/reposcout/internal/core/services"
	"github.com/custodia-labs/reposcout/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetConfigWriter(configfile.WriteDefault)
	cli.SetOrchestratorFactory(buildPipeline)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildPipeline loads the configuration and wires the connectors and sinks
// into a pipeline.
func buildPipeline(ctx context.Context, opts cli.Options) (driving.SyncOrchestrator, error) {
	cfg, err := configfile.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateScan(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger.Debug("Run ID: %s", runID)

	api, err := github.NewClient(ctx, cfg.GitHub)
	if err != nil {
		return nil, err
	}

	var (
		sheet driven.SpreadsheetSink
		index driven.IndexSink
	)
	if opts.DryRun {
		sheet, index = dryRunSinks(ctx, cfg)
	} else {
		if err := cfg.ValidateSinks(); err != nil {
			return nil, err
		}
		store, err := newSheetStore(ctx, cfg.Sheets)
		if err != nil {
			return nil, err
		}
		sheet = store
		index = ingest.NewSink(cfg.Ingest, runID, logger.Named("ingest"))
	}

	results := file.NewResultStore(cfg.Output.ResultsFile)
	return services.NewPipeline(cfg, api, sheet, index, results, runID), nil
}

func newSheetStore(ctx context.Context, sc domain.SheetsConfig) (*google.SheetStore, error) {
	svc, err := google.NewSheetsService(ctx, sc.CredentialsFile)
	if err != nil {
		return nil, err
	}
	return google.NewSheetStore(svc, sc.SpreadsheetID), nil
}

// dryRunSinks returns in-memory sinks. Input rows are still read from the
// real spreadsheet when one is configured and reachable.
func dryRunSinks(ctx context.Context, cfg domain.Config) (driven.SpreadsheetSink, driven.IndexSink) {
	var source driven.SpreadsheetSink
	if cfg.Sheets.SpreadsheetID != "" {
		store, err := newSheetStore(ctx, cfg.Sheets)
		if err != nil {
			logger.Warn("Spreadsheet unavailable in dry run: %v", err)
		} else {
			source = store
		}
	}
	return memory.NewSheetStore(source), memory.NewIndexStore(cfg.Ingest.Index)
}
