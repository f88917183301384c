package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

var scanOrigin string

var scanCmd = &cobra.Command{
	Use:   "scan [url...]",
	Short: "Scan the repositories listed in the input spreadsheet",
	Long: `Reads repository and user URLs from the configured input sheet,
scans every repository and writes one result row per repository.

When URLs are given as arguments they are processed instead of the
spreadsheet, tagged with the --origin value.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanOrigin, "origin", "cli", "origin recorded for URLs given as arguments")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	orch, err := newOrchestrator(ctx)
	if err != nil {
		return err
	}

	var run runFunc
	if len(args) > 0 {
		cmd.Printf("Scanning %d repositories...\n", len(args))
		run = func(ctx context.Context) (*domain.RunSummary, error) {
			return orch.SyncURLs(ctx, args, scanOrigin)
		}
	} else {
		cmd.Println("Scanning repositories from the input sheet...")
		run = orch.SyncSheet
	}

	summary, err := runWithProgress(ctx, cmd, orch, run)
	if err != nil {
		err = fmt.Errorf("scan failed: %w", err)
	}
	return finishRun(cmd, summary, err)
}
