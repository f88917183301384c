package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Scan repositories found by GitHub code search",
	Long: `Runs the configured code search queries, drops excluded owners and
scans every repository found. Results are written like the scan command.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	orch, err := newOrchestrator(ctx)
	if err != nil {
		return err
	}

	cmd.Println("Searching GitHub code...")
	summary, err := runWithProgress(ctx, cmd, orch, orch.SyncSearch)
	if err != nil {
		err = fmt.Errorf("search failed: %w", err)
	}
	return finishRun(cmd, summary, err)
}
