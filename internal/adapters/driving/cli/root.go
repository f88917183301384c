// Package cli implements the reposcout command line interface on cobra.
//
// Commands reach the core only through the driving ports. The composition
// root supplies them with SetOrchestratorFactory and SetConfigWriter before
// calling Execute.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposcout/internal/core/ports/driving"
	"github.com/custodia-labs/reposcout/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options carries the global flags to the composition root.
type Options struct {
	// ConfigPath is the TOML file to load. Empty means the default file.
	ConfigPath string

	// Verbose enables debug logging.
	Verbose bool

	// DryRun replaces the spreadsheet and ingest sinks with in-memory ones.
	DryRun bool
}

// OrchestratorFactory builds the pipeline for one command invocation.
type OrchestratorFactory func(ctx context.Context, opts Options) (driving.SyncOrchestrator, error)

var (
	orchestratorFactory OrchestratorFactory
	configWriter        func(path string) error
	opts                Options
)

var rootCmd = &cobra.Command{
	Use:   "reposcout",
	Short: "Scan GitHub repositories and sync the results",
	Long: `reposcout discovers GitHub repositories from a spreadsheet or from
code search, counts keyword matches in their files, records the latest
commit and writes the result to a spreadsheet and a search index.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(opts.Verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "path to the TOML config file (default reposcout.toml)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "do not write to the spreadsheet or the search index")
}

// SetOrchestratorFactory sets the factory used by the run commands.
func SetOrchestratorFactory(f OrchestratorFactory) {
	orchestratorFactory = f
}

// SetConfigWriter sets the function used by "config init".
func SetConfigWriter(f func(path string) error) {
	configWriter = f
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func newOrchestrator(ctx context.Context) (driving.SyncOrchestrator, error) {
	if orchestratorFactory == nil {
		return nil, errors.New("pipeline not configured")
	}
	return orchestratorFactory(ctx, opts)
}
