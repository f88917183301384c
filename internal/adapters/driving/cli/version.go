package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build details",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cmd.Printf("reposcout version %s\n", version)
	cmd.Printf("  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	cmd.Printf("  config: %s\n", configPath)
}
