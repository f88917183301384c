package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "reposcout.toml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default values",
	Long: `Writes the default configuration to path (default reposcout.toml).
An existing file is never overwritten. Secrets are left empty; set them in
the file or through the environment.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if configWriter == nil {
		return errors.New("config writer not configured")
	}

	path := defaultConfigPath
	if len(args) > 0 {
		path = args[0]
	}
	if err := configWriter(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}
