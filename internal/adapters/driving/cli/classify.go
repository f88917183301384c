package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/services"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <url>",
	Short: "Show how a URL would be routed",
	Long: `Prints whether the URL names a user or organisation, a repository,
or nothing that can be scanned. Nothing is fetched.`,
	Args: cobra.ExactArgs(1),
	Run:  runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) {
	target := services.ClassifyURL(args[0])
	switch target.Kind {
	case domain.TargetUser:
		cmd.Printf("user: %s\n", target.User)
	case domain.TargetRepository:
		cmd.Printf("repository: %s\n", target.Repo.FullName())
	default:
		cmd.Printf("invalid: %s\n", args[0])
	}
}
