package main

import "github.com/spf13/cobra"

var (
	dryRunFlag    bool
	contextFormat string
)

var rootCmd = &cobra.Command{
	Use:   "vercel-action",
	Short: "Deploy previews to Vercel from GitHub Actions",
	Long:  "vercel-action deploys the checked-out tree to Vercel and reports the preview back to the pull request as a comment, a deployment record, and step outputs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeploy(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "Resolve the argument vector without deploying or writing anywhere")

	registerDeployCommand(rootCmd)
	registerCheckCommand(rootCmd)
	registerContextCommand(rootCmd)
}
