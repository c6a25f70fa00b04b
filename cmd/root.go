package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wanderpost",
		Short: "LLM-authored travel pages with an email approval loop",
		Long: `Wanderpost turns pending records from a hosted table store into
personalized HTML travel pages and emails them out for review.

Each page embeds approve and reject links; rejecting regenerates the page
(optionally revised with the reviewer's feedback) and resends it, while
approving publishes the page and marks the record approved.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSweepCmd())

	return cmd
}
