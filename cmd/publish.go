package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// publishCmd appends the curated snapshot of a date to the warehouse.
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the curated snapshot to the warehouse",
	Long: `Publish applies pending warehouse migrations, then writes the character
versions and leaderboard facts of the processing date. Dimension rows for new
seasons and brackets are added on the way.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return a.publish(ctx)
		})
	},
}

func init() {
	RootCmd.AddCommand(publishCmd)
}
