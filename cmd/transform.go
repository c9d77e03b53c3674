package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// transformCmd rebuilds curated staging tables from raw ones.
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Build curated staging tables from the raw ones",
	Long:  `Transform casts raw text columns into typed columns; values that do not parse become NULL.`,
}

var transformLeaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Build cur_pvp_leaderboard for the processing date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return a.transformLeaderboard(ctx)
		})
	},
}

var transformCharactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Build cur_chinfo for the processing date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return a.transformCharacters(ctx)
		})
	},
}

func init() {
	transformCmd.AddCommand(transformLeaderboardCmd, transformCharactersCmd)
	RootCmd.AddCommand(transformCmd)
}
