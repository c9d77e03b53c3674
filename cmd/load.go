package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// loadCmd copies landed snapshots into the raw staging tables.
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load landed snapshots into the raw staging tables",
	Long:  `Load replaces the raw staging rows of the processing date with the landed JSON objects.`,
}

var loadLeaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Load landed leaderboards into raw_pvp_leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return a.loadLeaderboard(ctx)
		})
	},
}

var loadCharactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Load the landed profile snapshot into raw_chinfo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return a.loadCharacters(ctx)
		})
	},
}

func init() {
	loadCmd.AddCommand(loadLeaderboardCmd, loadCharactersCmd)
	RootCmd.AddCommand(loadCmd)
}
