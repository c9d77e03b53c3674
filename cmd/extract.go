package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// extractCmd lands leaderboards and character profiles for a date.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract leaderboards and character profiles into the landing bucket",
	Long: `Extract fetches the current season leaderboard of every configured bracket
and lands one JSON object per bracket. Run without a subcommand it extracts
leaderboards only, since profile enrichment reads the curated leaderboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return a.extractLeaderboard(ctx)
		})
	},
}

var extractLeaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Extract the leaderboard of every configured bracket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return a.extractLeaderboard(ctx)
		})
	},
}

var extractCharactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Select top characters from the curated leaderboard and land their profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return a.extractCharacters(ctx)
		})
	},
}

func init() {
	extractCmd.AddCommand(extractLeaderboardCmd, extractCharactersCmd)
	RootCmd.AddCommand(extractCmd)
}
