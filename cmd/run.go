package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var skipPublish bool

// runCmd executes the whole daily pipeline.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daily pipeline end to end",
	Long: `Run extracts, loads and transforms the leaderboard, then enriches the top
characters and stages their profiles, and finally publishes the snapshot.
Metrics are pushed to the pushgateway at the end, whether the run failed or not.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withApp(ctx, func(ctx context.Context, a *app) error {
			start := time.Now()
			a.log.Info("Daily run started")

			steps := []func(context.Context) error{
				a.extractLeaderboard,
				a.loadLeaderboard,
				a.transformLeaderboard,
				a.extractCharacters,
				a.loadCharacters,
				a.transformCharacters,
			}
			if !skipPublish {
				steps = append(steps, a.publish)
			}

			// Pushing uses its own context so a cancelled run still reports
			defer a.pushMetrics(context.WithoutCancel(ctx))

			for _, step := range steps {
				if err := step(ctx); err != nil {
					a.log.Error("Daily run failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
					return err
				}
			}

			a.rec.MarkSuccess(time.Now())
			a.log.Info("Daily run finished", zap.Duration("elapsed", time.Since(start)))
			return nil
		})
	},
}

func init() {
	runCmd.Flags().BoolVar(&skipPublish, "skip-publish", false, "Stop after staging, without writing to the warehouse")
	RootCmd.AddCommand(runCmd)
}
