package cmd

import (
	"fmt"
	"os"

	"pvp-pipeline/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// processDate is the --date flag shared by every batch command.
var processDate string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pvp-pipeline",
	Short: "Daily PvP ladder batch pipeline",
	Long: `pvp-pipeline extracts the PvP ladder from the game API into a landing bucket,
stages and curates it, enriches the top characters with their profiles and
publishes dated snapshots to the analytical warehouse.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config for readable CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&processDate, "date", "", "Processing date as YYYYMMDD (default: today)")
}
