package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"pvp-pipeline/core/reconcile"
	"pvp-pipeline/core/storage"
	"pvp-pipeline/feature/characters"
	"pvp-pipeline/feature/landing"
	"pvp-pipeline/feature/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	repairFlag     bool
	dryRunFlag     bool
	yesConfirm     bool
	jsonReportFlag string
)

// reconcileCmd compares the character snapshot across landing, staging and warehouse.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile characters between landing, staging and the warehouse",
	Long: `Reconcile compares the characters of the processing date as landed, staged
and published. It reports missing entities and field mismatches, and with
--repair reloads staging and republishes the snapshot.

Examples:
  # Report only
  pvp-pipeline reconcile --date 20250115

  # Repair with interactive confirmation
  pvp-pipeline reconcile --repair

  # Repair without prompting
  pvp-pipeline reconcile --repair --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), runReconcile)
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&repairFlag, "repair", false, "Reload staging and republish the dates that disagree")
	reconcileCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Plan repairs without executing them, even with --yes")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Confirm repairs without prompting")
	reconcileCmd.Flags().StringVar(&jsonReportFlag, "json", "", "Write the entities with issues to this file")
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(ctx context.Context, a *app) error {
	// Reading the landing snapshot must not create the bucket
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}
	store := landing.NewStore(client, a.cfg.Storage.Bucket, a.cfg.Storage.LandingPrefix)

	dw, err := a.warehouseDB(ctx)
	if err != nil {
		return err
	}

	spec := &reconcile.Spec{
		Landing:   characters.NewLandingSource(store),
		Staging:   characters.NewStagingSource(a.staging),
		Warehouse: snapshot.NewWarehouseSource(dw),
		Fields:    characters.ReconcileFields,
		CacheTTL:  time.Minute,
	}
	opts := reconcile.ReconcileOptions{DoRepair: repairFlag, DryRun: dryRunFlag}

	a.log.Info("Planning reconciliation")
	plan, err := reconcile.ReconcileWithPlan(ctx, spec, a.date, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printReconcileReport(a.log, plan)

	if jsonReportFlag != "" {
		if err := writeReconcileIssues(jsonReportFlag, plan.Results); err != nil {
			return err
		}
		a.log.Info("Issues report saved", zap.String("file", jsonReportFlag))
	}

	if !repairFlag {
		if !plan.Summary.Clean() {
			a.log.Info("Run with --repair to reload staging and republish")
		}
		return nil
	}
	if len(plan.Actions) == 0 {
		a.log.Info("No repairs required")
		return nil
	}
	if dryRunFlag {
		a.log.Info("Dry-run mode: no changes were made")
		return nil
	}

	if !confirmRepair() {
		a.log.Warn("Operation cancelled, no changes were made")
		return nil
	}
	opts.Confirmed = true

	a.log.Info("Applying repairs")
	executed, err := reconcile.ApplyPlan(ctx, spec, a, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	a.log.Info("Repairs applied", zap.Int("count", executed))
	return nil
}

// printReconcileReport logs the plan summary and a sample of mismatches.
func printReconcileReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary
	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_landing", s.MissingLanding),
		zap.Int("missing_staging", s.MissingStaging),
		zap.Int("missing_warehouse", s.MissingWarehouse),
		zap.Int("mismatches", s.Mismatches),
	)

	const maxShow = 5
	shown := 0
	for _, r := range plan.Results {
		if len(r.Mismatch) == 0 {
			continue
		}
		if shown == maxShow {
			l.Info("Additional mismatches not shown", zap.Int("count", s.Mismatches-maxShow))
			break
		}
		l.Info("Sample mismatch", zap.String("id", r.ID), zap.String("name", r.Name), zap.Strings("fields", r.Mismatch))
		shown++
	}

	for _, action := range plan.Actions {
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.String("date", action.Date),
			zap.String("reason", action.Reason),
		)
	}
}

// writeReconcileIssues saves the entities that are missing somewhere or mismatch.
func writeReconcileIssues(path string, results []reconcile.ReconcileResult) error {
	issues := make([]reconcile.ReconcileResult, 0)
	for _, r := range results {
		if r.LandingPresent && r.StagingPresent && r.WarehousePresent && len(r.Mismatch) == 0 {
			continue
		}
		issues = append(issues, r)
	}
	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// confirmRepair prompts for confirmation unless --yes was given.
func confirmRepair() bool {
	if yesConfirm {
		fmt.Println("Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("Type 'yes' to reload staging and republish: ")
	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
