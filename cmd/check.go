package cmd

import (
	"context"
	"fmt"

	"pvp-pipeline/core/storage"
	"pvp-pipeline/core/warehouse"
	"pvp-pipeline/feature/integrity"
	"pvp-pipeline/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// checkCmd verifies staging, warehouse and landing state.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check staging and warehouse schemas and the landing bucket",
	Long: `Check compares the staging and warehouse tables with the models the pipeline
writes, and lists the landing objects missing for the processing date.
Without a subcommand every check runs. Any failed check makes the command exit non-zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			svc, err := a.integrityService(true)
			if err != nil {
				return err
			}
			failed := 0
			if !a.reportSchema("staging", svc.CheckStaging) {
				failed++
			}
			if !a.reportSchema("warehouse", svc.CheckWarehouse) {
				failed++
			}
			if !a.reportLanding(ctx, svc) {
				failed++
			}
			if failed > 0 {
				return fmt.Errorf("%d checks failed", failed)
			}
			return nil
		})
	},
}

var checkStagingCmd = &cobra.Command{
	Use:   "staging",
	Short: "Check the staging tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			svc, err := a.integrityService(false)
			if err != nil {
				return err
			}
			if !a.reportSchema("staging", svc.CheckStaging) {
				return fmt.Errorf("staging check failed")
			}
			return nil
		})
	},
}

var checkWarehouseCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "Check the warehouse star schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			svc, err := a.integrityService(true)
			if err != nil {
				return err
			}
			if !a.reportSchema("warehouse", svc.CheckWarehouse) {
				return fmt.Errorf("warehouse check failed")
			}
			return nil
		})
	},
}

var checkLandingCmd = &cobra.Command{
	Use:   "landing",
	Short: "List landing objects missing for the processing date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			svc, err := a.integrityService(false)
			if err != nil {
				return err
			}
			if !a.reportLanding(ctx, svc) {
				return fmt.Errorf("landing check failed")
			}
			return nil
		})
	},
}

func init() {
	checkCmd.AddCommand(checkStagingCmd, checkWarehouseCmd, checkLandingCmd)
	RootCmd.AddCommand(checkCmd)
}

// integrityService builds the check service. It never creates the bucket or
// migrates the warehouse, so a check leaves the stores as it found them.
func (a *app) integrityService(withWarehouse bool) (*integrity.Service, error) {
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	var dw *gorm.DB
	if withWarehouse {
		if dw, err = warehouse.Connect(a.cfg.Warehouse); err != nil {
			return nil, err
		}
	}
	return integrity.NewService(client, a.cfg.Storage, a.staging, dw, a.cfg.Pipeline.BracketList(), a.log), nil
}

// reportSchema logs a schema report and returns whether it matched.
func (a *app) reportSchema(name string, check func() (*checks.SchemaReport, error)) bool {
	l := a.log.With(zap.String("check", name))
	l.Info("Checking schema")
	report, err := check()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return false
	}
	if report.Matched {
		l.Info("Schema matches the models")
		return true
	}

	l.Warn("Schema mismatches found")
	for _, table := range report.TableNames() {
		tbl := report.Tables[table]
		if tbl.Status == "ok" {
			continue
		}
		if len(tbl.MissingColumns) > 0 {
			l.Warn("Missing columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
		}
		if len(tbl.TypeMismatches) > 0 {
			l.Warn("Type mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
		}
		if tbl.Status == "missing" {
			l.Warn("Table missing", zap.String("table", table))
		}
	}
	for _, e := range report.Errors {
		l.Error("Inspection error", zap.String("error", e))
	}
	return false
}

// reportLanding logs the landing objects missing for the app date.
func (a *app) reportLanding(ctx context.Context, svc *integrity.Service) bool {
	l := a.log.With(zap.String("check", "landing"))
	l.Info("Checking landing objects")
	missing, err := svc.CheckLanding(ctx, a.date)
	if err != nil {
		l.Error("Landing check failed", zap.Error(err))
		return false
	}
	if len(missing) > 0 {
		l.Warn("Missing landing objects", zap.Strings("missing", missing))
		return false
	}
	l.Info("Landing objects are present")
	return true
}
