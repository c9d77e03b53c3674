package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// ReconcileWithPlan performs reconciliation and returns a plan with results and actions.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec, date string, opts ReconcileOptions) (*ReconcilePlan, error) {
	cache, err := GetOrBuildCache(ctx, spec, date)
	if err != nil {
		return nil, err
	}

	results := reconcileFromCache(cache, spec)
	summary, actions := buildPlanFromResults(date, results, spec, opts)

	return &ReconcilePlan{
		Date:    date,
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions in a reconcile plan in order.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, spec *Spec, repairer Repairer, plan *ReconcilePlan, opts ReconcileOptions) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if repairer == nil {
		return 0, fmt.Errorf("no repairer configured")
	}

	defer InvalidateCache(spec, plan.Date)

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionReloadStaging:
			err = repairer.ReloadStaging(ctx, action.Date)
		case ActionRepublish:
			err = repairer.Republish(ctx, action.Date)
		default:
			err = fmt.Errorf("unknown action type %s", action.Type)
		}
		if err != nil {
			return executed, fmt.Errorf("failed to %s %s: %w", action.Type, action.Date, err)
		}
		executed++
	}

	return executed, nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies actions.
// It returns the plan, number of actions executed, and any error.
func ReconcileAndApply(ctx context.Context, spec *Spec, repairer Repairer, date string, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, date, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, repairer, plan, opts)
	return plan, executed, err
}

// buildPlanFromResults generates a summary and action plan from reconciliation results.
func buildPlanFromResults(date string, results []ReconcileResult, spec *Spec, opts ReconcileOptions) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	reload, republish := 0, 0
	for _, result := range results {
		// landing_missing: downstream rows with no landed origin
		if (result.StagingPresent || result.WarehousePresent) && !result.LandingPresent {
			summary.MissingLanding++
			if result.StagingPresent {
				reload++
			}
		}

		// staging_missing: landed but never staged
		if result.LandingPresent && !result.StagingPresent {
			summary.MissingStaging++
			reload++
		}

		// warehouse_missing: landed or staged but never published
		if (result.LandingPresent || result.StagingPresent) && !result.WarehousePresent {
			summary.MissingWarehouse++
			republish++
		}

		if result.WarehousePresent && !result.StagingPresent && !result.LandingPresent {
			republish++
		}

		if len(result.Mismatch) > 0 {
			summary.Mismatches++
			if result.LandingPresent && result.StagingPresent && hasPrefixedMismatch(result.Mismatch, spec.Landing.Name()) {
				reload++
			}
			if result.WarehousePresent {
				republish++
			}
		}
	}

	if !opts.DoRepair {
		return summary, nil
	}

	// A reload changes staging, so the warehouse is republished after it
	if reload > 0 {
		actions = append(actions, Action{
			Type:   ActionReloadStaging,
			Date:   date,
			Reason: fmt.Sprintf("%d entities differ between %s and %s", reload, spec.Landing.Name(), spec.Staging.Name()),
		})
	}
	if reload > 0 || republish > 0 {
		actions = append(actions, Action{
			Type:   ActionRepublish,
			Date:   date,
			Reason: fmt.Sprintf("%d entities differ in %s", republish, spec.Warehouse.Name()),
		})
	}

	return summary, actions
}

// hasPrefixedMismatch reports whether any mismatch names source as one side.
func hasPrefixedMismatch(mismatches []string, source string) bool {
	for _, m := range mismatches {
		if strings.Contains(m, " "+source+"=") {
			return true
		}
	}
	return false
}
