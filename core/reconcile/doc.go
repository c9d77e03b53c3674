// Package reconcile checks that one processing date agrees across the three
// stores the pipeline writes: the landing snapshot, the curated staging table
// and the warehouse dimension.
//
// # Architecture
//
// 1. Engine: builds the union of entity keys from all sources, detects
//    presence/absence, and compares fields between each store and the closest
//    upstream store holding the entity.
//
// 2. Source: store-specific loaders returning the records of a date keyed by
//    entity key, with compared fields rendered as text.
//
// 3. Cache: TTL-based caching layer with stampede protection. ApplyPlan
//    invalidates the date it repaired.
//
// 4. Plan: a summary of missing rows and mismatches plus repair actions
//    (reload staging, republish) executed through a Repairer.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Landing:   characters.NewLandingSource(store),
//	    Staging:   characters.NewStagingSource(db),
//	    Warehouse: snapshot.NewWarehouseSource(dw),
//	    Fields:    characters.ReconcileFields,
//	}
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec, "20250115", reconcile.ReconcileOptions{DoRepair: true})
//	executed, err := reconcile.ApplyPlan(ctx, spec, repairer, plan, reconcile.ReconcileOptions{Confirmed: true})
package reconcile
