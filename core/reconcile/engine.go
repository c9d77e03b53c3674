package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// ReconcileAll performs a full reconciliation of date across the three stores.
// It builds indices from all sources, computes the union of keys,
// and returns a result for each key indicating presence and mismatches.
func ReconcileAll(ctx context.Context, spec *Spec, date string) ([]ReconcileResult, error) {
	cache, err := GetOrBuildCache(ctx, spec, date)
	if err != nil {
		return nil, err
	}
	return reconcileFromCache(cache, spec), nil
}

// ReconcileOne returns the reconciliation of a single entity key.
// A key unknown to every store yields a result with all presence flags false.
func ReconcileOne(ctx context.Context, spec *Spec, date, key string) (*ReconcileResult, error) {
	cache, err := GetOrBuildCache(ctx, spec, date)
	if err != nil {
		return nil, err
	}
	result := buildResult(key, cache, spec)
	return &result, nil
}

func reconcileFromCache(cache *ReconcileCache, spec *Spec) []ReconcileResult {
	union := buildUnion(cache.Landing, cache.Staging, cache.Warehouse)

	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache, spec))
	}

	// Sort results by key for deterministic output
	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})
	return results
}

// buildUnion creates a union of all keys from the indices.
func buildUnion(indices ...map[string]Record) map[string]struct{} {
	union := make(map[string]struct{})
	for _, index := range indices {
		for key := range index {
			union[key] = struct{}{}
		}
	}
	return union
}

// buildResult creates a ReconcileResult for a single key.
func buildResult(key string, cache *ReconcileCache, spec *Spec) ReconcileResult {
	landed, landingPresent := cache.Landing[key]
	staged, stagingPresent := cache.Staging[key]
	stored, warehousePresent := cache.Warehouse[key]

	result := ReconcileResult{
		ID:               key,
		LandingPresent:   landingPresent,
		StagingPresent:   stagingPresent,
		WarehousePresent: warehousePresent,
		Mismatch:         []string{},
	}

	switch {
	case landingPresent:
		result.Name = landed.Name
	case stagingPresent:
		result.Name = staged.Name
	case warehousePresent:
		result.Name = stored.Name
	}

	// Compare each store with the closest upstream store holding the entity
	if stagingPresent && landingPresent {
		result.Mismatch = append(result.Mismatch, compareFields(spec.Fields, spec.Landing.Name(), landed, spec.Staging.Name(), staged)...)
	}
	if warehousePresent {
		if stagingPresent {
			result.Mismatch = append(result.Mismatch, compareFields(spec.Fields, spec.Staging.Name(), staged, spec.Warehouse.Name(), stored)...)
		} else if landingPresent {
			result.Mismatch = append(result.Mismatch, compareFields(spec.Fields, spec.Landing.Name(), landed, spec.Warehouse.Name(), stored)...)
		}
	}

	return result
}

// compareFields returns one description per differing field, in field order.
func compareFields(fields []string, upName string, up Record, downName string, down Record) []string {
	if len(fields) == 0 {
		for name := range up.Fields {
			if _, ok := down.Fields[name]; ok {
				fields = append(fields, name)
			}
		}
		sort.Strings(fields)
	}

	var out []string
	if up.Name != down.Name {
		out = append(out, fmt.Sprintf("name: %s=%s %s=%s", upName, up.Name, downName, down.Name))
	}
	for _, name := range fields {
		if a, b := up.Fields[name], down.Fields[name]; a != b {
			out = append(out, fmt.Sprintf("%s: %s=%s %s=%s", name, upName, a, downName, b))
		}
	}
	return out
}
