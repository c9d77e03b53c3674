package reconcile

import (
	"context"
	"time"
)

// Record is one entity as seen by a source: a display name plus its
// compared fields rendered as text. Missing values are empty strings.
type Record struct {
	Name   string
	Fields map[string]string
}

// Source loads the entities one store holds for a processing date,
// indexed by entity key.
type Source interface {
	// Name returns the unique name of this source (e.g., "landing", "staging").
	Name() string

	// Load returns all records of date keyed by entity key.
	// Implementations should use one batch query or object read.
	Load(ctx context.Context, date string) (map[string]Record, error)
}

// ReconcileResult represents the reconciliation output for a single entity.
// It contains presence flags for each source and any detected mismatches.
type ReconcileResult struct {
	// ID is the entity key.
	ID string `json:"id"`

	// Name is the display name of the entity.
	Name string `json:"name"`

	// LandingPresent indicates whether the entity exists in the landing snapshot.
	LandingPresent bool `json:"landing_present"`

	// StagingPresent indicates whether the entity exists in the curated staging table.
	StagingPresent bool `json:"staging_present"`

	// WarehousePresent indicates whether the entity exists in the warehouse dimension.
	WarehousePresent bool `json:"warehouse_present"`

	// Mismatch contains descriptions of field mismatches between adjacent stores,
	// e.g., "class: landing=Mage staging=Warrior".
	Mismatch []string `json:"mismatch"`
}

// Spec defines the configuration for a reconciliation operation.
type Spec struct {
	// Landing, Staging and Warehouse are the three stores, upstream first.
	Landing   Source
	Staging   Source
	Warehouse Source

	// Fields lists the compared field names. If empty, every field present
	// on both records is compared.
	Fields []string

	// CacheTTL is the time-to-live for cached indices.
	// If zero, caching is disabled.
	CacheTTL time.Duration
}

// CacheKey returns a unique key for caching based on spec parameters and date.
func (s *Spec) CacheKey(date string) string {
	return s.Landing.Name() + "|" + s.Staging.Name() + "|" + s.Warehouse.Name() + "|" + date
}

// ActionType represents the type of repair action.
type ActionType string

const (
	// ActionReloadStaging reloads raw and curated staging rows from the landing snapshot.
	ActionReloadStaging ActionType = "reload_staging"
	// ActionRepublish republishes the warehouse snapshot from staging.
	ActionRepublish ActionType = "republish"
)

// Action represents a planned repair of one processing date.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Date is the processing date to repair.
	Date string `json:"date"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Repairer executes repair actions.
type Repairer interface {
	ReloadStaging(ctx context.Context, date string) error
	Republish(ctx context.Context, date string) error
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	// Date is the reconciled processing date.
	Date string `json:"date"`

	// Results contains per-entity reconciliation data.
	Results []ReconcileResult `json:"results"`

	// Actions contains planned repair operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the total number of unique entities.
	TotalItems int `json:"total_items"`

	// MissingLanding counts entities stored downstream but absent from landing.
	MissingLanding int `json:"missing_landing"`

	// MissingStaging counts landed entities absent from staging.
	MissingStaging int `json:"missing_staging"`

	// MissingWarehouse counts landed or staged entities absent from the warehouse.
	MissingWarehouse int `json:"missing_warehouse"`

	// Mismatches counts entities with field discrepancies.
	Mismatches int `json:"mismatches"`
}

// Clean reports whether the three stores agree.
func (s PlanSummary) Clean() bool {
	return s.MissingLanding == 0 && s.MissingStaging == 0 && s.MissingWarehouse == 0 && s.Mismatches == 0
}

// ReconcileOptions controls whether repairs are planned and executed.
type ReconcileOptions struct {
	// DryRun prevents execution of any repair if true.
	DryRun bool

	// DoRepair enables planning of repair actions.
	DoRepair bool

	// Confirmed indicates user has confirmed the repair.
	// If false, repairs will not execute regardless of DryRun.
	Confirmed bool
}
