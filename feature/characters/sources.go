package characters

import (
	"context"
	"fmt"
	"strconv"

	"pvp-pipeline/core/reconcile"
	"pvp-pipeline/core/utils"
	"pvp-pipeline/feature/landing"

	"gorm.io/gorm"
)

// ReconcileFields are the profile fields compared across stores.
var ReconcileFields = []string{"realm", "faction", "class", "spec", "average_item_level", "equipped_item_level"}

// LandingSource reads the landed profile snapshot of a date.
type LandingSource struct {
	store *landing.Store
}

// NewLandingSource creates a reconcile source over the landing zone.
func NewLandingSource(store *landing.Store) *LandingSource {
	return &LandingSource{store: store}
}

func (s *LandingSource) Name() string { return "landing" }

// Load returns the landed profiles of date keyed by character id.
func (s *LandingSource) Load(ctx context.Context, date string) (map[string]reconcile.Record, error) {
	var landed []ProfileRow
	if err := s.store.GetJSON(ctx, landing.ProfileKey(s.store.Prefix(), date), &landed); err != nil {
		return nil, err
	}

	out := make(map[string]reconcile.Record, len(landed))
	for _, r := range landed {
		out[r.ID] = reconcile.Record{
			Name: r.Name,
			Fields: map[string]string{
				"realm":               r.RealmSlug,
				"faction":             r.Faction,
				"class":               r.Class,
				"spec":                r.Spec,
				"average_item_level":  r.AverageIlvl,
				"equipped_item_level": r.EquippedIlvl,
			},
		}
	}
	return out, nil
}

// StagingSource reads cur_chinfo.
type StagingSource struct {
	db *gorm.DB
}

// NewStagingSource creates a reconcile source over the curated staging table.
func NewStagingSource(db *gorm.DB) *StagingSource {
	return &StagingSource{db: db}
}

func (s *StagingSource) Name() string { return "staging" }

// Load returns the curated profiles of date keyed by character id.
// Rows without an id are skipped.
func (s *StagingSource) Load(ctx context.Context, date string) (map[string]reconcile.Record, error) {
	var rows []CurChinfo
	if err := s.db.WithContext(ctx).Where("fecha_proceso = ?", date).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", CurTable, err)
	}

	out := make(map[string]reconcile.Record, len(rows))
	for _, r := range rows {
		if r.CharID == nil {
			continue
		}
		out[strconv.FormatInt(*r.CharID, 10)] = TypedRecord(r.CharName, r.SlugName, r.FactionType, r.ClassName, r.CurrentSpec, r.AverageItemLevel, r.EquippedItemLevel)
	}
	return out, nil
}

// TypedRecord renders typed profile columns the way they are landed.
func TypedRecord(name, realm string, faction, class, spec *string, avgIlvl, eqIlvl *int) reconcile.Record {
	return reconcile.Record{
		Name: name,
		Fields: map[string]string{
			"realm":               realm,
			"faction":             deref(faction),
			"class":               deref(class),
			"spec":                deref(spec),
			"average_item_level":  utils.IntString(avgIlvl),
			"equipped_item_level": utils.IntString(eqIlvl),
		},
	}
}
