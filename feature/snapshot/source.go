package snapshot

import (
	"context"
	"fmt"
	"strconv"

	"pvp-pipeline/core/reconcile"
	"pvp-pipeline/core/warehouse"
	"pvp-pipeline/feature/characters"

	"gorm.io/gorm"
)

// WarehouseSource reads the character versions published for a date.
type WarehouseSource struct {
	db *gorm.DB
}

// NewWarehouseSource creates a reconcile source over dim_character_scd2.
func NewWarehouseSource(db *gorm.DB) *WarehouseSource {
	return &WarehouseSource{db: db}
}

func (s *WarehouseSource) Name() string { return "warehouse" }

// Load returns the published character versions of date keyed by character id.
func (s *WarehouseSource) Load(ctx context.Context, date string) (map[string]reconcile.Record, error) {
	var rows []warehouse.DimCharacter
	if err := s.db.WithContext(ctx).Where("fecha_proceso = ?", date).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", warehouse.DimCharacter{}.TableName(), err)
	}

	out := make(map[string]reconcile.Record, len(rows))
	for _, r := range rows {
		out[strconv.FormatInt(r.CharID, 10)] = characters.TypedRecord(r.CharName, r.SlugName, r.FactionType, r.ClassName, r.CurrentSpec, r.AverageItemLevel, r.EquippedItemLevel)
	}
	return out, nil
}
