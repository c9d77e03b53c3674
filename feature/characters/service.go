package characters

import (
	"context"
	"fmt"
	"strconv"

	"pvp-pipeline/core/utils"
	"pvp-pipeline/feature/landing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs character enrichment and stages its output.
type Service struct {
	db        *gorm.DB
	pipeline  *Pipeline
	landing   *landing.Store
	logger    *zap.Logger
	batchSize int
}

// NewService creates a characters service. pipeline and store may be nil
// for read-only use.
func NewService(db *gorm.DB, pipeline *Pipeline, store *landing.Store, logger *zap.Logger) *Service {
	return &Service{db: db, pipeline: pipeline, landing: store, logger: logger, batchSize: 500}
}

// EnsureTables creates the staging tables when missing.
func (s *Service) EnsureTables(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&RawChinfo{}, &CurChinfo{}); err != nil {
		return fmt.Errorf("failed to migrate character tables: %w", err)
	}
	return nil
}

// Extract runs the enrichment pipeline for date and lands the profile snapshot.
func (s *Service) Extract(ctx context.Context, token, date string) (string, []EnrichedRow, error) {
	if err := utils.ValidateDate(date); err != nil {
		return "", nil, err
	}

	rows, err := s.pipeline.Run(ctx, date, token)
	if err != nil {
		return "", nil, err
	}

	landed := make([]ProfileRow, 0, len(rows))
	for _, r := range rows {
		landed = append(landed, ToProfileRow(r))
	}

	key := landing.ProfileKey(s.landing.Prefix(), date)
	if err := s.landing.PutJSON(ctx, key, landed); err != nil {
		return "", nil, err
	}

	s.logger.Info("Character profiles landed", zap.String("key", key), zap.Int("rows", len(landed)))
	return key, rows, nil
}

// ToProfileRow renders an enriched row as landed text.
func ToProfileRow(r EnrichedRow) ProfileRow {
	return ProfileRow{
		ID:            strconv.FormatInt(r.EntityID, 10),
		Name:          r.DisplayName,
		RealmSlug:     r.LocationSlug,
		Faction:       deref(r.Faction),
		Class:         deref(r.ClassName),
		Spec:          deref(r.SpecName),
		AverageIlvl:   utils.IntString(r.AverageItemLevel),
		EquippedIlvl:  utils.IntString(r.EquippedItemLevel),
		Bracket:       r.BracketID,
		SelectionRank: strconv.Itoa(r.SelectionRank),
		FechaProceso:  r.ProcessingDate,
	}
}

// LoadRaw replaces the raw staging rows of date with the landed profile snapshot.
func (s *Service) LoadRaw(ctx context.Context, date string) (int, error) {
	if err := utils.ValidateDate(date); err != nil {
		return 0, err
	}

	var landed []ProfileRow
	if err := s.landing.GetJSON(ctx, landing.ProfileKey(s.landing.Prefix(), date), &landed); err != nil {
		return 0, err
	}

	raw := make([]RawChinfo, 0, len(landed))
	for _, r := range landed {
		raw = append(raw, RawChinfo{
			ID: r.ID, Name: r.Name, RealmSlug: r.RealmSlug, Faction: r.Faction,
			Class: r.Class, Spec: r.Spec, AverageIlvl: r.AverageIlvl, EquippedIlvl: r.EquippedIlvl,
			Bracket: r.Bracket, SelectionRank: r.SelectionRank, FechaProceso: date,
		})
	}

	if err := replaceDate(ctx, s.db, date, &RawChinfo{}, &raw, len(raw), s.batchSize); err != nil {
		return 0, err
	}
	s.logger.Info("Raw character profiles loaded", zap.String("date", date), zap.Int("rows", len(raw)))
	return len(raw), nil
}

// Transform rebuilds the curated rows of date from raw_chinfo.
func (s *Service) Transform(ctx context.Context, date string) (int, error) {
	if err := utils.ValidateDate(date); err != nil {
		return 0, err
	}

	var raw []RawChinfo
	if err := s.db.WithContext(ctx).Where("fecha_proceso = ?", date).Find(&raw).Error; err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", RawTable, err)
	}

	cur := make([]CurChinfo, 0, len(raw))
	for _, r := range raw {
		cur = append(cur, Curate(r))
	}

	if err := replaceDate(ctx, s.db, date, &CurChinfo{}, &cur, len(cur), s.batchSize); err != nil {
		return 0, err
	}
	s.logger.Info("Curated character profiles built", zap.String("date", date), zap.Int("rows", len(cur)))
	return len(cur), nil
}

// Curate casts a raw profile row into its typed curated form.
func Curate(r RawChinfo) CurChinfo {
	return CurChinfo{
		CharID:            utils.ParseInt64(r.ID),
		CharName:          r.Name,
		SlugName:          r.RealmSlug,
		FactionType:       utils.StringPtr(r.Faction),
		ClassName:         utils.StringPtr(r.Class),
		CurrentSpec:       utils.StringPtr(r.Spec),
		AverageItemLevel:  utils.ParseInt(r.AverageIlvl),
		EquippedItemLevel: utils.ParseInt(r.EquippedIlvl),
		BracketID:         r.Bracket,
		SelectionRank:     utils.ParseInt(r.SelectionRank),
		FechaProceso:      r.FechaProceso,
	}
}

// Rows returns the curated profiles of date ordered by selection rank.
func (s *Service) Rows(ctx context.Context, date string) ([]CurChinfo, error) {
	if err := utils.ValidateDate(date); err != nil {
		return nil, err
	}

	var rows []CurChinfo
	err := s.db.WithContext(ctx).Where("fecha_proceso = ?", date).Order("selection_rank").Order("char_id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", CurTable, err)
	}
	return rows, nil
}

// replaceDate deletes the rows of date from model's table and inserts rows
// in one transaction.
func replaceDate(ctx context.Context, db *gorm.DB, date string, model, rows any, n, batch int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fecha_proceso = ?", date).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear rows for %s: %w", date, err)
		}
		if n == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, batch).Error; err != nil {
			return fmt.Errorf("failed to insert rows for %s: %w", date, err)
		}
		return nil
	})
}

