package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"pvp-pipeline/core/metrics"
	"pvp-pipeline/core/utils"
	"pvp-pipeline/core/warehouse"
	"pvp-pipeline/feature/characters"
	"pvp-pipeline/feature/leaderboard"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrEmptySnapshot is returned when the staging tables hold no publishable
// leaderboard rows for the date.
var ErrEmptySnapshot = errors.New("no leaderboard rows to publish")

var bracketNames = map[string]string{
	"2v2":     "Arena 2v2",
	"3v3":     "Arena 3v3",
	"rbg":     "Rated Battleground",
	"shuffle": "Solo Shuffle",
}

// Result counts the rows written by one publish.
type Result struct {
	Characters int
	Facts      int
	Seasons    int
	Brackets   int
}

// Service copies curated staging rows into the warehouse.
type Service struct {
	staging   *gorm.DB
	warehouse *gorm.DB
	batchSize int
	logger    *zap.Logger
	metrics   *metrics.Recorder
}

// NewService creates a publisher reading from staging and writing to dw.
func NewService(staging, dw *gorm.DB, cfg warehouse.Config, logger *zap.Logger, rec *metrics.Recorder) *Service {
	return &Service{staging: staging, warehouse: dw, batchSize: cfg.Batch(), logger: logger, metrics: rec}
}

// Publish appends the snapshot of date. Character and fact rows already
// published for date are replaced, dimension rows are only added.
func (s *Service) Publish(ctx context.Context, date string) (Result, error) {
	if err := utils.ValidateDate(date); err != nil {
		return Result{}, err
	}

	var board []leaderboard.CurLeaderboard
	if err := s.staging.WithContext(ctx).Where("fecha_proceso = ?", date).Find(&board).Error; err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", leaderboard.CurTable, err)
	}
	var chars []characters.CurChinfo
	if err := s.staging.WithContext(ctx).Where("fecha_proceso = ?", date).Find(&chars).Error; err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", characters.CurTable, err)
	}

	facts := s.facts(date, board)
	if len(facts) == 0 {
		return Result{}, fmt.Errorf("%w for %s", ErrEmptySnapshot, date)
	}
	dims := s.characters(chars)

	var res Result
	err := s.warehouse.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if res.Seasons, err = ensureSeasons(tx, facts); err != nil {
			return err
		}
		if res.Brackets, err = ensureBrackets(tx, facts); err != nil {
			return err
		}

		if err := tx.Where("fecha_proceso = ?", date).Delete(&warehouse.DimCharacter{}).Error; err != nil {
			return fmt.Errorf("failed to clear characters for %s: %w", date, err)
		}
		if len(dims) > 0 {
			if err := tx.CreateInBatches(&dims, s.batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert characters for %s: %w", date, err)
			}
		}

		if err := tx.Where("snapshot_date = ?", date).Delete(&warehouse.FactLeaderboardSnapshot{}).Error; err != nil {
			return fmt.Errorf("failed to clear snapshot %s: %w", date, err)
		}
		if err := tx.CreateInBatches(&facts, s.batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert snapshot %s: %w", date, err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	res.Characters, res.Facts = len(dims), len(facts)
	s.metrics.RowsLoaded(warehouse.DimCharacter{}.TableName(), res.Characters)
	s.metrics.RowsLoaded(warehouse.FactLeaderboardSnapshot{}.TableName(), res.Facts)
	s.logger.Info("Snapshot published",
		zap.String("date", date),
		zap.Int("characters", res.Characters),
		zap.Int("facts", res.Facts),
		zap.Int("new_seasons", res.Seasons),
		zap.Int("new_brackets", res.Brackets))
	return res, nil
}

func (s *Service) facts(date string, rows []leaderboard.CurLeaderboard) []warehouse.FactLeaderboardSnapshot {
	out := make([]warehouse.FactLeaderboardSnapshot, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		if r.CharID == nil || r.SeasonID == nil || r.BracketID == "" {
			skipped++
			continue
		}
		out = append(out, warehouse.FactLeaderboardSnapshot{
			SnapshotDate: date,
			CharID:       *r.CharID,
			SeasonID:     *r.SeasonID,
			BracketID:    r.BracketID,
			Rating:       r.Rating,
			Ranking:      r.Ranking,
			GamesPlayed:  r.GamesPlayed,
			GamesWon:     r.GamesWon,
			GamesLost:    r.GamesLost,
		})
	}
	if skipped > 0 {
		s.logger.Warn("Leaderboard rows without keys skipped", zap.String("date", date), zap.Int("count", skipped))
	}
	return out
}

func (s *Service) characters(rows []characters.CurChinfo) []warehouse.DimCharacter {
	out := make([]warehouse.DimCharacter, 0, len(rows))
	for _, r := range rows {
		if r.CharID == nil {
			s.logger.Warn("Character without id skipped", zap.String("name", r.CharName))
			continue
		}
		out = append(out, warehouse.DimCharacter{
			CharID:            *r.CharID,
			CharName:          r.CharName,
			SlugName:          r.SlugName,
			FactionType:       r.FactionType,
			ClassName:         r.ClassName,
			CurrentSpec:       r.CurrentSpec,
			AverageItemLevel:  r.AverageItemLevel,
			EquippedItemLevel: r.EquippedItemLevel,
			FechaProceso:      r.FechaProceso,
		})
	}
	return out
}

// ensureSeasons inserts the seasons referenced by facts that the warehouse
// does not know yet.
func ensureSeasons(tx *gorm.DB, facts []warehouse.FactLeaderboardSnapshot) (int, error) {
	wanted := map[int]bool{}
	for _, f := range facts {
		wanted[f.SeasonID] = true
	}
	ids := make([]int, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var existing []int
	if err := tx.Model(&warehouse.DimSeason{}).Where("season_id IN ?", ids).Pluck("season_id", &existing).Error; err != nil {
		return 0, fmt.Errorf("failed to read seasons: %w", err)
	}
	for _, id := range existing {
		delete(wanted, id)
	}

	missing := make([]warehouse.DimSeason, 0, len(wanted))
	for _, id := range ids {
		if wanted[id] {
			missing = append(missing, warehouse.DimSeason{SeasonID: id, SeasonName: fmt.Sprintf("Season %d", id)})
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}
	if err := tx.Create(&missing).Error; err != nil {
		return 0, fmt.Errorf("failed to insert seasons: %w", err)
	}
	return len(missing), nil
}

// ensureBrackets inserts the brackets referenced by facts that the warehouse
// does not know yet.
func ensureBrackets(tx *gorm.DB, facts []warehouse.FactLeaderboardSnapshot) (int, error) {
	wanted := map[string]bool{}
	for _, f := range facts {
		wanted[f.BracketID] = true
	}
	ids := make([]string, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var existing []string
	if err := tx.Model(&warehouse.DimBracket{}).Where("bracket_id IN ?", ids).Pluck("bracket_id", &existing).Error; err != nil {
		return 0, fmt.Errorf("failed to read brackets: %w", err)
	}
	for _, id := range existing {
		delete(wanted, id)
	}

	missing := make([]warehouse.DimBracket, 0, len(wanted))
	for _, id := range ids {
		if wanted[id] {
			missing = append(missing, warehouse.DimBracket{BracketID: id, BracketName: BracketName(id)})
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}
	if err := tx.Create(&missing).Error; err != nil {
		return 0, fmt.Errorf("failed to insert brackets: %w", err)
	}
	return len(missing), nil
}

// BracketName returns the display name of a bracket id.
func BracketName(id string) string {
	if name, ok := bracketNames[id]; ok {
		return name
	}
	return id
}
