package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"pvp-pipeline/core/gameapi"
	"pvp-pipeline/core/utils"
	"pvp-pipeline/feature/landing"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrNothingLanded is returned when no leaderboard objects exist for a date.
var ErrNothingLanded = errors.New("no leaderboard snapshots landed")

// API is the subset of the game API client used by the extract.
type API interface {
	CurrentSeasonID(ctx context.Context, token string) (int, error)
	Leaderboard(ctx context.Context, token string, seasonID int, bracket string) (*gameapi.LeaderboardResponse, error)
}

// Service extracts, stages and curates leaderboard snapshots.
type Service struct {
	db        *gorm.DB
	api       API
	landing   *landing.Store
	logger    *zap.Logger
	brackets  []string
	batchSize int
}

// NewService creates a leaderboard service. api and store may be nil for
// read-only use.
func NewService(db *gorm.DB, api API, store *landing.Store, logger *zap.Logger, brackets []string) *Service {
	return &Service{
		db:        db,
		api:       api,
		landing:   store,
		logger:    logger,
		brackets:  brackets,
		batchSize: 500,
	}
}

// EnsureTables creates the staging tables when missing.
func (s *Service) EnsureTables(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&RawLeaderboard{}, &CurLeaderboard{}); err != nil {
		return fmt.Errorf("failed to migrate leaderboard tables: %w", err)
	}
	return nil
}

// ExtractResult describes one landed bracket snapshot.
type ExtractResult struct {
	Bracket string
	Key     string
	Rows    int
}

// Extract fetches the current season's leaderboard of every bracket
// concurrently and lands one object per bracket.
func (s *Service) Extract(ctx context.Context, token, date string) ([]ExtractResult, error) {
	if err := utils.ValidateDate(date); err != nil {
		return nil, err
	}

	seasonID, err := s.api.CurrentSeasonID(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current season: %w", err)
	}
	s.logger.Info("Extracting leaderboards", zap.Int("season_id", seasonID), zap.Strings("brackets", s.brackets))

	results := make([]ExtractResult, len(s.brackets))
	g, gctx := errgroup.WithContext(ctx)
	for i, bracket := range s.brackets {
		g.Go(func() error {
			lb, err := s.api.Leaderboard(gctx, token, seasonID, bracket)
			if err != nil {
				return fmt.Errorf("failed to fetch %s leaderboard: %w", bracket, err)
			}
			rows := Normalize(lb)
			key := landing.LeaderboardKey(s.landing.Prefix(), seasonID, bracket, date)
			if err := s.landing.PutJSON(gctx, key, rows); err != nil {
				return err
			}
			results[i] = ExtractResult{Bracket: bracket, Key: key, Rows: len(rows)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		s.logger.Info("Leaderboard landed", zap.String("bracket", r.Bracket), zap.String("key", r.Key), zap.Int("rows", r.Rows))
	}
	return results, nil
}

// LoadRaw replaces the raw staging rows of date with the landed snapshots.
func (s *Service) LoadRaw(ctx context.Context, date string) (int, error) {
	if err := utils.ValidateDate(date); err != nil {
		return 0, err
	}

	objects, err := s.landing.LeaderboardObjects(ctx, date)
	if err != nil {
		return 0, err
	}
	if len(objects) == 0 {
		return 0, fmt.Errorf("%w for %s", ErrNothingLanded, date)
	}

	var raw []RawLeaderboard
	for _, obj := range objects {
		var rows []RawRow
		if err := s.landing.GetJSON(ctx, obj.Key, &rows); err != nil {
			return 0, err
		}
		season := strconv.Itoa(obj.SeasonID)
		for _, r := range rows {
			raw = append(raw, RawLeaderboard{
				ID: r.ID, Name: r.Name, Slug: r.Slug, Faction: r.Faction,
				Rank: r.Rank, Rating: r.Rating, Played: r.Played, Won: r.Won, Lost: r.Lost,
				Bracket: obj.Bracket, SeasonID: season, FechaProceso: date,
			})
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fecha_proceso = ?", date).Delete(&RawLeaderboard{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", RawTable, err)
		}
		if len(raw) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&raw, s.batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert into %s: %w", RawTable, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Raw leaderboard loaded", zap.String("date", date), zap.Int("objects", len(objects)), zap.Int("rows", len(raw)))
	return len(raw), nil
}

// Transform rebuilds the curated rows of date from the raw staging table.
func (s *Service) Transform(ctx context.Context, date string) (int, error) {
	if err := utils.ValidateDate(date); err != nil {
		return 0, err
	}

	var raw []RawLeaderboard
	if err := s.db.WithContext(ctx).Where("fecha_proceso = ?", date).Find(&raw).Error; err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", RawTable, err)
	}

	cur := make([]CurLeaderboard, 0, len(raw))
	for _, r := range raw {
		cur = append(cur, Curate(r))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fecha_proceso = ?", date).Delete(&CurLeaderboard{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", CurTable, err)
		}
		if len(cur) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&cur, s.batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert into %s: %w", CurTable, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Curated leaderboard built", zap.String("date", date), zap.Int("rows", len(cur)))
	return len(cur), nil
}

// Rows returns the curated rows of date ordered by bracket and ranking.
// An empty bracket returns every bracket.
func (s *Service) Rows(ctx context.Context, date, bracket string) ([]CurLeaderboard, error) {
	if err := utils.ValidateDate(date); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Where("fecha_proceso = ?", date)
	if bracket != "" {
		q = q.Where("bracket_id = ?", bracket)
	}

	var rows []CurLeaderboard
	if err := q.Order("bracket_id").Order("ranking").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", CurTable, err)
	}
	return rows, nil
}
