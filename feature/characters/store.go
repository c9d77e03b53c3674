package characters

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// RankedStore returns the ranked records of a processing date.
type RankedStore interface {
	RankedRecords(ctx context.Context, date string, brackets []string) ([]RankedRecord, error)
}

const rankedQuery = `SELECT char_id, char_name, slug_name, bracket_id, season_id, fecha_proceso, ranking, rating, games_won, games_lost
FROM cur_pvp_leaderboard
WHERE fecha_proceso = ? AND bracket_id IN ?`

type rankedRow struct {
	CharID       *int64  `gorm:"column:char_id"`
	CharName     *string `gorm:"column:char_name"`
	SlugName     *string `gorm:"column:slug_name"`
	BracketID    string  `gorm:"column:bracket_id"`
	SeasonID     *int    `gorm:"column:season_id"`
	FechaProceso string  `gorm:"column:fecha_proceso"`
	Ranking      *int    `gorm:"column:ranking"`
	Rating       *int    `gorm:"column:rating"`
	GamesWon     *int    `gorm:"column:games_won"`
	GamesLost    *int    `gorm:"column:games_lost"`
}

// GormRankedStore reads ranked records from the curated leaderboard table.
type GormRankedStore struct {
	db *gorm.DB
}

// NewGormRankedStore creates a store over the staging database.
func NewGormRankedStore(db *gorm.DB) *GormRankedStore {
	return &GormRankedStore{db: db}
}

// RankedRecords returns every row of date whose bracket is in brackets.
func (s *GormRankedStore) RankedRecords(ctx context.Context, date string, brackets []string) ([]RankedRecord, error) {
	if len(brackets) == 0 {
		return nil, nil
	}

	var rows []rankedRow
	if err := s.db.WithContext(ctx).Raw(rankedQuery, date, brackets).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query ranked records: %w", err)
	}

	out := make([]RankedRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, RankedRecord{
			EntityID:       r.CharID,
			DisplayName:    deref(r.CharName),
			LocationSlug:   deref(r.SlugName),
			BracketID:      r.BracketID,
			SeasonID:       derefInt(r.SeasonID),
			ProcessingDate: r.FechaProceso,
			Rank:           derefInt(r.Ranking),
			Rating:         derefInt(r.Rating),
			Wins:           derefInt(r.GamesWon),
			Losses:         derefInt(r.GamesLost),
		})
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
