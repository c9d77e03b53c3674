package snapshot

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"pvp-pipeline/core/database"
	"pvp-pipeline/core/metrics"
	"pvp-pipeline/core/warehouse"
	"pvp-pipeline/feature/characters"
	"pvp-pipeline/feature/leaderboard"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testDate = "20250115"

func setup(t *testing.T) (*gorm.DB, *gorm.DB, warehouse.Config) {
	t.Helper()
	staging, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, staging.AutoMigrate(&leaderboard.CurLeaderboard{}, &characters.CurChinfo{}))

	cfg := warehouse.Config{
		URL:       filepath.Join(t.TempDir(), "warehouse.db"),
		Dialect:   warehouse.DialectSQLite,
		BatchSize: 2,
	}
	dw, err := warehouse.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, warehouse.Migrate(context.Background(), dw, cfg.Dialect))
	return staging, dw, cfg
}

func ptr[T any](v T) *T { return &v }

func seed(t *testing.T, staging *gorm.DB) {
	t.Helper()
	require.NoError(t, staging.Create(&[]leaderboard.CurLeaderboard{
		{CharID: ptr(int64(1)), CharName: "Alpha", BracketID: "3v3", SeasonID: ptr(40), Ranking: ptr(1), Rating: ptr(3100), FechaProceso: testDate},
		{CharID: ptr(int64(2)), CharName: "Beta", BracketID: "3v3", SeasonID: ptr(40), Ranking: ptr(2), FechaProceso: testDate},
		{CharID: ptr(int64(1)), CharName: "Alpha", BracketID: "2v2", SeasonID: ptr(40), Ranking: ptr(9), FechaProceso: testDate},
		{CharID: nil, CharName: "Ghost", BracketID: "2v2", SeasonID: ptr(40), Ranking: ptr(3), FechaProceso: testDate},
		{CharID: ptr(int64(3)), CharName: "Old", BracketID: "3v3", SeasonID: ptr(39), Ranking: ptr(1), FechaProceso: "20250114"},
	}).Error)
	require.NoError(t, staging.Create(&[]characters.CurChinfo{
		{CharID: ptr(int64(1)), CharName: "Alpha", SlugName: "stormrage", ClassName: ptr("Mage"), AverageItemLevel: ptr(620), BracketID: "3v3", SelectionRank: ptr(1), FechaProceso: testDate},
		{CharID: ptr(int64(2)), CharName: "Beta", SlugName: "stormrage", BracketID: "3v3", SelectionRank: ptr(2), FechaProceso: testDate},
	}).Error)
}

func TestPublish(t *testing.T) {
	staging, dw, cfg := setup(t)
	seed(t, staging)
	rec := metrics.NewRecorder()
	svc := NewService(staging, dw, cfg, zap.NewNop(), rec)

	res, err := svc.Publish(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, Result{Characters: 2, Facts: 3, Seasons: 1, Brackets: 2}, res)

	var facts []warehouse.FactLeaderboardSnapshot
	require.NoError(t, dw.Order("bracket_id").Order("ranking").Find(&facts).Error)
	require.Len(t, facts, 3)
	assert.Equal(t, "2v2", facts[0].BracketID)
	assert.Equal(t, testDate, facts[0].SnapshotDate)
	assert.Equal(t, 3100, *facts[1].Rating)
	assert.Nil(t, facts[2].Rating)

	var dims []warehouse.DimCharacter
	require.NoError(t, dw.Order("char_id").Find(&dims).Error)
	require.Len(t, dims, 2)
	assert.Equal(t, "Mage", *dims[0].ClassName)
	assert.Equal(t, 620, *dims[0].AverageItemLevel)
	assert.Nil(t, dims[1].ClassName)

	var brackets []warehouse.DimBracket
	require.NoError(t, dw.Order("bracket_id").Find(&brackets).Error)
	assert.Equal(t, []warehouse.DimBracket{
		{BracketID: "2v2", BracketName: "Arena 2v2"},
		{BracketID: "3v3", BracketName: "Arena 3v3"},
	}, brackets)

	var season warehouse.DimSeason
	require.NoError(t, dw.Take(&season).Error)
	assert.Equal(t, warehouse.DimSeason{SeasonID: 40, SeasonName: "Season 40"}, season)

	expected := `
# HELP pvp_pipeline_rows_loaded_total Rows written per table
# TYPE pvp_pipeline_rows_loaded_total counter
pvp_pipeline_rows_loaded_total{table="dim_character_scd2"} 2
pvp_pipeline_rows_loaded_total{table="fact_pvp_leaderboard_snapshot"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "pvp_pipeline_rows_loaded_total"))
}

func TestPublish_Republish(t *testing.T) {
	staging, dw, cfg := setup(t)
	seed(t, staging)
	svc := NewService(staging, dw, cfg, zap.NewNop(), nil)
	ctx := context.Background()

	_, err := svc.Publish(ctx, testDate)
	require.NoError(t, err)
	res, err := svc.Publish(ctx, testDate)
	require.NoError(t, err)
	assert.Zero(t, res.Seasons)
	assert.Zero(t, res.Brackets)

	var count int64
	require.NoError(t, dw.Model(&warehouse.FactLeaderboardSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
	require.NoError(t, dw.Model(&warehouse.DimCharacter{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// A later date adds its own rows and only the new season
	res, err = svc.Publish(ctx, "20250114")
	require.NoError(t, err)
	assert.Equal(t, Result{Characters: 0, Facts: 1, Seasons: 1, Brackets: 0}, res)
	require.NoError(t, dw.Model(&warehouse.FactLeaderboardSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}

func TestPublish_Empty(t *testing.T) {
	staging, dw, cfg := setup(t)
	svc := NewService(staging, dw, cfg, zap.NewNop(), nil)

	_, err := svc.Publish(context.Background(), testDate)
	assert.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = svc.Publish(context.Background(), "15/01/2025")
	assert.Error(t, err)
}

func TestBracketName(t *testing.T) {
	assert.Equal(t, "Rated Battleground", BracketName("rbg"))
	assert.Equal(t, "blitz", BracketName("blitz"))
}
