package warehouse

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectSQLite(t *testing.T) Config {
	t.Helper()
	return Config{
		URL:     filepath.Join(t.TempDir(), "warehouse.db"),
		Dialect: DialectSQLite,
	}
}

func TestConnect_Errors(t *testing.T) {
	_, err := Connect(Config{Dialect: DialectRedshift})
	assert.ErrorContains(t, err, "url is empty")

	_, err = Connect(Config{URL: "x", Dialect: "oracle"})
	assert.ErrorContains(t, err, "unsupported warehouse dialect")
}

func TestWithSearchPath(t *testing.T) {
	dsn, err := withSearchPath("postgres://u:p@host:5439/dev?sslmode=require", "analytics")
	require.NoError(t, err)
	assert.Contains(t, dsn, "search_path=analytics")
	assert.Contains(t, dsn, "sslmode=require")

	dsn, err = withSearchPath("host=h port=5439 dbname=dev", "analytics")
	require.NoError(t, err)
	assert.Equal(t, "host=h port=5439 dbname=dev search_path=analytics", dsn)

	dsn, err = withSearchPath("host=h", "")
	require.NoError(t, err)
	assert.Equal(t, "host=h", dsn)
}

func TestMigrate_SQLite(t *testing.T) {
	cfg := connectSQLite(t)
	db, err := Connect(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, cfg.Dialect))

	for _, table := range []string{"dim_season", "dim_bracket", "dim_character_scd2", "fact_pvp_leaderboard_snapshot"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	version, err := Version(ctx, db, cfg.Dialect)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Re-running is a no-op
	require.NoError(t, Migrate(ctx, db, cfg.Dialect))
}

func TestMigrate_BadDialect(t *testing.T) {
	cfg := connectSQLite(t)
	db, err := Connect(cfg)
	require.NoError(t, err)

	err = Migrate(context.Background(), db, "cobol")
	assert.ErrorContains(t, err, "set migration dialect")
}

func TestModels_RoundTrip(t *testing.T) {
	cfg := connectSQLite(t)
	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db, cfg.Dialect))

	rating := 2954
	require.NoError(t, db.Create(&FactLeaderboardSnapshot{
		SnapshotDate: "20250115", CharID: 1, SeasonID: 40, BracketID: "3v3", Rating: &rating,
	}).Error)

	var got FactLeaderboardSnapshot
	require.NoError(t, db.Where("snapshot_date = ?", "20250115").Take(&got).Error)
	assert.Equal(t, 2954, *got.Rating)
	assert.Nil(t, got.GamesWon)
}
