package characters

import (
	"context"
	"errors"
	"testing"

	"pvp-pipeline/core/database"
	"pvp-pipeline/feature/leaderboard"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

const rankedQueryPattern = `SELECT char_id, char_name, slug_name, bracket_id, season_id, fecha_proceso, ranking, rating, games_won, games_lost\s+FROM cur_pvp_leaderboard\s+WHERE fecha_proceso = \? AND bracket_id IN \(\?,\?\)`

var rankedColumns = []string{"char_id", "char_name", "slug_name", "bracket_id", "season_id", "fecha_proceso", "ranking", "rating", "games_won", "games_lost"}

func TestGormRankedStore_Query(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewGormRankedStore(db)

	mock.ExpectQuery(rankedQueryPattern).
		WithArgs(testDate, "2v2", "3v3").
		WillReturnRows(sqlmock.NewRows(rankedColumns).
			AddRow(int64(11), "Alpha", "stormrage", "3v3", int64(40), testDate, int64(1), int64(3100), int64(70), int64(30)).
			AddRow(nil, "Ghost", nil, "3v3", int64(40), testDate, int64(2), nil, nil, nil))

	records, err := store.RankedRecords(context.Background(), testDate, []string{"2v2", "3v3"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, RankedRecord{
		EntityID: id(11), DisplayName: "Alpha", LocationSlug: "stormrage", BracketID: "3v3",
		SeasonID: 40, ProcessingDate: testDate, Rank: 1, Rating: 3100, Wins: 70, Losses: 30,
	}, records[0])

	// NULL char_id stays nil, never zero
	assert.Nil(t, records[1].EntityID)
	assert.Equal(t, "", records[1].LocationSlug)
	assert.Equal(t, 0, records[1].Wins)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRankedStore_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewGormRankedStore(db)

	mock.ExpectQuery(rankedQueryPattern).WillReturnError(errors.New("connection reset"))

	_, err := store.RankedRecords(context.Background(), testDate, []string{"2v2", "3v3"})
	assert.ErrorContains(t, err, "connection reset")
}

func TestGormRankedStore_NoBrackets(t *testing.T) {
	db, mock := setupMockDB(t)
	records, err := NewGormRankedStore(db).RankedRecords(context.Background(), testDate, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func setupStagingDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&leaderboard.CurLeaderboard{}, &RawChinfo{}, &CurChinfo{}))
	return db
}

func curRow(charID *int64, name, bracket string, ranking int) leaderboard.CurLeaderboard {
	season, won, lost := 40, 10, 5
	return leaderboard.CurLeaderboard{
		CharID: charID, CharName: name, SlugName: "stormrage", BracketID: bracket,
		Ranking: &ranking, GamesWon: &won, GamesLost: &lost, SeasonID: &season, FechaProceso: testDate,
	}
}

func TestGormRankedStore_SQLite(t *testing.T) {
	db := setupStagingDB(t)
	rows := []leaderboard.CurLeaderboard{
		curRow(id(1), "Alpha", "3v3", 1),
		curRow(id(2), "Beta", "2v2", 1),
		curRow(id(3), "Gamma", "rbg", 1),
		curRow(nil, "Ghost", "3v3", 2),
	}
	other := curRow(id(4), "Delta", "3v3", 1)
	other.FechaProceso = "20250114"
	rows = append(rows, other)
	require.NoError(t, db.Create(&rows).Error)

	records, err := NewGormRankedStore(db).RankedRecords(context.Background(), testDate, []string{"2v2", "3v3"})
	require.NoError(t, err)
	assert.Len(t, records, 3)

	nilIDs := 0
	for _, r := range records {
		assert.Equal(t, testDate, r.ProcessingDate)
		assert.NotEqual(t, "rbg", r.BracketID)
		if r.EntityID == nil {
			nilIDs++
		}
	}
	assert.Equal(t, 1, nilIDs)
}
