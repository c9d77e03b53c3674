package leaderboard

// Staging table names.
const (
	RawTable = "raw_pvp_leaderboard"
	CurTable = "cur_pvp_leaderboard"
)

// RawRow is one leaderboard entry as landed: every value is text and
// missing fields are empty.
type RawRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Faction string `json:"faction"`
	Rank    string `json:"rank"`
	Rating  string `json:"rating"`
	Played  string `json:"played"`
	Won     string `json:"won"`
	Lost    string `json:"lost"`
}

// RawLeaderboard is a row of raw_pvp_leaderboard. It carries the landed
// columns plus the metadata recovered from the object name.
type RawLeaderboard struct {
	ID           string `gorm:"column:id"`
	Name         string `gorm:"column:name"`
	Slug         string `gorm:"column:slug"`
	Faction      string `gorm:"column:faction"`
	Rank         string `gorm:"column:rank"`
	Rating       string `gorm:"column:rating"`
	Played       string `gorm:"column:played"`
	Won          string `gorm:"column:won"`
	Lost         string `gorm:"column:lost"`
	Bracket      string `gorm:"column:bracket;index"`
	SeasonID     string `gorm:"column:s_id"`
	FechaProceso string `gorm:"column:fecha_proceso;index"`
}

func (RawLeaderboard) TableName() string { return RawTable }

// CurLeaderboard is a typed row of cur_pvp_leaderboard.
// Columns whose raw text does not parse are NULL.
type CurLeaderboard struct {
	CharID       *int64 `gorm:"column:char_id" json:"char_id"`
	CharName     string `gorm:"column:char_name" json:"char_name"`
	SlugName     string `gorm:"column:slug_name" json:"slug_name"`
	FactionType  string `gorm:"column:faction_type" json:"faction_type"`
	Ranking      *int   `gorm:"column:ranking" json:"ranking"`
	Rating       *int   `gorm:"column:rating" json:"rating"`
	GamesPlayed  *int   `gorm:"column:games_played" json:"games_played"`
	GamesWon     *int   `gorm:"column:games_won" json:"games_won"`
	GamesLost    *int   `gorm:"column:games_lost" json:"games_lost"`
	BracketID    string `gorm:"column:bracket_id;index" json:"bracket_id"`
	SeasonID     *int   `gorm:"column:season_id" json:"season_id"`
	FechaProceso string `gorm:"column:fecha_proceso;index" json:"fecha_proceso"`
}

func (CurLeaderboard) TableName() string { return CurTable }
