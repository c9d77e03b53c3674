package warehouse

// DimSeason is one row of dim_season.
type DimSeason struct {
	SeasonID   int    `gorm:"column:season_id;primaryKey;autoIncrement:false"`
	SeasonName string `gorm:"column:season_name"`
}

func (DimSeason) TableName() string { return "dim_season" }

// DimBracket is one row of dim_bracket.
type DimBracket struct {
	BracketID   string `gorm:"column:bracket_id;primaryKey"`
	BracketName string `gorm:"column:bracket_name"`
}

func (DimBracket) TableName() string { return "dim_bracket" }

// DimCharacter is one version of a character in dim_character_scd2.
// A new version is appended per processing date.
type DimCharacter struct {
	CharID            int64   `gorm:"column:char_id"`
	CharName          string  `gorm:"column:char_name"`
	SlugName          string  `gorm:"column:slug_name"`
	FactionType       *string `gorm:"column:faction_type"`
	ClassName         *string `gorm:"column:class_name"`
	CurrentSpec       *string `gorm:"column:current_spec"`
	AverageItemLevel  *int    `gorm:"column:average_item_level"`
	EquippedItemLevel *int    `gorm:"column:equipped_item_level"`
	FechaProceso      string  `gorm:"column:fecha_proceso"`
}

func (DimCharacter) TableName() string { return "dim_character_scd2" }

// FactLeaderboardSnapshot is one leaderboard position on a snapshot date.
type FactLeaderboardSnapshot struct {
	SnapshotDate string `gorm:"column:snapshot_date"`
	CharID       int64  `gorm:"column:char_id"`
	SeasonID     int    `gorm:"column:season_id"`
	BracketID    string `gorm:"column:bracket_id"`
	Rating       *int   `gorm:"column:rating"`
	Ranking      *int   `gorm:"column:ranking"`
	GamesPlayed  *int   `gorm:"column:games_played"`
	GamesWon     *int   `gorm:"column:games_won"`
	GamesLost    *int   `gorm:"column:games_lost"`
}

func (FactLeaderboardSnapshot) TableName() string { return "fact_pvp_leaderboard_snapshot" }
