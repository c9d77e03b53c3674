package gameapi

// SeasonIndex is the PvP season index document.
type SeasonIndex struct {
	CurrentSeason *struct {
		ID int `json:"id"`
	} `json:"current_season"`
}

// LeaderboardResponse is the PvP leaderboard document of one bracket.
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry is one ranked character. Pointer fields are nil when absent.
type LeaderboardEntry struct {
	Character *struct {
		ID    *int64 `json:"id"`
		Name  string `json:"name"`
		Realm *struct {
			ID   int    `json:"id"`
			Slug string `json:"slug"`
		} `json:"realm"`
	} `json:"character"`
	Faction *struct {
		Type string `json:"type"`
	} `json:"faction"`
	Rank                  *int `json:"rank"`
	Rating                *int `json:"rating"`
	SeasonMatchStatistics *struct {
		Played *int `json:"played"`
		Won    *int `json:"won"`
		Lost   *int `json:"lost"`
	} `json:"season_match_statistics"`
}
