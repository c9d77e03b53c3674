package leaderboard

import (
	"pvp-pipeline/core/gameapi"
	"pvp-pipeline/core/utils"
)

// Normalize flattens a leaderboard document into raw rows.
// Missing nested objects yield empty columns, never an error.
func Normalize(resp *gameapi.LeaderboardResponse) []RawRow {
	if resp == nil {
		return []RawRow{}
	}

	rows := make([]RawRow, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		var row RawRow
		if c := e.Character; c != nil {
			row.ID = utils.Int64String(c.ID)
			row.Name = c.Name
			if c.Realm != nil {
				row.Slug = c.Realm.Slug
			}
		}
		if e.Faction != nil {
			row.Faction = e.Faction.Type
		}
		row.Rank = utils.IntString(e.Rank)
		row.Rating = utils.IntString(e.Rating)
		if s := e.SeasonMatchStatistics; s != nil {
			row.Played = utils.IntString(s.Played)
			row.Won = utils.IntString(s.Won)
			row.Lost = utils.IntString(s.Lost)
		}
		rows = append(rows, row)
	}
	return rows
}

// Curate casts a raw row into its typed curated form.
func Curate(r RawLeaderboard) CurLeaderboard {
	return CurLeaderboard{
		CharID:       utils.ParseInt64(r.ID),
		CharName:     r.Name,
		SlugName:     r.Slug,
		FactionType:  r.Faction,
		Ranking:      utils.ParseInt(r.Rank),
		Rating:       utils.ParseInt(r.Rating),
		GamesPlayed:  utils.ParseInt(r.Played),
		GamesWon:     utils.ParseInt(r.Won),
		GamesLost:    utils.ParseInt(r.Lost),
		BracketID:    r.Bracket,
		SeasonID:     utils.ParseInt(r.SeasonID),
		FechaProceso: r.FechaProceso,
	}
}
