// Package landing stores extracted snapshots in the object storage landing zone.
//
// Every extract writes one JSON array of all-text rows per object:
//
//	{prefix}/pvp_leaderboard_s{season}_{bracket}_{YYYYMMDD}.json
//	{prefix}/ch_profile_{YYYYMMDD}.json
//
// The raw staging loads read them back by processing date. Season and bracket
// of a leaderboard object are recovered from its name with ParseLeaderboardKey.
package landing
