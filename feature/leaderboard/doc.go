// Package leaderboard extracts and stages the PvP leaderboards.
//
// # Flow
//
//  1. Extract resolves the current season and fetches every configured
//     bracket concurrently, landing one JSON object per bracket.
//  2. LoadRaw replaces the date's rows in raw_pvp_leaderboard with the landed
//     entries. Every column stays text; bracket and season come from the
//     object name.
//  3. Transform rebuilds the date's rows in cur_pvp_leaderboard with typed
//     columns. Text that does not parse becomes NULL.
//
// cur_pvp_leaderboard is the ranked source of character selection. The
// feature also serves it read-only at GET /leaderboard/:date.
package leaderboard
