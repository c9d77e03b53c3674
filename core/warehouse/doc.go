// Package warehouse connects to the analytical warehouse and owns its schema.
//
// The warehouse is Redshift in production and is reached through the gorm
// postgres driver with the simple query protocol. The star schema
// (dim_season, dim_bracket, dim_character_scd2, fact_pvp_leaderboard_snapshot)
// is created by forward-only goose migrations embedded in the binary. Local
// runs and tests use the sqlite3 dialect with the same migrations.
package warehouse
