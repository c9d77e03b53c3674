// Package database handles the staging database connection and schema inspection.
//
// It provides a wrapper around GORM to configure SQLite (the default local staging file),
// MySQL or Postgres connections based on the application's configuration. The staging
// database holds the raw and curated leaderboard and character tables that feed the
// selection step and the warehouse publish.
//
// # Schema Inspection
//
// GetTableColumns reads the column definitions of a table. The check command uses it to
// verify that the staging tables match the models before a run.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "cur_pvp_leaderboard")
package database
