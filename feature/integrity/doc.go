// Package integrity provides health checks over the pipeline's stores.
//
// # Checks Provided
//
//   - Staging: Validates that the staging tables exist with every column of their models.
//   - Warehouse: Validates the star schema tables the same way.
//   - Landing: Verifies that a processing date has one leaderboard snapshot per
//     configured bracket and a character profile snapshot.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs the schema checks, and the landing check with ?date=YYYYMMDD.
//   - GET /integrity/staging : Runs the staging schema check.
//   - GET /integrity/warehouse : Runs the warehouse schema check.
//   - GET /integrity/landing/:date : Runs the landing check for a date.
package integrity
