// Package characters selects the top ranked characters of a day and enriches
// them with their profiles.
//
// # Pipeline
//
// Pipeline.Run composes three stages, all in memory:
//
//   - Selector reads cur_pvp_leaderboard through a RankedStore, ranks every
//     bracket densely (rank asc, wins desc, losses asc, char id asc), keeps one
//     record per character (lowest bracket rank, then bracket priority), orders
//     the survivors across brackets and truncates to the limit. No eligible
//     rows is fatal (ErrEmptyDataset).
//   - DetailFetcher issues one profile GET per candidate on a bounded errgroup.
//     Every result lands in the slot of its candidate, so output order equals
//     input order. Failures become absent payloads and are only logged.
//   - Assemble extracts faction, class, spec and item levels through Payload,
//     whose accessors return nil for any missing or mistyped key. No surviving
//     rows is fatal (ErrNoEnrichedRecords).
//
// The bearer token is passed in by the caller; the pipeline never obtains or
// refreshes credentials.
//
// # Staging
//
// Service.Extract lands the enriched rows as ch_profile_{date}.json.
// LoadRaw and Transform then rebuild raw_chinfo and cur_chinfo for the date.
// The feature serves cur_chinfo read-only at GET /characters/:date.
package characters
