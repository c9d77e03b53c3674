// Package snapshot publishes the curated staging tables of a processing date
// into the warehouse star schema.
package snapshot
