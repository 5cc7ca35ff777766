// Package sports exposes the read side of the pipeline: games, box score
// statistics, and bookmaker odds queried by date range over HTTP.
//
// The package also owns the Store, the buffered persistence layer shared
// with ingestion. Queries read through directly; mutations accumulate in
// memory and land in a single transaction per reconciliation pass.
package sports
