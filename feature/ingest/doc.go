// Package ingest reconciles upstream sports feeds into the local store.
//
// Each entity family has its own update discipline. Teams are diffed field
// by field. Box score statistics are fully overwritten on every refresh.
// Odds are append-only snapshots. Game completion moves forward only: once
// a game is complete it never reopens, whatever later feeds claim.
//
// A reconciliation call buffers all writes and flushes them in a single
// transaction, so a partially applied feed never becomes visible.
package ingest
