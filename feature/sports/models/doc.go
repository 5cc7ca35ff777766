// Package models defines the persisted sports entities: sports, teams,
// games, per-game team statistics, and bookmaker odds snapshots.
//
// Two consistency models coexist deliberately. Team rows are diffed
// field-by-field on update; TeamStatistic rows are fully overwritten on
// every refresh. Odds rows are append-only snapshots. These must not be
// collapsed into a shared upsert helper.
package models
