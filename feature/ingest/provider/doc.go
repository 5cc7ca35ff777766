// Package provider fetches upstream sports feeds: league hierarchy, daily
// schedules, box scores, and betting odds in the two wire shapes the odds
// sources emit (team-name keyed events and numeric-outcome markets).
//
// All calls go through the resilient fetch client; a NotFound outcome means
// the provider has no data for the request and is never an error here.
package provider
