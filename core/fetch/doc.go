// Package fetch is the resilience layer around provider HTTP calls.
//
// It retries transient failures (5xx, 429, transport errors) with
// exponential backoff up to a fixed attempt cap, and surfaces
// non-transient 4xx responses immediately as NotFound. Reconciliation
// code branches on the returned Outcome rather than inspecting status
// codes or error strings.
package fetch
