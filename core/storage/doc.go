// Package storage provides the object storage client used for the raw
// feed archive. Every provider payload fetched during ingestion can be
// persisted under raw/<sport>/<feed>/<date>/ for replay and audit.
package storage
