// Package storage exposes the narrow record-store contract the compliance
// engine consumes: put, get, delete, list-ids and a predicate scan. Each call
// is atomic per record; there are no multi-record transactions, which is why
// the engine's check-then-create sequences are backed by idempotent cleanup
// instead of locking.
package storage

import "context"

// Record is anything addressable by an opaque string id.
type Record interface {
	RecordID() string
}

type Store[T Record] interface {
	// Put inserts or replaces the record.
	Put(ctx context.Context, rec *T) error
	// Get returns the record or utils.ErrorRecordNotFound.
	Get(ctx context.Context, id string) (*T, error)
	// Delete removes the record. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
	// ListIds returns every record id in the collection.
	ListIds(ctx context.Context) ([]string, error)
	// Scan returns all records matching keep. A nil keep matches everything.
	// Scans are capped (config.ScanCap); oversized collections are truncated
	// with a warning rather than processed exhaustively.
	Scan(ctx context.Context, keep func(*T) bool) ([]*T, error)
}
