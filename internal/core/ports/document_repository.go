// Package ports defines the contracts between the fulfillment domain and
// its infrastructure adapters, enabling dependency inversion: command
// handlers depend on these interfaces, and the postgres adapters (or
// in-memory fakes in tests) implement them.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
)

// DocumentRepository defines the persistence contract for document
// aggregates. Implementations persist the header, the line set, and the
// status-transition audit trail together, and must run on the unit of
// work's transaction when obtained through it.
type DocumentRepository interface {
	// Add persists a new document aggregate with its lines and drains its
	// recorded status transitions into the audit trail.
	Add(ctx context.Context, aggregate *document.Document) error

	// Update persists changes to an existing document aggregate. Line
	// rows are reconciled against the aggregate's current line set:
	// removed lines are hard-deleted.
	Update(ctx context.Context, aggregate *document.Document) error

	// Get retrieves a document with its lines by id. Soft-deleted
	// documents are not found.
	Get(ctx context.Context, id kernel.UUID) (*document.Document, error)

	// SoftDelete marks a document deleted without removing its rows.
	// Soft-deleted documents are excluded from reconciliation sums.
	SoftDelete(ctx context.Context, id kernel.UUID) error

	// NextNumber assigns the next document number for the kind:
	// PREFIX-YYYYMMDD-NNNNN, derived from the highest existing number
	// with that date prefix. Must be called inside the transaction that
	// inserts the document; a unique index is the final backstop.
	NextNumber(ctx context.Context, kind document.Kind) (string, error)

	// PurgeDeleted hard-deletes documents soft-deleted before the cutoff,
	// together with their lines and audit trail. Returns the number of
	// documents removed. Callers must keep the cutoff well behind the
	// current day so number sequences in flight are not affected.
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}
