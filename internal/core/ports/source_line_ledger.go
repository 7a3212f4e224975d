package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sourceline"
)

// SourceLineLedger is the read-side contract over order lines: what was
// ordered, and how much of it sibling documents have already committed.
//
// Both methods must observe the snapshot of the caller's transaction.
// The postgres implementation locks the source line row so that two
// concurrent units of work deciding against the same source line
// serialize instead of racing read-then-write.
type SourceLineLedger interface {
	// Get resolves a source line by id. Returns an ObjectNotFoundError
	// if it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*sourceline.SourceLine, error)

	// RemainingCommittable returns the ordered quantity and the total
	// committed by all other non-deleted document lines referencing the
	// source line. Lines of cancelled or soft-deleted documents commit
	// nothing. excludeLineID, when non-nil, leaves that line's own
	// commitment out of the sum so updates validate against their
	// replacement value.
	RemainingCommittable(ctx context.Context, sourceLineID kernel.UUID, excludeLineID *kernel.UUID) (sourceline.Availability, error)
}
