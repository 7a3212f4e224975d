// Package services contains domain services: logic that spans aggregates
// and therefore cannot live inside a single one. The reconciliation
// service is the only component permitted to read-and-decide against the
// committed-quantity sum of a source line.
package services

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sourceline"
	"fulfillment/internal/pkg/errs"
)

// CommittableReader supplies the reconciliation snapshot for a source
// line. Implementations must execute inside the caller's transaction so
// the read and the subsequent write see one consistent state; the
// postgres ledger additionally locks the source line row for the
// duration of the unit of work.
type CommittableReader interface {
	// RemainingCommittable returns the ordered quantity and the committed
	// total across all other non-deleted document lines referencing the
	// source line. excludeLineID, when non-nil, removes the named line's
	// own prior commitment from the sum so updates validate against the
	// capacity they would occupy, not the capacity they already hold.
	RemainingCommittable(ctx context.Context, sourceLineID kernel.UUID, excludeLineID *kernel.UUID) (sourceline.Availability, error)
}

// Candidate is one proposed line commitment to validate: the source line
// it draws from, the product (for diagnostics), the quantity it wants to
// claim at the current step, and optionally the line whose prior
// commitment should be excluded from the sibling sum.
type Candidate struct {
	SourceLineID  kernel.UUID
	ProductID     kernel.UUID
	Quantity      kernel.Quantity
	ExcludeLineID *kernel.UUID
}

// Reconciler validates candidate line commitments against the remaining
// committable capacity of their source lines.
//
// The reconciler is a pure decision function over snapshot reads: it has
// no side effects and never mutates the sum it checks. There is no
// clamping: a candidate that exceeds the remaining capacity is rejected
// with the full numeric bounds, never truncated to fit. Silent
// truncation would hide operator error.
type Reconciler struct {
	reader CommittableReader
}

// NewReconciler creates a reconciler over the given committable reader.
func NewReconciler(reader CommittableReader) Reconciler {
	return Reconciler{reader: reader}
}

// ValidateCommit accepts or rejects a candidate commitment.
//
// Rejections:
//   - non-positive quantity: ValueIsInvalid
//   - quantity greater than the remaining committable amount:
//     QuantityExceeded, carrying the requested amount, the remainder,
//     and the ordered/committed totals for user-facing diagnostics
//
// Step-order violations (receiving more than was shipped, shipping more
// than was requested) are owned by the document aggregate; this service
// owns only the cross-document capacity rule.
func (r Reconciler) ValidateCommit(ctx context.Context, candidate Candidate) error {
	if err := candidate.SourceLineID.Validate(); err != nil {
		return err
	}
	if !candidate.Quantity.IsPositive() {
		return errs.NewValueIsInvalidError("quantity")
	}

	availability, err := r.reader.RemainingCommittable(ctx, candidate.SourceLineID, candidate.ExcludeLineID)
	if err != nil {
		return err
	}

	remaining := availability.Remaining()
	if candidate.Quantity.GreaterThan(remaining) {
		return errs.NewQuantityExceededError(
			candidate.ProductID.String(),
			candidate.SourceLineID.String(),
			candidate.Quantity.Decimal(),
			remaining.Decimal(),
			availability.Ordered.Decimal(),
			availability.Committed.Decimal(),
		)
	}
	return nil
}
