package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRemainingCommittableQueryIsNotConstructed = errors.New(
	"RemainingCommittableQuery must be created via NewRemainingCommittableQuery constructor",
)

// RemainingCommittableQuery reports how much of a source line's ordered
// quantity is still unclaimed. Read-only: takes no locks, so the answer
// is advisory and the commands re-check inside their own transaction.
type RemainingCommittableQuery struct {
	sourceLineID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemainingCommittableQuery creates a query for one source line.
func NewRemainingCommittableQuery(sourceLineID kernel.UUID) (RemainingCommittableQuery, error) {
	if err := sourceLineID.Validate(); err != nil {
		return RemainingCommittableQuery{}, err
	}
	return RemainingCommittableQuery{
		sourceLineID: sourceLineID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q RemainingCommittableQuery) Validate() error {
	return q.guard.Validate(ErrRemainingCommittableQueryIsNotConstructed)
}

// SourceLineID returns the source line to inspect.
func (q RemainingCommittableQuery) SourceLineID() kernel.UUID {
	return q.sourceLineID
}

// RemainingCommittableQueryResponse is the availability snapshot of one
// source line.
type RemainingCommittableQueryResponse struct {
	SourceLineID kernel.UUID
	ProductID    kernel.UUID
	Ordered      kernel.Quantity
	Committed    kernel.Quantity
	Remaining    kernel.Quantity
}
