// Package sourceline contains the read model for order lines that
// authorize movement. Source lines are created when their parent order is
// confirmed and are read-only to the fulfillment engine: documents
// consume their capacity but never change them.
package sourceline

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrSourceLineIsNotConstructed is returned when a SourceLine was not
// created through NewSourceLine.
var ErrSourceLineIsNotConstructed = errors.New("SourceLine must be created via NewSourceLine")

// SourceLine is an order line (sales-order item, transfer request line,
// return request line) exposing the quantity it authorizes. The ordered
// quantity is immutable once any document line references it.
type SourceLine struct {
	id        kernel.UUID
	parentID  kernel.UUID
	productID kernel.UUID
	ordered   kernel.Quantity

	isConstructed bool
}

// NewSourceLine creates a source line read model. The engine only ever
// builds these from persisted order data.
func NewSourceLine(id, parentID, productID kernel.UUID, ordered kernel.Quantity) (*SourceLine, error) {
	if err := errors.Join(id.Validate(), parentID.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if !ordered.IsPositive() {
		return nil, errors.New("ordered quantity must be positive")
	}

	return &SourceLine{
		id:            id,
		parentID:      parentID,
		productID:     productID,
		ordered:       ordered,
		isConstructed: true,
	}, nil
}

// Validate ensures the source line was created through NewSourceLine.
func (s *SourceLine) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSourceLineIsNotConstructed
	}
	return nil
}

// ID returns the source line's unique identifier.
func (s *SourceLine) ID() kernel.UUID {
	return s.id
}

// ParentID returns the identifier of the parent order or request.
func (s *SourceLine) ParentID() kernel.UUID {
	return s.parentID
}

// ProductID returns the product or variant this line authorizes.
func (s *SourceLine) ProductID() kernel.UUID {
	return s.productID
}

// Ordered returns the authorized quantity.
func (s *SourceLine) Ordered() kernel.Quantity {
	return s.ordered
}

// Availability is the reconciliation snapshot for one source line:
// the ordered quantity, the total already committed by other document
// lines, and the remainder a candidate may still claim.
type Availability struct {
	Ordered   kernel.Quantity
	Committed kernel.Quantity
}

// Remaining returns ordered minus committed. The result can be negative
// only if storage already violates the invariant; callers treat anything
// below the candidate quantity as a rejection.
func (a Availability) Remaining() kernel.Quantity {
	return a.Ordered.Sub(a.Committed)
}
