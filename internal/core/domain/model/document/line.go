package document

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine")

// Line is one line inside a fulfillment document. It references exactly
// one source line and carries up to three quantity counters:
//
//   - requested: the quantity this line plans to move
//   - shipped:   the quantity actually shipped (zero until the ship step)
//   - received:  the quantity confirmed received (multi-step kinds)
//
// Invariant: 0 <= received <= shipped <= requested at all times. The
// product reference is denormalized from the source line so the line
// stays meaningful even if the catalog entry changes.
//
// Lines are hard-deleted while their document is mutable; they are never
// soft-deleted.
type Line struct {
	id           kernel.UUID
	sourceLineID kernel.UUID
	productID    kernel.UUID
	requested    kernel.Quantity
	shipped      kernel.Quantity
	received     kernel.Quantity

	isConstructed bool
}

// NewLine creates a line with the given requested quantity and zero
// shipped/received counters.
func NewLine(id, sourceLineID, productID kernel.UUID, requested kernel.Quantity) (*Line, error) {
	if err := errors.Join(id.Validate(), sourceLineID.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if !requested.IsPositive() {
		return nil, errs.NewValueIsInvalidError("requested quantity")
	}

	return &Line{
		id:            id,
		sourceLineID:  sourceLineID,
		productID:     productID,
		requested:     requested,
		shipped:       kernel.ZeroQuantity(),
		received:      kernel.ZeroQuantity(),
		isConstructed: true,
	}, nil
}

// RestoreLine rebuilds a line from persistence, including non-zero
// shipped and received counters. The step invariant is re-checked so a
// corrupted row cannot re-enter the domain.
func RestoreLine(id, sourceLineID, productID kernel.UUID, requested, shipped, received kernel.Quantity) (*Line, error) {
	if err := errors.Join(id.Validate(), sourceLineID.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if shipped.GreaterThan(requested) {
		return nil, errs.NewValueIsOutOfRangeError("shipped", shipped.String(), "0", requested.String())
	}
	if received.GreaterThan(shipped) {
		return nil, errs.NewValueIsOutOfRangeError("received", received.String(), "0", shipped.String())
	}

	return &Line{
		id:            id,
		sourceLineID:  sourceLineID,
		productID:     productID,
		requested:     requested,
		shipped:       shipped,
		received:      received,
		isConstructed: true,
	}, nil
}

// Validate ensures the line was created through a constructor and its
// step counters are consistent.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	if l.shipped.GreaterThan(l.requested) {
		return errs.NewValueIsOutOfRangeError("shipped", l.shipped.String(), "0", l.requested.String())
	}
	if l.received.GreaterThan(l.shipped) {
		return errs.NewValueIsOutOfRangeError("received", l.received.String(), "0", l.shipped.String())
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// SourceLineID returns the identifier of the source line this line consumes.
func (l *Line) SourceLineID() kernel.UUID {
	return l.sourceLineID
}

// ProductID returns the denormalized product reference.
func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

// Requested returns the planned quantity.
func (l *Line) Requested() kernel.Quantity {
	return l.requested
}

// Shipped returns the quantity shipped so far.
func (l *Line) Shipped() kernel.Quantity {
	return l.shipped
}

// Received returns the quantity confirmed received so far.
func (l *Line) Received() kernel.Quantity {
	return l.received
}

// IsFullyReceived reports whether everything shipped on this line has
// been received. Lines that have not shipped anything are not fully
// received.
func (l *Line) IsFullyReceived() bool {
	return l.shipped.IsPositive() && l.received.IsEqual(l.shipped)
}

// setRequested corrects the planned quantity. Only callable through the
// document while it is mutable; reconciliation against the source line
// happens before this is reached.
func (l *Line) setRequested(requested kernel.Quantity) error {
	if !requested.IsPositive() {
		return errs.NewValueIsInvalidError("requested quantity")
	}
	if l.shipped.GreaterThan(requested) {
		return errs.NewValueIsOutOfRangeError("requested", requested.String(), l.shipped.String(), "")
	}
	l.requested = requested
	return nil
}

// ship sets the shipped counter. Shipping more than was requested is
// rejected, never clamped.
func (l *Line) ship(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidError("shipped quantity")
	}
	if quantity.GreaterThan(l.requested) {
		return errs.NewValueIsOutOfRangeError("shipped", quantity.String(), "0", l.requested.String())
	}
	l.shipped = quantity
	return nil
}

// receive sets the received counter. Receiving more than was shipped is
// rejected, never clamped.
func (l *Line) receive(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidError("received quantity")
	}
	if quantity.GreaterThan(l.shipped) {
		return errs.NewValueIsOutOfRangeError("received", quantity.String(), "0", l.shipped.String())
	}
	l.received = quantity
	return nil
}
