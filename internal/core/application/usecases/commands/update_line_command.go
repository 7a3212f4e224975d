package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateLineCommandIsNotConstructed = errors.New(
	"UpdateLineCommand must be created via NewUpdateLineCommand constructor",
)

// UpdateLineCommand represents a quantity correction on an existing
// line. Reconciliation excludes the line's own prior commitment, so
// lowering a quantity always succeeds and raising one succeeds exactly
// when the increase still fits.
type UpdateLineCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	lineID     kernel.UUID
	quantity   kernel.Quantity
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateLineCommand creates a command to correct a line's quantity.
func NewUpdateLineCommand(documentID, lineID kernel.UUID, quantity kernel.Quantity, actorID kernel.UUID) (UpdateLineCommand, error) {
	cmd := UpdateLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&cmd.documentID, documentID),
		validateID(&cmd.lineID, lineID),
		validateID(&cmd.actorID, actorID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLineCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLineCommandIsNotConstructed)
}

// DocumentID returns the target document.
func (c UpdateLineCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// LineID returns the line to correct.
func (c UpdateLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// Quantity returns the replacement quantity.
func (c UpdateLineCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// ActorID returns the acting user.
func (c UpdateLineCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *UpdateLineCommand) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidError("quantity")
	}
	c.quantity = quantity
	return nil
}
