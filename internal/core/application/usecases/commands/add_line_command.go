package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddLineCommandIsNotConstructed = errors.New(
	"AddLineCommand must be created via NewAddLineCommand constructor",
)

// AddLineCommand represents a request to add one line to an existing
// document. The document must still be in a mutable status and the
// quantity must fit within the source line's remaining committable
// capacity.
type AddLineCommand struct { //nolint:recvcheck //using for validation
	documentID   kernel.UUID
	sourceLineID kernel.UUID
	quantity     kernel.Quantity
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddLineCommand creates a command to add a line to a document.
func NewAddLineCommand(documentID, sourceLineID kernel.UUID, quantity kernel.Quantity, actorID kernel.UUID) (AddLineCommand, error) {
	cmd := AddLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&cmd.documentID, documentID),
		validateID(&cmd.sourceLineID, sourceLineID),
		validateID(&cmd.actorID, actorID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddLineCommand) Validate() error {
	return c.guard.Validate(ErrAddLineCommandIsNotConstructed)
}

// DocumentID returns the target document.
func (c AddLineCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// SourceLineID returns the source line the new line consumes.
func (c AddLineCommand) SourceLineID() kernel.UUID {
	return c.sourceLineID
}

// Quantity returns the requested quantity.
func (c AddLineCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// ActorID returns the acting user.
func (c AddLineCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AddLineCommand) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidError("quantity")
	}
	c.quantity = quantity
	return nil
}

// validateID validates an identifier and stores it on success.
// Shared by the command constructors in this package.
func validateID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}
