package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRemoveLineCommandIsNotConstructed = errors.New(
	"RemoveLineCommand must be created via NewRemoveLineCommand constructor",
)

// RemoveLineCommand represents a request to hard-delete a line from a
// document that is still in a mutable status. Removal frees the line's
// committed quantity for sibling documents.
type RemoveLineCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	lineID     kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveLineCommand creates a command to remove a document line.
func NewRemoveLineCommand(documentID, lineID, actorID kernel.UUID) (RemoveLineCommand, error) {
	cmd := RemoveLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&cmd.documentID, documentID),
		validateID(&cmd.lineID, lineID),
		validateID(&cmd.actorID, actorID),
	); err != nil {
		return RemoveLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineCommandIsNotConstructed)
}

// DocumentID returns the target document.
func (c RemoveLineCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// LineID returns the line to remove.
func (c RemoveLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// ActorID returns the acting user.
func (c RemoveLineCommand) ActorID() kernel.UUID {
	return c.actorID
}
