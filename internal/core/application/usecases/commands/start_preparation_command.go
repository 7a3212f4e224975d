package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartPreparationCommandIsNotConstructed = errors.New(
	"StartPreparationCommand must be created via NewStartPreparationCommand constructor",
)

// StartPreparationCommand represents a request to move a pending
// document into preparation. Lines stay editable; the transition only
// signals that warehouse work has begun.
type StartPreparationCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPreparationCommand creates a command to start preparation.
func NewStartPreparationCommand(documentID, actorID kernel.UUID) (StartPreparationCommand, error) {
	cmd := StartPreparationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&cmd.documentID, documentID),
		validateID(&cmd.actorID, actorID),
	); err != nil {
		return StartPreparationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPreparationCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparationCommandIsNotConstructed)
}

// DocumentID returns the document to move into preparation.
func (c StartPreparationCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// ActorID returns the acting user.
func (c StartPreparationCommand) ActorID() kernel.UUID {
	return c.actorID
}
