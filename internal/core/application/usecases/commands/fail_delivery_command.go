package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrFailDeliveryCommandIsNotConstructed = errors.New(
	"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
)

// FailDeliveryCommand represents a courier's report that a shipped
// delivery could not be handed over. Only delivery documents support
// this outcome.
type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewFailDeliveryCommand creates a command to mark a delivery as failed.
func NewFailDeliveryCommand(documentID, actorID kernel.UUID) (FailDeliveryCommand, error) {
	cmd := FailDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&cmd.documentID, documentID),
		validateID(&cmd.actorID, actorID),
	); err != nil {
		return FailDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

// DocumentID returns the delivery that failed.
func (c FailDeliveryCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// ActorID returns the acting user.
func (c FailDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}
