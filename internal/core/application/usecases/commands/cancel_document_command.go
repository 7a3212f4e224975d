package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelDocumentCommandIsNotConstructed = errors.New(
	"CancelDocumentCommand must be created via NewCancelDocumentCommand constructor",
)

// CancelDocumentCommand represents a request to cancel a document.
// Cancelling zeroes the document's commitment against its source lines.
type CancelDocumentCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelDocumentCommand creates a command to cancel a document.
func NewCancelDocumentCommand(documentID, actorID kernel.UUID) (CancelDocumentCommand, error) {
	cmd := CancelDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&cmd.documentID, documentID),
		validateID(&cmd.actorID, actorID),
	); err != nil {
		return CancelDocumentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDocumentCommand) Validate() error {
	return c.guard.Validate(ErrCancelDocumentCommandIsNotConstructed)
}

// DocumentID returns the document to cancel.
func (c CancelDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// ActorID returns the acting user.
func (c CancelDocumentCommand) ActorID() kernel.UUID {
	return c.actorID
}
