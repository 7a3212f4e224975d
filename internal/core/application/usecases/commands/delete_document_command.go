package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeleteDocumentCommandIsNotConstructed = errors.New(
	"DeleteDocumentCommand must be created via NewDeleteDocumentCommand constructor",
)

// DeleteDocumentCommand represents a request to soft-delete a document.
// The row is tombstoned, not removed: it stays queryable for audit but
// stops counting toward its source lines' commitments. A purge job
// removes tombstones after the retention window.
type DeleteDocumentCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteDocumentCommand creates a command to soft-delete a document.
func NewDeleteDocumentCommand(documentID, actorID kernel.UUID) (DeleteDocumentCommand, error) {
	cmd := DeleteDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&cmd.documentID, documentID),
		validateID(&cmd.actorID, actorID),
	); err != nil {
		return DeleteDocumentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDocumentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDocumentCommandIsNotConstructed)
}

// DocumentID returns the document to soft-delete.
func (c DeleteDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// ActorID returns the acting user.
func (c DeleteDocumentCommand) ActorID() kernel.UUID {
	return c.actorID
}
