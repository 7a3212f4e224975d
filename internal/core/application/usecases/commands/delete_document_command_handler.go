package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// DeleteDocumentCommandHandler soft-deletes a document that has not yet
// shipped.
type DeleteDocumentCommandHandler struct {
	coordinator Coordinator
}

// NewDeleteDocumentCommandHandler creates a handler for soft deletions.
func NewDeleteDocumentCommandHandler(coordinator Coordinator) DeleteDocumentCommandHandler {
	return DeleteDocumentCommandHandler{coordinator: coordinator}
}

// Handle processes the delete-document command.
func (h DeleteDocumentCommandHandler) Handle(ctx context.Context, cmd DeleteDocumentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.DocumentRepository()

		doc, err := repo.Get(ctx, cmd.DocumentID())
		if err != nil {
			return err
		}

		if err := doc.EnsureDeletable(); err != nil {
			return err
		}

		return repo.SoftDelete(ctx, doc.ID())
	})
}
