package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// RemoveLineCommandHandler hard-deletes a line from a mutable document.
type RemoveLineCommandHandler struct {
	coordinator Coordinator
}

// NewRemoveLineCommandHandler creates a handler for line removals.
func NewRemoveLineCommandHandler(coordinator Coordinator) RemoveLineCommandHandler {
	return RemoveLineCommandHandler{coordinator: coordinator}
}

// Handle processes the remove-line command.
func (h RemoveLineCommandHandler) Handle(ctx context.Context, cmd RemoveLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.DocumentRepository()

		doc, err := repo.Get(ctx, cmd.DocumentID())
		if err != nil {
			return err
		}

		if err := doc.RemoveLine(cmd.LineID()); err != nil {
			return err
		}

		return repo.Update(ctx, doc)
	})
}
