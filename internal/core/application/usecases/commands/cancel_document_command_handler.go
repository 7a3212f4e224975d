package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// CancelDocumentCommandHandler cancels a document from any non-terminal
// status.
type CancelDocumentCommandHandler struct {
	coordinator Coordinator
}

// NewCancelDocumentCommandHandler creates a handler for cancellations.
func NewCancelDocumentCommandHandler(coordinator Coordinator) CancelDocumentCommandHandler {
	return CancelDocumentCommandHandler{coordinator: coordinator}
}

// Handle processes the cancel-document command.
func (h CancelDocumentCommandHandler) Handle(ctx context.Context, cmd CancelDocumentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.DocumentRepository()

		doc, err := repo.Get(ctx, cmd.DocumentID())
		if err != nil {
			return err
		}

		if err := doc.Cancel(cmd.ActorID(), time.Now().UTC()); err != nil {
			return err
		}

		return repo.Update(ctx, doc)
	})
}
