package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/ports"
)

// ReceiveDocumentCommandHandler records arrival of shipped goods and,
// when every line is fully received, completes the document.
type ReceiveDocumentCommandHandler struct {
	coordinator Coordinator
}

// NewReceiveDocumentCommandHandler creates a handler for receiving documents.
func NewReceiveDocumentCommandHandler(coordinator Coordinator) ReceiveDocumentCommandHandler {
	return ReceiveDocumentCommandHandler{coordinator: coordinator}
}

// Handle processes the receive-document command.
func (h ReceiveDocumentCommandHandler) Handle(ctx context.Context, cmd ReceiveDocumentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.DocumentRepository()

		doc, err := repo.Get(ctx, cmd.DocumentID())
		if err != nil {
			return err
		}

		receipts := make([]document.LineReceipt, 0, len(cmd.Receipts()))
		for _, input := range cmd.Receipts() {
			receipts = append(receipts, document.LineReceipt{
				LineID:   input.LineID,
				Quantity: input.Quantity,
			})
		}

		if err := doc.Receive(receipts, cmd.ActorID(), time.Now().UTC()); err != nil {
			return err
		}

		return repo.Update(ctx, doc)
	})
}
