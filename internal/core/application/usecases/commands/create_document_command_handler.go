package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateDocumentResponse reports the created document to the caller.
type CreateDocumentResponse struct {
	DocumentID kernel.UUID
	Number     string
	Status     document.Status
}

// CreateDocumentCommandHandler handles document creation. The document
// number, the reconciliation of every initial line, and the insert all
// happen inside one unit of work, so concurrent creations against the
// same source line cannot jointly overcommit it and concurrent
// creations of the same kind cannot collide on a number.
type CreateDocumentCommandHandler struct {
	coordinator Coordinator
}

// NewCreateDocumentCommandHandler creates a handler for document creation.
func NewCreateDocumentCommandHandler(coordinator Coordinator) CreateDocumentCommandHandler {
	return CreateDocumentCommandHandler{coordinator: coordinator}
}

// Handle processes the document creation command.
func (h CreateDocumentCommandHandler) Handle(ctx context.Context, cmd CreateDocumentCommand) (CreateDocumentResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateDocumentResponse{}, err
	}

	var resp CreateDocumentResponse
	err := h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.DocumentRepository()
		ledger := uow.SourceLineLedger()
		reconciler := services.NewReconciler(ledger)

		number, err := repo.NextNumber(ctx, cmd.Kind())
		if err != nil {
			return err
		}

		doc, err := document.NewDocument(
			kernel.NewUUID(),
			cmd.Kind(),
			number,
			cmd.ParentID(),
			cmd.OriginID(),
			cmd.DestinationID(),
			cmd.Notes(),
			cmd.ActorID(),
			time.Now().UTC(),
		)
		if err != nil {
			return err
		}

		for _, input := range cmd.Lines() {
			src, err := ledger.Get(ctx, input.SourceLineID)
			if err != nil {
				return err
			}

			if err := reconciler.ValidateCommit(ctx, services.Candidate{
				SourceLineID: src.ID(),
				ProductID:    src.ProductID(),
				Quantity:     input.Quantity,
			}); err != nil {
				return err
			}

			if _, err := doc.AddLine(kernel.NewUUID(), src, input.Quantity); err != nil {
				return err
			}
		}

		if err := repo.Add(ctx, doc); err != nil {
			return err
		}

		resp = CreateDocumentResponse{
			DocumentID: doc.ID(),
			Number:     doc.Number(),
			Status:     doc.Status(),
		}
		return nil
	})
	if err != nil {
		return CreateDocumentResponse{}, err
	}

	return resp, nil
}
