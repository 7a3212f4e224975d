package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AddLineResponse reports the created line to the caller.
type AddLineResponse struct {
	LineID kernel.UUID
}

// AddLineCommandHandler adds a line to an existing document. Loading the
// document, reconciling the quantity against the source line ledger,
// and persisting the new line happen inside one unit of work.
type AddLineCommandHandler struct {
	coordinator Coordinator
}

// NewAddLineCommandHandler creates a handler for line addition.
func NewAddLineCommandHandler(coordinator Coordinator) AddLineCommandHandler {
	return AddLineCommandHandler{coordinator: coordinator}
}

// Handle processes the add-line command. Status gating, the duplicate
// rule, and the parent-order check are enforced by the aggregate; the
// cross-document quantity rule by the reconciler.
func (h AddLineCommandHandler) Handle(ctx context.Context, cmd AddLineCommand) (AddLineResponse, error) {
	if err := cmd.Validate(); err != nil {
		return AddLineResponse{}, err
	}

	var resp AddLineResponse
	err := h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.DocumentRepository()
		ledger := uow.SourceLineLedger()
		reconciler := services.NewReconciler(ledger)

		doc, err := repo.Get(ctx, cmd.DocumentID())
		if err != nil {
			return err
		}

		src, err := ledger.Get(ctx, cmd.SourceLineID())
		if err != nil {
			return err
		}

		if err := reconciler.ValidateCommit(ctx, services.Candidate{
			SourceLineID: src.ID(),
			ProductID:    src.ProductID(),
			Quantity:     cmd.Quantity(),
		}); err != nil {
			return err
		}

		line, err := doc.AddLine(kernel.NewUUID(), src, cmd.Quantity())
		if err != nil {
			return err
		}

		if err := repo.Update(ctx, doc); err != nil {
			return err
		}

		resp = AddLineResponse{LineID: line.ID()}
		return nil
	})
	if err != nil {
		return AddLineResponse{}, err
	}

	return resp, nil
}
