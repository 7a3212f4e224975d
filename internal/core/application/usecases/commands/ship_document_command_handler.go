package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ShipDocumentCommandHandler transitions a document to Shipped. Each
// shipped quantity is re-reconciled against its source line before the
// transition is applied: once shipped, the shipped quantity replaces the
// requested one as the line's commitment, so it must fit the remainder
// just like an initial request would.
type ShipDocumentCommandHandler struct {
	coordinator Coordinator
}

// NewShipDocumentCommandHandler creates a handler for shipping documents.
func NewShipDocumentCommandHandler(coordinator Coordinator) ShipDocumentCommandHandler {
	return ShipDocumentCommandHandler{coordinator: coordinator}
}

// Handle processes the ship-document command.
func (h ShipDocumentCommandHandler) Handle(ctx context.Context, cmd ShipDocumentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.DocumentRepository()
		ledger := uow.SourceLineLedger()
		reconciler := services.NewReconciler(ledger)

		doc, err := repo.Get(ctx, cmd.DocumentID())
		if err != nil {
			return err
		}

		shipments := make([]document.LineShipment, 0, len(cmd.Shipments()))
		for _, input := range cmd.Shipments() {
			line, err := doc.Line(input.LineID)
			if err != nil {
				return err
			}

			excludeID := line.ID()
			if err := reconciler.ValidateCommit(ctx, services.Candidate{
				SourceLineID:  line.SourceLineID(),
				ProductID:     line.ProductID(),
				Quantity:      input.Quantity,
				ExcludeLineID: &excludeID,
			}); err != nil {
				return err
			}

			shipments = append(shipments, document.LineShipment{
				LineID:   input.LineID,
				Quantity: input.Quantity,
			})
		}

		if err := doc.Ship(shipments, cmd.ActorID(), time.Now().UTC()); err != nil {
			return err
		}

		return repo.Update(ctx, doc)
	})
}
