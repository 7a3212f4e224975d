package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// UpdateLineCommandHandler corrects a line's requested quantity within
// one unit of work, excluding the line's own prior commitment from the
// reconciliation sum.
type UpdateLineCommandHandler struct {
	coordinator Coordinator
}

// NewUpdateLineCommandHandler creates a handler for line corrections.
func NewUpdateLineCommandHandler(coordinator Coordinator) UpdateLineCommandHandler {
	return UpdateLineCommandHandler{coordinator: coordinator}
}

// Handle processes the update-line command.
func (h UpdateLineCommandHandler) Handle(ctx context.Context, cmd UpdateLineCommand) error {
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

		line, err := doc.Line(cmd.LineID())
		if err != nil {
			return err
		}

		excludeID := line.ID()
		if err := reconciler.ValidateCommit(ctx, services.Candidate{
			SourceLineID:  line.SourceLineID(),
			ProductID:     line.ProductID(),
			Quantity:      cmd.Quantity(),
			ExcludeLineID: &excludeID,
		}); err != nil {
			return err
		}

		if _, err := doc.UpdateLineRequested(cmd.LineID(), cmd.Quantity()); err != nil {
			return err
		}

		return repo.Update(ctx, doc)
	})
}
