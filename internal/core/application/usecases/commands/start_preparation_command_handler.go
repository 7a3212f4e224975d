package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// StartPreparationCommandHandler moves a pending document into
// preparation.
type StartPreparationCommandHandler struct {
	coordinator Coordinator
}

// NewStartPreparationCommandHandler creates a handler for the transition.
func NewStartPreparationCommandHandler(coordinator Coordinator) StartPreparationCommandHandler {
	return StartPreparationCommandHandler{coordinator: coordinator}
}

// Handle processes the start-preparation command.
func (h StartPreparationCommandHandler) Handle(ctx context.Context, cmd StartPreparationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.DocumentRepository()

		doc, err := repo.Get(ctx, cmd.DocumentID())
		if err != nil {
			return err
		}

		if err := doc.StartPreparation(cmd.ActorID(), time.Now().UTC()); err != nil {
			return err
		}

		return repo.Update(ctx, doc)
	})
}
