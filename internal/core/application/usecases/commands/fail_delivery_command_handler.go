package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// FailDeliveryCommandHandler marks a shipped delivery as failed. The
// shipped quantities stay committed: the goods are still out of the
// warehouse until a return flow brings them back.
type FailDeliveryCommandHandler struct {
	coordinator Coordinator
}

// NewFailDeliveryCommandHandler creates a handler for failed deliveries.
func NewFailDeliveryCommandHandler(coordinator Coordinator) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{coordinator: coordinator}
}

// Handle processes the fail-delivery command.
func (h FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.DocumentRepository()

		doc, err := repo.Get(ctx, cmd.DocumentID())
		if err != nil {
			return err
		}

		if err := doc.FailDelivery(cmd.ActorID(), time.Now().UTC()); err != nil {
			return err
		}

		return repo.Update(ctx, doc)
	})
}
