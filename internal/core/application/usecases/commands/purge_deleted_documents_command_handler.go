package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// PurgeDeletedDocumentsCommandHandler removes document tombstones past
// the retention window, including their lines and audit trail.
type PurgeDeletedDocumentsCommandHandler struct {
	coordinator Coordinator
}

// NewPurgeDeletedDocumentsCommandHandler creates a handler for tombstone
// purges.
func NewPurgeDeletedDocumentsCommandHandler(coordinator Coordinator) PurgeDeletedDocumentsCommandHandler {
	return PurgeDeletedDocumentsCommandHandler{coordinator: coordinator}
}

// Handle processes the purge command and returns the number of
// documents removed.
func (h PurgeDeletedDocumentsCommandHandler) Handle(ctx context.Context, cmd PurgeDeletedDocumentsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	var purged int64
	err := h.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		cutoff := time.Now().UTC().Add(-cmd.Retention())

		n, err := uow.DocumentRepository().PurgeDeleted(ctx, cutoff)
		if err != nil {
			return err
		}

		purged = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return purged, nil
}
