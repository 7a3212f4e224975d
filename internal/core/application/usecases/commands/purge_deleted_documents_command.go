package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPurgeDeletedDocumentsCommandIsNotConstructed = errors.New(
	"PurgeDeletedDocumentsCommand must be created via NewPurgeDeletedDocumentsCommand constructor",
)

// PurgeDeletedDocumentsCommand represents a request to hard-delete
// document tombstones older than the retention window. Issued by the
// purge job, not by API callers.
type PurgeDeletedDocumentsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewPurgeDeletedDocumentsCommand creates a purge command with the given
// retention window. The window must be positive so an in-flight soft
// delete can never be purged in the same instant.
func NewPurgeDeletedDocumentsCommand(retention time.Duration) (PurgeDeletedDocumentsCommand, error) {
	if retention <= 0 {
		return PurgeDeletedDocumentsCommand{}, errs.NewValueIsOutOfRangeError(
			"retention", retention, time.Nanosecond, nil)
	}

	return PurgeDeletedDocumentsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeDeletedDocumentsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeDeletedDocumentsCommandIsNotConstructed)
}

// Retention returns the retention window for tombstones.
func (c PurgeDeletedDocumentsCommand) Retention() time.Duration {
	return c.retention
}
