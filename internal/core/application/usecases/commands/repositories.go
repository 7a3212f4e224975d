// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// one transactional unit of work, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Transaction interfaces used by the command handlers. Handlers never
// open transactions themselves: the Coordinator owns begin/commit/
// rollback and the conflict-retry policy, so a unit of work is always
// exactly one atomic attempt.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// Coordinator runs a unit of work atomically. The function receives
	// a transaction-bound UnitOfWork; if it returns nil the transaction
	// commits, otherwise it rolls back. Serialization conflicts are
	// retried a bounded number of times before surfacing a Conflict
	// error; business-rule rejections are returned as-is, never retried.
	Coordinator interface {
		Run(ctx context.Context, fn func(uow ports.UnitOfWork) error) error
	}
)
