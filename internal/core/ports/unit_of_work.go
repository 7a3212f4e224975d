package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, keeping
// concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction boundary. Repositories obtained
// from it run on its transaction, so the ledger's read-then-decide and
// the aggregate write see a single consistent snapshot.
//
// Begin opens the transaction with isolation strong enough that two
// concurrent units of work deciding against the same source line cannot
// both commit an overcommitting write (the postgres implementation uses
// SERIALIZABLE). Client code manages the lifecycle explicitly; the
// coordinator in the postgres adapter wraps this with conflict retry.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// DocumentRepository returns a repository bound to the transaction.
	DocumentRepository() DocumentRepository

	// SourceLineLedger returns a ledger bound to the transaction.
	SourceLineLedger() SourceLineLedger
}
