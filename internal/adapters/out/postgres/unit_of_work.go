// Package postgres provides the GORM-based unit of work, the repository
// adapters, and the conflict-retrying transactional coordinator.
//
// Every command runs inside one SERIALIZABLE transaction: the ledger
// read, the reconciliation decision, and the aggregate write see a
// single consistent snapshot, so two concurrent commands deciding
// against the same source line cannot both commit an overcommitting
// write. The price is serialization failures under contention, which
// the coordinator absorbs by retrying the whole unit of work.
package postgres

import (
	"context"
	"database/sql"

	"fulfillment/internal/adapters/out/postgres/documentrepo"
	"fulfillment/internal/adapters/out/postgres/sourcelinerepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate records an aggregate modified during the unit of
// work, for post-commit processing such as event publishing.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances bound to one GORM
// connection pool. Each business operation gets a fresh instance.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory over the given connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the
// document repository and the source line ledger.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens a SERIALIZABLE transaction. Calling Begin again on an
// instance with an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin(&sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// DocumentRepository returns a document repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) DocumentRepository() ports.DocumentRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return documentrepo.NewGormDocumentRepository(db, uow)
}

// SourceLineLedger returns a ledger bound to the current transaction.
func (uow *GormUnitOfWork) SourceLineLedger() ports.SourceLineLedger {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return sourcelinerepo.NewGormSourceLineLedger(db)
}

// TrackAggregate registers an aggregate as modified within this unit of
// work. Called by the repositories on add and update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
