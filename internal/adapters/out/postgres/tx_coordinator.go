package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"
)

// Postgres error classes the coordinator treats as transient: the
// transaction lost a race, not the business rules.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	uniqueViolation      = "23505"
)

const defaultMaxAttempts = 5

// TxCoordinator runs a unit of work per attempt and retries the whole
// thing on serialization conflicts, with exponential backoff between
// attempts. Business-rule rejections are surfaced immediately; only
// transient conflict classes are retried. When the attempt budget is
// exhausted the caller receives a ConflictError.
type TxCoordinator struct {
	factory     ports.UnitOfWorkFactory
	maxAttempts int
	log         *slog.Logger
}

// NewTxCoordinator creates a coordinator over the unit-of-work factory.
func NewTxCoordinator(factory ports.UnitOfWorkFactory, log *slog.Logger) *TxCoordinator {
	return &TxCoordinator{
		factory:     factory,
		maxAttempts: defaultMaxAttempts,
		log:         log,
	}
}

// Run executes fn inside a fresh unit of work. On a conflict the
// transaction is rolled back and the entire function re-runs against a
// new snapshot, so fn must be side-effect free outside the transaction.
func (c *TxCoordinator) Run(ctx context.Context, fn func(uow ports.UnitOfWork) error) error {
	attempt := 0

	policy := backoff.WithContext(backoff.WithMaxRetries(
		newConflictBackOff(), uint64(c.maxAttempts-1)), ctx)

	operation := func() error {
		attempt++
		err := c.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isConflict(err) {
			return backoff.Permanent(err)
		}
		c.log.WarnContext(ctx, "transaction conflict, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
		return err
	}

	err := backoff.Retry(operation, policy)
	if err == nil {
		return nil
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	if isConflict(err) {
		return errs.NewConflictError(attempt, err)
	}
	return err
}

func (c *TxCoordinator) runOnce(ctx context.Context, fn func(uow ports.UnitOfWork) error) error {
	uow := c.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := fn(uow); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	return uow.Commit(ctx)
}

func newConflictBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	return b
}

// isConflict reports whether the error is one of the transient postgres
// classes worth retrying. Both the pq and pgx error shapes are checked,
// since gorm's postgres driver speaks pgx while tooling may use pq.
func isConflict(err error) bool {
	code := ""

	var pqErr *pq.Error
	var stater interface{ SQLState() string }
	switch {
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	case errors.As(err, &stater):
		code = stater.SQLState()
	default:
		return false
	}

	switch code {
	case serializationFailure, deadlockDetected, uniqueViolation:
		return true
	}
	return false
}
