package sourcelinerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sourceline"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSourceLineLedger implements ports.SourceLineLedger using GORM.
type GormSourceLineLedger struct {
	db *gorm.DB
}

// NewGormSourceLineLedger creates a ledger over the given connection,
// which is expected to be transaction-bound when used by commands.
func NewGormSourceLineLedger(db *gorm.DB) *GormSourceLineLedger {
	return &GormSourceLineLedger{db: db}
}

// Get resolves a source line by id.
func (l *GormSourceLineLedger) Get(ctx context.Context, id kernel.UUID) (*sourceline.SourceLine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SourceLineDTO
	if err := l.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sourceLineId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// RemainingCommittable returns the ordered quantity and the committed
// total for one source line. The source line row is locked FOR UPDATE
// first, so concurrent transactions deciding against the same line
// serialize on it instead of double-spending the remainder between a
// read and a write.
func (l *GormSourceLineLedger) RemainingCommittable(
	ctx context.Context,
	sourceLineID kernel.UUID,
	excludeLineID *kernel.UUID,
) (sourceline.Availability, error) {
	if err := sourceLineID.Validate(); err != nil {
		return sourceline.Availability{}, err
	}

	var locked SourceLineDTO
	err := l.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&locked, "id = ?", sourceLineID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sourceline.Availability{}, errs.NewObjectNotFoundError("sourceLineId", sourceLineID.String())
	}
	if err != nil {
		return sourceline.Availability{}, err
	}

	committed, err := l.committedTotal(ctx, sourceLineID, excludeLineID)
	if err != nil {
		return sourceline.Availability{}, err
	}

	ordered, err := kernel.RestoreQuantity(locked.Ordered)
	if err != nil {
		return sourceline.Availability{}, err
	}
	committedQty, err := kernel.RestoreQuantity(committed)
	if err != nil {
		return sourceline.Availability{}, err
	}

	return sourceline.Availability{Ordered: ordered, Committed: committedQty}, nil
}

// committedTotal sums what every live document line counts against the
// source line: the requested quantity while the document is editable,
// the shipped quantity from Shipped onward, nothing for cancelled or
// soft-deleted documents.
func (l *GormSourceLineLedger) committedTotal(
	ctx context.Context,
	sourceLineID kernel.UUID,
	excludeLineID *kernel.UUID,
) (decimal.Decimal, error) {
	sql := `
		SELECT COALESCE(SUM(
			CASE
				WHEN d.status IN (?, ?) THEN l.requested
				WHEN d.status IN (?, ?, ?, ?) THEN l.shipped
				ELSE 0
			END
		), 0)
		FROM document_lines l
		JOIN documents d ON d.id = l.document_id
		WHERE l.source_line_id = ?
		  AND d.deleted_at IS NULL
		  AND d.status <> ?
	`
	args := []any{
		document.Pending.String(), document.InPreparation.String(),
		document.Shipped.String(), document.Delivered.String(),
		document.Received.String(), document.FailedDelivery.String(),
		sourceLineID.Bytes(),
		document.Cancelled.String(),
	}
	if excludeLineID != nil {
		sql += " AND l.id <> ?"
		args = append(args, excludeLineID.Bytes())
	}

	var committed decimal.Decimal
	if err := l.db.WithContext(ctx).Raw(sql, args...).Scan(&committed).Error; err != nil {
		return decimal.Decimal{}, err
	}
	return committed, nil
}
