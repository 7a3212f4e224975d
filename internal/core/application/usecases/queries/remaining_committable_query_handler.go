package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RemainingCommittableQueryHandler computes a source line's availability
// outside any command transaction. The sum mirrors the ledger's: lines
// of editable documents count their requested quantity, shipped and
// later count their shipped quantity, cancelled and soft-deleted
// documents count nothing.
type RemainingCommittableQueryHandler struct {
	db *gorm.DB
}

// NewRemainingCommittableQueryHandler creates a handler for availability
// reads.
func NewRemainingCommittableQueryHandler(db *gorm.DB) RemainingCommittableQueryHandler {
	return RemainingCommittableQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the
// source line does not exist.
func (h RemainingCommittableQueryHandler) Handle(
	ctx context.Context,
	query RemainingCommittableQuery,
) (RemainingCommittableQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return RemainingCommittableQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			sl.id,
			sl.product_id,
			sl.ordered,
			COALESCE(SUM(
				CASE
					WHEN d.status IN (?, ?) THEN l.requested
					WHEN d.status IN (?, ?, ?, ?) THEN l.shipped
					ELSE 0
				END
			), 0) AS committed
		FROM source_lines sl
		LEFT JOIN document_lines l ON l.source_line_id = sl.id
		LEFT JOIN documents d
			ON d.id = l.document_id
			AND d.deleted_at IS NULL
			AND d.status <> ?
		WHERE sl.id = ?
		GROUP BY sl.id, sl.product_id, sl.ordered
	`,
		document.Pending.String(), document.InPreparation.String(),
		document.Shipped.String(), document.Delivered.String(),
		document.Received.String(), document.FailedDelivery.String(),
		document.Cancelled.String(),
		query.SourceLineID().Bytes(),
	).Row()

	var (
		srcID, productID   uuid.UUID
		ordered, committed decimal.Decimal
	)
	err := row.Scan(&srcID, &productID, &ordered, &committed)
	if errors.Is(err, sql.ErrNoRows) {
		return RemainingCommittableQueryResponse{},
			errs.NewObjectNotFoundError("sourceLineId", query.SourceLineID().String())
	}
	if err != nil {
		return RemainingCommittableQueryResponse{}, err
	}

	var resp RemainingCommittableQueryResponse
	if resp.SourceLineID, err = kernel.UUIDFromBytes(srcID[:]); err != nil {
		return RemainingCommittableQueryResponse{}, err
	}
	if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return RemainingCommittableQueryResponse{}, err
	}
	if resp.Ordered, err = kernel.RestoreQuantity(ordered); err != nil {
		return RemainingCommittableQueryResponse{}, err
	}
	if resp.Committed, err = kernel.RestoreQuantity(committed); err != nil {
		return RemainingCommittableQueryResponse{}, err
	}
	resp.Remaining = resp.Ordered.Sub(resp.Committed)
	return resp, nil
}
