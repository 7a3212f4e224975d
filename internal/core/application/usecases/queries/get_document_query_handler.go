package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDocumentQueryHandler reads one document view from the database.
type GetDocumentQueryHandler struct {
	db *gorm.DB
}

// NewGetDocumentQueryHandler creates a handler for single-document reads.
func NewGetDocumentQueryHandler(db *gorm.DB) GetDocumentQueryHandler {
	return GetDocumentQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the
// document does not exist or is soft-deleted.
func (h GetDocumentQueryHandler) Handle(
	ctx context.Context,
	query GetDocumentQuery,
) (GetDocumentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDocumentQueryResponse{}, err
	}

	resp, err := h.readHeader(ctx, query.DocumentID())
	if err != nil {
		return GetDocumentQueryResponse{}, err
	}

	resp.Lines, err = h.readLines(ctx, query.DocumentID(), resp.Status)
	if err != nil {
		return GetDocumentQueryResponse{}, err
	}

	resp.History, err = h.readHistory(ctx, query.DocumentID())
	if err != nil {
		return GetDocumentQueryResponse{}, err
	}

	return resp, nil
}

func (h GetDocumentQueryHandler) readHeader(ctx context.Context, id kernel.UUID) (GetDocumentQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			number,
			status,
			parent_id,
			origin_id,
			destination_id,
			notes,
			created_by,
			created_at,
			shipped_at,
			received_at
		FROM documents
		WHERE id = ? AND deleted_at IS NULL
	`, id.Bytes()).Row()

	var (
		resp                     GetDocumentQueryResponse
		docID, parentID, createdBy uuid.UUID
		originID, destID         uuid.NullUUID
		shipped, received        sql.NullTime
	)
	err := row.Scan(
		&docID, &resp.Kind, &resp.Number, &resp.Status,
		&parentID, &originID, &destID,
		&resp.Notes, &createdBy, &resp.CreatedAt, &shipped, &received,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDocumentQueryResponse{}, errs.NewObjectNotFoundError("documentId", id.String())
	}
	if err != nil {
		return GetDocumentQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(docID[:]); err != nil {
		return GetDocumentQueryResponse{}, err
	}
	if resp.ParentID, err = kernel.UUIDFromBytes(parentID[:]); err != nil {
		return GetDocumentQueryResponse{}, err
	}
	if resp.CreatedBy, err = kernel.UUIDFromBytes(createdBy[:]); err != nil {
		return GetDocumentQueryResponse{}, err
	}
	if resp.OriginID, err = optionalUUID(originID); err != nil {
		return GetDocumentQueryResponse{}, err
	}
	if resp.DestinationID, err = optionalUUID(destID); err != nil {
		return GetDocumentQueryResponse{}, err
	}
	resp.ShippedAt = optionalTime(shipped)
	resp.ReceivedAt = optionalTime(received)
	return resp, nil
}

func (h GetDocumentQueryHandler) readLines(ctx context.Context, id kernel.UUID, status string) ([]DocumentLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			source_line_id,
			product_id,
			requested,
			shipped,
			received
		FROM document_lines
		WHERE document_id = ?
		ORDER BY id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]DocumentLineResponse, 0)
	for rows.Next() {
		var (
			lineID, srcID, productID      uuid.UUID
			requested, shipped, received  decimal.Decimal
		)
		if err := rows.Scan(&lineID, &srcID, &productID, &requested, &shipped, &received); err != nil {
			return nil, err
		}

		line, err := buildLineResponse(lineID, srcID, productID, requested, shipped, received, status)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (h GetDocumentQueryHandler) readHistory(ctx context.Context, id kernel.UUID) ([]StatusTransitionResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			actor_id,
			occurred_at
		FROM document_status_transitions
		WHERE document_id = ?
		ORDER BY occurred_at, id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusTransitionResponse, 0)
	for rows.Next() {
		var (
			entry   StatusTransitionResponse
			actorID uuid.UUID
			at      time.Time
		)
		if err := rows.Scan(&entry.From, &entry.To, &actorID, &at); err != nil {
			return nil, err
		}
		if entry.Actor, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		entry.At = at
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// buildLineResponse converts raw line columns into a response, deriving
// the committed quantity from the document status the same way the
// ledger's SQL does.
func buildLineResponse(
	lineID, srcID, productID uuid.UUID,
	requested, shipped, received decimal.Decimal,
	status string,
) (DocumentLineResponse, error) {
	var line DocumentLineResponse
	var err error

	if line.ID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
		return DocumentLineResponse{}, err
	}
	if line.SourceLineID, err = kernel.UUIDFromBytes(srcID[:]); err != nil {
		return DocumentLineResponse{}, err
	}
	if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return DocumentLineResponse{}, err
	}
	if line.Requested, err = kernel.RestoreQuantity(requested); err != nil {
		return DocumentLineResponse{}, err
	}
	if line.Shipped, err = kernel.RestoreQuantity(shipped); err != nil {
		return DocumentLineResponse{}, err
	}
	if line.Received, err = kernel.RestoreQuantity(received); err != nil {
		return DocumentLineResponse{}, err
	}

	parsed, err := document.StatusFromString(status)
	if err != nil {
		return DocumentLineResponse{}, err
	}
	switch {
	case parsed.AllowsLineMutation():
		line.Committed = line.Requested
	case parsed == document.Cancelled:
		line.Committed = kernel.ZeroQuantity()
	default:
		line.Committed = line.Shipped
	}
	return line, nil
}

func optionalUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
