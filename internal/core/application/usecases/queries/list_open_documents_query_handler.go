package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOpenDocumentsQueryHandler lists in-flight documents from the
// database for monitoring and backoffice dashboards.
type ListOpenDocumentsQueryHandler struct {
	db *gorm.DB
}

// NewListOpenDocumentsQueryHandler creates a handler for open-document
// listings.
func NewListOpenDocumentsQueryHandler(db *gorm.DB) ListOpenDocumentsQueryHandler {
	return ListOpenDocumentsQueryHandler{db: db}
}

// Handle executes the query. Open means the status still permits
// transitions: Pending, InPreparation, or Shipped. Results are sorted by
// number for stable output.
func (h ListOpenDocumentsQueryHandler) Handle(
	ctx context.Context,
	query ListOpenDocumentsQuery,
) ([]ListOpenDocumentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			d.id,
			d.kind,
			d.number,
			d.status,
			d.parent_id,
			d.created_at,
			COUNT(l.id) AS line_count
		FROM documents d
		LEFT JOIN document_lines l ON l.document_id = d.id
		WHERE d.deleted_at IS NULL
		  AND d.status IN (?, ?, ?)
	`
	args := []any{
		document.Pending.String(),
		document.InPreparation.String(),
		document.Shipped.String(),
	}
	if query.Kind() != nil {
		sql += " AND d.kind = ?"
		args = append(args, query.Kind().String())
	}
	sql += `
		GROUP BY d.id, d.kind, d.number, d.status, d.parent_id, d.created_at
		ORDER BY d.number
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]ListOpenDocumentsQueryResponse, 0)
	for rows.Next() {
		var (
			resp            ListOpenDocumentsQueryResponse
			docID, parentID uuid.UUID
		)
		err := rows.Scan(
			&docID, &resp.Kind, &resp.Number, &resp.Status,
			&parentID, &resp.CreatedAt, &resp.LineCount,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(docID[:]); err != nil {
			return nil, err
		}
		if resp.ParentID, err = kernel.UUIDFromBytes(parentID[:]); err != nil {
			return nil, err
		}
		docs = append(docs, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
