package documentrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDocumentRepository implements ports.DocumentRepository using GORM.
type GormDocumentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDocumentRepository creates a new GORM document repository.
func NewGormDocumentRepository(db *gorm.DB, tracker aggregateTracker) *GormDocumentRepository {
	return &GormDocumentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new document with its lines and audit trail.
func (r *GormDocumentRepository) Add(ctx context.Context, aggregate *document.Document) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, lines := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&header).Error; err != nil {
		return err
	}
	if len(lines) > 0 {
		if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
			return err
		}
	}
	if err := r.appendTransitions(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing document. The line rows are reconciled
// against the aggregate's current line set: changed lines are updated,
// new lines inserted, and lines the aggregate no longer holds deleted.
func (r *GormDocumentRepository) Update(ctx context.Context, aggregate *document.Document) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, lines := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DocumentDTO{}).
		Where("id = ?", header.ID).
		Select("Status", "Notes", "ShippedAt", "ReceivedAt").
		Updates(&header)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("documentId", aggregate.ID().String())
	}

	if err := r.reconcileLines(ctx, header.ID, lines); err != nil {
		return err
	}
	if err := r.appendTransitions(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a document with its lines by id. Soft-deleted documents
// are not found.
func (r *GormDocumentRepository) Get(ctx context.Context, id kernel.UUID) (*document.Document, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var header DocumentDTO
	if err := r.db.WithContext(ctx).First(&header, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("documentId", id.String())
		}
		return nil, err
	}

	var lines []LineDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&lines, "document_id = ?", id.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomain(header, lines)
}

// SoftDelete tombstones a document. The rows remain for audit but every
// read and reconciliation sum skips them.
func (r *GormDocumentRepository) SoftDelete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&DocumentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("documentId", id.String())
	}
	return nil
}

// NextNumber derives the next document number for the kind from the
// highest suffix already assigned under today's date prefix, including
// soft-deleted documents so their numbers are never reused. Safe only
// inside the transaction that inserts the document; the unique index on
// number is the backstop if two transactions race past the read.
func (r *GormDocumentRepository) NextNumber(ctx context.Context, kind document.Kind) (string, error) {
	if err := kind.Validate(); err != nil {
		return "", err
	}

	prefix := fmt.Sprintf("%s-%s-", kind.NumberPrefix(), time.Now().UTC().Format("20060102"))

	var maxSuffix int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(RIGHT(number, 5) AS INTEGER)), 0)
		FROM documents
		WHERE number LIKE ?
	`, prefix+"%").Scan(&maxSuffix).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%05d", prefix, maxSuffix+1), nil
}

// PurgeDeleted hard-deletes tombstoned documents older than the cutoff
// with their lines and status transitions.
func (r *GormDocumentRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&DocumentDTO{}).
		Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := r.db.WithContext(ctx).
		Where("document_id IN ?", ids).
		Delete(&LineDTO{}).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).
		Where("document_id IN ?", ids).
		Delete(&TransitionDTO{}).Error; err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Unscoped().
		Where("id IN ?", ids).
		Delete(&DocumentDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormDocumentRepository) reconcileLines(ctx context.Context, documentID uuid.UUID, lines []LineDTO) error {
	keep := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		keep = append(keep, line.ID)
	}

	query := r.db.WithContext(ctx).Where("document_id = ?", documentID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	if err := query.Delete(&LineDTO{}).Error; err != nil {
		return err
	}

	for _, line := range lines {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&line).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *GormDocumentRepository) appendTransitions(ctx context.Context, aggregate *document.Document) error {
	rows := transitionsFromDomain(aggregate)
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
