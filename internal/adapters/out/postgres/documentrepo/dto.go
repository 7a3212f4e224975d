// Package documentrepo implements the document repository over GORM,
// mapping the aggregate to its three tables: the header, the lines, and
// the status-transition audit trail.
package documentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DocumentDTO is the database representation of a document header.
// DeletedAt implements the soft-delete tombstone: deleted documents stay
// queryable for audit but are excluded from reads and reconciliation.
type DocumentDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind          string     `gorm:"type:varchar(32);index"`
	Number        string     `gorm:"type:varchar(32);uniqueIndex"`
	Status        string     `gorm:"type:varchar(32);index"`
	ParentID      uuid.UUID  `gorm:"type:uuid;index"`
	OriginID      *uuid.UUID `gorm:"type:uuid"`
	DestinationID *uuid.UUID `gorm:"type:uuid"`
	Notes         string
	CreatedBy     uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
	ShippedAt     *time.Time
	ReceivedAt    *time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default naming to use "documents".
func (DocumentDTO) TableName() string {
	return "documents"
}

// LineDTO is the database representation of a document line with its
// three quantity counters.
type LineDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DocumentID   uuid.UUID       `gorm:"type:uuid;index"`
	SourceLineID uuid.UUID       `gorm:"type:uuid;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid"`
	Requested    decimal.Decimal `gorm:"type:numeric(18,6)"`
	Shipped      decimal.Decimal `gorm:"type:numeric(18,6)"`
	Received     decimal.Decimal `gorm:"type:numeric(18,6)"`
}

// TableName overrides GORM's default naming to use "document_lines".
func (LineDTO) TableName() string {
	return "document_lines"
}

// TransitionDTO is one audit-trail row recording a status change.
type TransitionDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	DocumentID uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string    `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32)"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	OccurredAt time.Time
}

// TableName overrides GORM's default naming.
func (TransitionDTO) TableName() string {
	return "document_status_transitions"
}

func fromDomain(doc *document.Document) (DocumentDTO, []LineDTO) {
	header := DocumentDTO{
		ID:            doc.ID().Bytes(),
		Kind:          doc.Kind().String(),
		Number:        doc.Number(),
		Status:        doc.Status().String(),
		ParentID:      doc.ParentID().Bytes(),
		OriginID:      optionalBytes(doc.OriginID()),
		DestinationID: optionalBytes(doc.DestinationID()),
		Notes:         doc.Notes(),
		CreatedBy:     doc.CreatedBy().Bytes(),
		CreatedAt:     doc.CreatedAt(),
		ShippedAt:     doc.ShippedAt(),
		ReceivedAt:    doc.ReceivedAt(),
	}

	lines := make([]LineDTO, 0, len(doc.Lines()))
	for _, line := range doc.Lines() {
		lines = append(lines, LineDTO{
			ID:           line.ID().Bytes(),
			DocumentID:   doc.ID().Bytes(),
			SourceLineID: line.SourceLineID().Bytes(),
			ProductID:    line.ProductID().Bytes(),
			Requested:    line.Requested().Decimal(),
			Shipped:      line.Shipped().Decimal(),
			Received:     line.Received().Decimal(),
		})
	}

	return header, lines
}

func transitionsFromDomain(doc *document.Document) []TransitionDTO {
	recorded := doc.DrainTransitions()
	rows := make([]TransitionDTO, 0, len(recorded))
	for _, tr := range recorded {
		rows = append(rows, TransitionDTO{
			DocumentID: doc.ID().Bytes(),
			FromStatus: tr.From.String(),
			ToStatus:   tr.To.String(),
			ActorID:    tr.Actor.Bytes(),
			OccurredAt: tr.At,
		})
	}
	return rows
}

func toDomain(dto DocumentDTO, lineDTOs []LineDTO) (*document.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	parentID, err := kernel.UUIDFromBytes(dto.ParentID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}
	originID, err := optionalUUID(dto.OriginID)
	if err != nil {
		return nil, err
	}
	destID, err := optionalUUID(dto.DestinationID)
	if err != nil {
		return nil, err
	}
	kind, err := document.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}
	status, err := document.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]*document.Line, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return document.RestoreDocument(
		id, kind, dto.Number, status, parentID, originID, destID,
		dto.Notes, createdBy, dto.CreatedAt, dto.ShippedAt, dto.ReceivedAt,
		lines,
	)
}

func lineToDomain(dto LineDTO) (*document.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sourceLineID, err := kernel.UUIDFromBytes(dto.SourceLineID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	requested, err := kernel.RestoreQuantity(dto.Requested)
	if err != nil {
		return nil, err
	}
	shipped, err := kernel.RestoreQuantity(dto.Shipped)
	if err != nil {
		return nil, err
	}
	received, err := kernel.RestoreQuantity(dto.Received)
	if err != nil {
		return nil, err
	}

	return document.RestoreLine(id, sourceLineID, productID, requested, shipped, received)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
