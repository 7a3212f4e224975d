// Package sourcelinerepo implements the source line ledger over GORM:
// read access to order lines plus the locking reconciliation sum.
package sourcelinerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sourceline"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceLineDTO is the database representation of an order line. Rows
// are written by the order subsystem; the fulfillment engine only reads
// them.
type SourceLineDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ParentID  uuid.UUID       `gorm:"type:uuid;index"`
	ProductID uuid.UUID       `gorm:"type:uuid"`
	Ordered   decimal.Decimal `gorm:"type:numeric(18,6)"`
}

// TableName overrides GORM's default naming to use "source_lines".
func (SourceLineDTO) TableName() string {
	return "source_lines"
}

func toDomain(dto SourceLineDTO) (*sourceline.SourceLine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	parentID, err := kernel.UUIDFromBytes(dto.ParentID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	ordered, err := kernel.NewQuantity(dto.Ordered)
	if err != nil {
		return nil, err
	}

	return sourceline.NewSourceLine(id, parentID, productID, ordered)
}
