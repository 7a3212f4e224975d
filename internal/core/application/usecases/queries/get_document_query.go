// Package queries contains read-side operations of the CQRS split. Query
// handlers bypass the aggregates and read projections straight from the
// database with raw SQL, returning plain response structs.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDocumentQueryIsNotConstructed = errors.New(
	"GetDocumentQuery must be created via NewGetDocumentQuery constructor",
)

// GetDocumentQuery retrieves one document with its lines and status
// history by id. Soft-deleted documents are not found.
//
// Example:
//
//	query, err := NewGetDocumentQuery(documentID)
//	if err != nil {
//	    return err
//	}
//	doc, err := handler.Handle(ctx, query)
type GetDocumentQuery struct {
	documentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDocumentQuery creates a query for a single document.
func NewGetDocumentQuery(documentID kernel.UUID) (GetDocumentQuery, error) {
	if err := documentID.Validate(); err != nil {
		return GetDocumentQuery{}, err
	}
	return GetDocumentQuery{
		documentID: documentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDocumentQuery) Validate() error {
	return q.guard.Validate(ErrGetDocumentQueryIsNotConstructed)
}

// DocumentID returns the requested document id.
func (q GetDocumentQuery) DocumentID() kernel.UUID {
	return q.documentID
}

// DocumentLineResponse is one line of a document view, with the
// quantity the line currently commits against its source line.
type DocumentLineResponse struct {
	ID           kernel.UUID
	SourceLineID kernel.UUID
	ProductID    kernel.UUID
	Requested    kernel.Quantity
	Shipped      kernel.Quantity
	Received     kernel.Quantity
	Committed    kernel.Quantity
}

// StatusTransitionResponse is one audit-trail entry of a document view.
type StatusTransitionResponse struct {
	From  string
	To    string
	Actor kernel.UUID
	At    time.Time
}

// GetDocumentQueryResponse is the full read model of one document.
type GetDocumentQueryResponse struct {
	ID            kernel.UUID
	Kind          string
	Number        string
	Status        string
	ParentID      kernel.UUID
	OriginID      *kernel.UUID
	DestinationID *kernel.UUID
	Notes         string
	CreatedBy     kernel.UUID
	CreatedAt     time.Time
	ShippedAt     *time.Time
	ReceivedAt    *time.Time
	Lines         []DocumentLineResponse
	History       []StatusTransitionResponse
}
