package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListOpenDocumentsQueryIsNotConstructed = errors.New(
	"ListOpenDocumentsQuery must be created via NewListOpenDocumentsQuery constructor",
)

// ListOpenDocumentsQuery retrieves all documents still in flight:
// everything not in a terminal status and not soft-deleted. An optional
// kind narrows the listing to one document kind.
type ListOpenDocumentsQuery struct {
	kind *document.Kind

	guard guard.ConstructorGuard
}

// NewListOpenDocumentsQuery creates a query for open documents across
// all kinds.
func NewListOpenDocumentsQuery() ListOpenDocumentsQuery {
	return ListOpenDocumentsQuery{guard: guard.NewConstructorGuard()}
}

// NewListOpenDocumentsQueryForKind creates a query for open documents of
// one kind.
func NewListOpenDocumentsQueryForKind(kind document.Kind) (ListOpenDocumentsQuery, error) {
	if err := kind.Validate(); err != nil {
		return ListOpenDocumentsQuery{}, err
	}
	return ListOpenDocumentsQuery{
		kind:  &kind,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOpenDocumentsQuery) Validate() error {
	return q.guard.Validate(ErrListOpenDocumentsQueryIsNotConstructed)
}

// Kind returns the optional kind filter.
func (q ListOpenDocumentsQuery) Kind() *document.Kind {
	return q.kind
}

// ListOpenDocumentsQueryResponse is one open document in the listing.
type ListOpenDocumentsQueryResponse struct {
	ID        kernel.UUID
	Kind      string
	Number    string
	Status    string
	ParentID  kernel.UUID
	CreatedAt time.Time
	LineCount int
}
