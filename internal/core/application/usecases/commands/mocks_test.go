package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sourceline"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) Add(ctx context.Context, aggregate *document.Document) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, aggregate *document.Document) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, id kernel.UUID) (*document.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) SoftDelete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) NextNumber(ctx context.Context, kind document.Kind) (string, error) {
	args := m.Called(ctx, kind)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockSourceLineLedger struct{ mock.Mock }

func (m *MockSourceLineLedger) Get(ctx context.Context, id kernel.UUID) (*sourceline.SourceLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sourceline.SourceLine), args.Error(1)
}

func (m *MockSourceLineLedger) RemainingCommittable(ctx context.Context, sourceLineID kernel.UUID, excludeLineID *kernel.UUID) (sourceline.Availability, error) {
	args := m.Called(ctx, sourceLineID, excludeLineID)
	return args.Get(0).(sourceline.Availability), args.Error(1)
}

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) DocumentRepository() ports.DocumentRepository {
	args := m.Called()
	return args.Get(0).(ports.DocumentRepository)
}

func (m *MockUnitOfWork) SourceLineLedger() ports.SourceLineLedger {
	args := m.Called()
	return args.Get(0).(ports.SourceLineLedger)
}

// stubCoordinator drives a mocked unit of work the way the postgres
// coordinator drives a real one, minus the retry loop: begin, run the
// function, then commit or roll back.
type stubCoordinator struct{ uow ports.UnitOfWork }

func (c stubCoordinator) Run(ctx context.Context, fn func(uow ports.UnitOfWork) error) error {
	if err := c.uow.Begin(ctx); err != nil {
		return err
	}
	if err := fn(c.uow); err != nil {
		_ = c.uow.Rollback(ctx)
		return err
	}
	return c.uow.Commit(ctx)
}

func qty(t *testing.T, s string) kernel.Quantity {
	t.Helper()
	q, err := kernel.QuantityFromString(s)
	require.NoError(t, err)
	return q
}

// counterQty parses a counter value, which unlike a requested quantity
// may legitimately be zero, so it goes through RestoreQuantity.
func counterQty(t *testing.T, s string) kernel.Quantity {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	q, err := kernel.RestoreQuantity(d)
	require.NoError(t, err)
	return q
}

func avail(t *testing.T, ordered, committed string) sourceline.Availability {
	t.Helper()
	return sourceline.Availability{
		Ordered:   qty(t, ordered),
		Committed: counterQty(t, committed),
	}
}

func newTestSourceLine(t *testing.T, parentID kernel.UUID, ordered string) *sourceline.SourceLine {
	t.Helper()
	src, err := sourceline.NewSourceLine(kernel.NewUUID(), parentID, kernel.NewUUID(), qty(t, ordered))
	require.NoError(t, err)
	return src
}

// pendingDocument builds a delivery in Pending with a single line
// requesting the given quantity against the source line.
func pendingDocument(t *testing.T, src *sourceline.SourceLine, requested string) (*document.Document, *document.Line) {
	t.Helper()
	doc, err := document.NewDocument(
		kernel.NewUUID(), document.Delivery, "DLV-20260828-00001",
		src.ParentID(), nil, nil, "", kernel.NewUUID(), time.Now().UTC(),
	)
	require.NoError(t, err)
	line, err := doc.AddLine(kernel.NewUUID(), src, qty(t, requested))
	require.NoError(t, err)
	return doc, line
}

// shippedDocument builds a document of the given kind in Shipped status
// with one line: requested and shipped per the arguments.
func shippedDocument(t *testing.T, kind document.Kind, src *sourceline.SourceLine, requested, shipped string) (*document.Document, *document.Line) {
	t.Helper()
	now := time.Now().UTC()
	line, err := document.RestoreLine(
		kernel.NewUUID(), src.ID(), src.ProductID(),
		qty(t, requested), qty(t, shipped), kernel.ZeroQuantity(),
	)
	require.NoError(t, err)
	doc, err := document.RestoreDocument(
		kernel.NewUUID(), kind, kind.NumberPrefix()+"-20260828-00001",
		document.Shipped, src.ParentID(), nil, nil, "", kernel.NewUUID(),
		now, &now, nil, []*document.Line{line},
	)
	require.NoError(t, err)
	return doc, line
}
