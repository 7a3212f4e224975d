package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewShipDocumentCommand_EmptyShipments(t *testing.T) {
	_, err := commands.NewShipDocumentCommand(kernel.NewUUID(), kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestShipDocumentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, line := pendingDocument(t, src, "5")
	cmd, err := commands.NewShipDocumentCommand(doc.ID(), kernel.NewUUID(),
		[]commands.ShipmentInput{{LineID: line.ID(), Quantity: qty(t, "4")}})
	require.NoError(t, err)

	lineID := line.ID()
	repo := new(MockDocumentRepository)
	ledger := new(MockSourceLineLedger)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		uow.On("SourceLineLedger").Return(ledger).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		ledger.On("RemainingCommittable", mock.Anything, src.ID(), &lineID).
			Return(avail(t, "10", "4"), nil).Once(),
		repo.On("Update", mock.Anything, doc).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	h := commands.NewShipDocumentCommandHandler(stubCoordinator{uow: uow})
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, document.Shipped, doc.Status())
	assert.True(t, line.Shipped().IsEqual(qty(t, "4")))
	repo.AssertExpectations(t)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestShipDocumentCommandHandler_Handle_ShippedStepRejected(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, line := pendingDocument(t, src, "5")
	cmd, err := commands.NewShipDocumentCommand(doc.ID(), kernel.NewUUID(),
		[]commands.ShipmentInput{{LineID: line.ID(), Quantity: qty(t, "5")}})
	require.NoError(t, err)

	lineID := line.ID()
	repo := new(MockDocumentRepository)
	ledger := new(MockSourceLineLedger)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		uow.On("SourceLineLedger").Return(ledger).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		// another document committed 6 since this one was drafted
		ledger.On("RemainingCommittable", mock.Anything, src.ID(), &lineID).
			Return(avail(t, "10", "6"), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewShipDocumentCommandHandler(stubCoordinator{uow: uow})
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrQuantityExceeded)
	assert.Equal(t, document.Pending, doc.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestShipDocumentCommandHandler_Handle_UnknownLine(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, _ := pendingDocument(t, src, "5")
	cmd, err := commands.NewShipDocumentCommand(doc.ID(), kernel.NewUUID(),
		[]commands.ShipmentInput{{LineID: kernel.NewUUID(), Quantity: qty(t, "1")}})
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	ledger := new(MockSourceLineLedger)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		uow.On("SourceLineLedger").Return(ledger).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewShipDocumentCommandHandler(stubCoordinator{uow: uow})
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}
