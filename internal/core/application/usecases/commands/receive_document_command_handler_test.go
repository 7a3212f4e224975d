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

func TestReceiveDocumentCommandHandler_Handle_DeliveryCompletesInFull(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, line := shippedDocument(t, document.Delivery, src, "5", "4")
	cmd, err := commands.NewReceiveDocumentCommand(doc.ID(), kernel.NewUUID(), nil)
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		repo.On("Update", mock.Anything, doc).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	h := commands.NewReceiveDocumentCommandHandler(stubCoordinator{uow: uow})
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, document.Delivered, doc.Status())
	assert.True(t, line.Received().IsEqual(qty(t, "4")))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReceiveDocumentCommandHandler_Handle_PartialTransferStaysShipped(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, line := shippedDocument(t, document.StockTransfer, src, "6", "6")
	cmd, err := commands.NewReceiveDocumentCommand(doc.ID(), kernel.NewUUID(),
		[]commands.ReceiptInput{{LineID: line.ID(), Quantity: qty(t, "2")}})
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		repo.On("Update", mock.Anything, doc).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	h := commands.NewReceiveDocumentCommandHandler(stubCoordinator{uow: uow})
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, document.Shipped, doc.Status())
	assert.True(t, line.Received().IsEqual(qty(t, "2")))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReceiveDocumentCommandHandler_Handle_OverReceiptRejected(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, line := shippedDocument(t, document.StockTransfer, src, "6", "6")
	cmd, err := commands.NewReceiveDocumentCommand(doc.ID(), kernel.NewUUID(),
		[]commands.ReceiptInput{{LineID: line.ID(), Quantity: qty(t, "7")}})
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewReceiveDocumentCommandHandler(stubCoordinator{uow: uow})
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, document.Shipped, doc.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
