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

// expectUpdate wires the common Get-then-Update happy path for handlers
// that load a document, mutate it, and save it.
func expectUpdate(t *testing.T, uow *MockUnitOfWork, repo *MockDocumentRepository, doc *document.Document) {
	t.Helper()
	ctx := t.Context()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		repo.On("Update", mock.Anything, doc).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)
}

func TestStartPreparationCommandHandler_Handle_Success(t *testing.T) {
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, _ := pendingDocument(t, src, "3")
	cmd, err := commands.NewStartPreparationCommand(doc.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	expectUpdate(t, uow, repo, doc)

	h := commands.NewStartPreparationCommandHandler(stubCoordinator{uow: uow})
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Equal(t, document.InPreparation, doc.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelDocumentCommandHandler_Handle_Success(t *testing.T) {
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, _ := shippedDocument(t, document.StockTransfer, src, "5", "5")
	cmd, err := commands.NewCancelDocumentCommand(doc.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	expectUpdate(t, uow, repo, doc)

	h := commands.NewCancelDocumentCommandHandler(stubCoordinator{uow: uow})
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Equal(t, document.Cancelled, doc.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelDocumentCommandHandler_Handle_TerminalStatusRejected(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, _ := shippedDocument(t, document.Delivery, src, "5", "5")
	require.NoError(t, doc.Receive(nil, kernel.NewUUID(), doc.CreatedAt()))
	cmd, err := commands.NewCancelDocumentCommand(doc.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCancelDocumentCommandHandler(stubCoordinator{uow: uow})
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStatusIsForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestFailDeliveryCommandHandler_Handle_Success(t *testing.T) {
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, _ := shippedDocument(t, document.Delivery, src, "5", "5")
	cmd, err := commands.NewFailDeliveryCommand(doc.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	expectUpdate(t, uow, repo, doc)

	h := commands.NewFailDeliveryCommandHandler(stubCoordinator{uow: uow})
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Equal(t, document.FailedDelivery, doc.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestFailDeliveryCommandHandler_Handle_TransferRejected(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, _ := shippedDocument(t, document.StockTransfer, src, "5", "5")
	cmd, err := commands.NewFailDeliveryCommand(doc.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewFailDeliveryCommandHandler(stubCoordinator{uow: uow})
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, document.Shipped, doc.Status())
	uow.AssertExpectations(t)
}

func TestRemoveLineCommandHandler_Handle_Success(t *testing.T) {
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, line := pendingDocument(t, src, "3")
	cmd, err := commands.NewRemoveLineCommand(doc.ID(), line.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	expectUpdate(t, uow, repo, doc)

	h := commands.NewRemoveLineCommandHandler(stubCoordinator{uow: uow})
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Empty(t, doc.Lines())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteDocumentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, _ := pendingDocument(t, src, "3")
	cmd, err := commands.NewDeleteDocumentCommand(doc.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		repo.On("SoftDelete", mock.Anything, doc.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	h := commands.NewDeleteDocumentCommandHandler(stubCoordinator{uow: uow})
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteDocumentCommandHandler_Handle_ShippedRejected(t *testing.T) {
	ctx := t.Context()
	src := newTestSourceLine(t, kernel.NewUUID(), "10")
	doc, _ := shippedDocument(t, document.Delivery, src, "5", "5")
	cmd, err := commands.NewDeleteDocumentCommand(doc.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewDeleteDocumentCommandHandler(stubCoordinator{uow: uow})
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStatusIsForbidden)
	repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
