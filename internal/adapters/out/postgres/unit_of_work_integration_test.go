package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/documentrepo"
	"fulfillment/internal/adapters/out/postgres/sourcelinerepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sourceline"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container   *pgcontainer.PostgresContainer
	db          *gorm.DB
	factory     *postgres.GormUnitOfWorkFactory
	coordinator *postgres.TxCoordinator
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&sourcelinerepo.SourceLineDTO{},
		&documentrepo.DocumentDTO{},
		&documentrepo.LineDTO{},
		&documentrepo.TransitionDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE source_lines, documents, document_lines, document_status_transitions").Error)

	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
	suite.coordinator = postgres.NewTxCoordinator(suite.factory,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	src := suite.insertSourceLine("10")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	doc := suite.newPendingDocument(src, "DLV-20260801-00001", "4")
	suite.Require().NoError(uow.DocumentRepository().Add(ctx, doc))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().DocumentRepository().Get(ctx, doc.ID())
	suite.Require().NoError(err)
	suite.Equal(doc.ID(), loaded.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	src := suite.insertSourceLine("10")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	doc := suite.newPendingDocument(src, "DLV-20260801-00002", "4")
	suite.Require().NoError(uow.DocumentRepository().Add(ctx, doc))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().DocumentRepository().Get(ctx, doc.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCoordinator_BusinessErrorNotRetried() {
	calls := 0
	err := suite.coordinator.Run(context.Background(), func(_ ports.UnitOfWork) error {
		calls++
		return errs.NewValueIsInvalidError("quantity")
	})
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Equal(1, calls, "business-rule rejections must not be retried")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCoordinator_CommitsOnSuccess() {
	ctx := context.Background()
	src := suite.insertSourceLine("10")

	doc := suite.newPendingDocument(src, "DLV-20260801-00009", "4")
	err := suite.coordinator.Run(ctx, func(uow ports.UnitOfWork) error {
		return uow.DocumentRepository().Add(ctx, doc)
	})
	suite.Require().NoError(err)

	_, err = suite.factory.Create().DocumentRepository().Get(ctx, doc.ID())
	suite.Require().NoError(err)
}

// TestConcurrentAddLine_ExactlyOneWins is the core overcommit race:
// ordered quantity 10, two concurrent operations each adding a line of
// 6 to separate documents. One must succeed and one must be rejected;
// the committed total must never exceed the ordered quantity.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentAddLine_ExactlyOneWins() {
	ctx := context.Background()
	src := suite.insertSourceLine("10")

	docA := suite.newPendingDocument(src, "DLV-20260801-00003", "1")
	docB := suite.newPendingDocument(src, "DLV-20260801-00004", "1")
	repo := suite.factory.Create().DocumentRepository()
	suite.Require().NoError(repo.Add(ctx, docA))
	suite.Require().NoError(repo.Add(ctx, docB))

	// each document already commits 1, so 8 remain; both try to claim 6
	handler := commands.NewAddLineCommandHandler(suite.coordinator)
	targets := []kernel.UUID{docA.ID(), docB.ID()}

	var wg sync.WaitGroup
	results := make([]error, len(targets))
	for i, docID := range targets {
		wg.Add(1)
		go func(i int, docID kernel.UUID) {
			defer wg.Done()
			cmd, err := commands.NewAddLineCommand(docID, src.ID(), suite.qty("6"), kernel.NewUUID())
			suite.Require().NoError(err)
			_, results[i] = handler.Handle(ctx, cmd)
		}(i, docID)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrQuantityExceeded) || errors.Is(err, errs.ErrConflict):
			rejected++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, succeeded, "exactly one operation must win")
	suite.Equal(1, rejected)

	avail, err := sourcelinerepo.NewGormSourceLineLedger(suite.db).
		RemainingCommittable(ctx, src.ID(), nil)
	suite.Require().NoError(err)
	suite.False(avail.Committed.GreaterThan(suite.qty("10")),
		"committed total %s must not exceed ordered 10", avail.Committed)
	suite.True(avail.Committed.IsEqual(suite.qty("8")),
		"winner's 6 plus the two initial 1s, got %s", avail.Committed)
}

func (suite *UnitOfWorkIntegrationTestSuite) qty(s string) kernel.Quantity {
	q, err := kernel.QuantityFromString(s)
	suite.Require().NoError(err)
	return q
}

func (suite *UnitOfWorkIntegrationTestSuite) insertSourceLine(ordered string) *sourceline.SourceLine {
	src, err := sourceline.NewSourceLine(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), suite.qty(ordered))
	suite.Require().NoError(err)

	dto := sourcelinerepo.SourceLineDTO{
		ID:        src.ID().Bytes(),
		ParentID:  src.ParentID().Bytes(),
		ProductID: src.ProductID().Bytes(),
		Ordered:   src.Ordered().Decimal(),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return src
}

func (suite *UnitOfWorkIntegrationTestSuite) newPendingDocument(
	src *sourceline.SourceLine,
	number string,
	requested string,
) *document.Document {
	doc, err := document.NewDocument(
		kernel.NewUUID(), document.Delivery, number, src.ParentID(),
		nil, nil, "", kernel.NewUUID(), time.Now().UTC(),
	)
	suite.Require().NoError(err)
	_, err = doc.AddLine(kernel.NewUUID(), src, suite.qty(requested))
	suite.Require().NoError(err)
	return doc
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
