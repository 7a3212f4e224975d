package cmd

import (
	"log/slog"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the postgres adapters, the application handlers,
// and the inbound surfaces together.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	coordinator *postgres.TxCoordinator
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	factory := postgres.NewGormUnitOfWorkFactory(gormDB)
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		coordinator: postgres.NewTxCoordinator(factory, logger),
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCreateDocumentCommandHandler() commands.CreateDocumentCommandHandler {
	return commands.NewCreateDocumentCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateAddLineCommandHandler() commands.AddLineCommandHandler {
	return commands.NewAddLineCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateUpdateLineCommandHandler() commands.UpdateLineCommandHandler {
	return commands.NewUpdateLineCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateRemoveLineCommandHandler() commands.RemoveLineCommandHandler {
	return commands.NewRemoveLineCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateStartPreparationCommandHandler() commands.StartPreparationCommandHandler {
	return commands.NewStartPreparationCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateShipDocumentCommandHandler() commands.ShipDocumentCommandHandler {
	return commands.NewShipDocumentCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateReceiveDocumentCommandHandler() commands.ReceiveDocumentCommandHandler {
	return commands.NewReceiveDocumentCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateCancelDocumentCommandHandler() commands.CancelDocumentCommandHandler {
	return commands.NewCancelDocumentCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateFailDeliveryCommandHandler() commands.FailDeliveryCommandHandler {
	return commands.NewFailDeliveryCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateDeleteDocumentCommandHandler() commands.DeleteDocumentCommandHandler {
	return commands.NewDeleteDocumentCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreatePurgeDeletedDocumentsCommandHandler() commands.PurgeDeletedDocumentsCommandHandler {
	return commands.NewPurgeDeletedDocumentsCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateGetDocumentQueryHandler() queries.GetDocumentQueryHandler {
	return queries.NewGetDocumentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOpenDocumentsQueryHandler() queries.ListOpenDocumentsQueryHandler {
	return queries.NewListOpenDocumentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRemainingCommittableQueryHandler() queries.RemainingCommittableQueryHandler {
	return queries.NewRemainingCommittableQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST surface over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateDocumentCommandHandler(),
		c.CreateAddLineCommandHandler(),
		c.CreateUpdateLineCommandHandler(),
		c.CreateRemoveLineCommandHandler(),
		c.CreateStartPreparationCommandHandler(),
		c.CreateShipDocumentCommandHandler(),
		c.CreateReceiveDocumentCommandHandler(),
		c.CreateCancelDocumentCommandHandler(),
		c.CreateFailDeliveryCommandHandler(),
		c.CreateDeleteDocumentCommandHandler(),
		c.CreateGetDocumentQueryHandler(),
		c.CreateListOpenDocumentsQueryHandler(),
		c.CreateRemainingCommittableQueryHandler(),
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	retention := time.Duration(c.config.PurgeRetentionDays) * 24 * time.Hour
	return jobs.NewJobManager(
		c.CreatePurgeDeletedDocumentsCommandHandler(),
		retention,
		c.config.PurgeSchedule,
		c.logger,
	)
}
