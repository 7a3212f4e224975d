// Package http exposes the fulfillment operations over a REST surface.
// Handlers translate JSON payloads into commands and queries; all
// business decisions stay behind the application layer.
package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// actorHeader carries the acting user's id for audit fields.
// Authentication itself lives upstream of this service.
const actorHeader = "X-Actor-ID"

// Server wires HTTP routes to the command and query handlers.
type Server struct {
	createDocumentHandler   commands.CreateDocumentCommandHandler
	addLineHandler          commands.AddLineCommandHandler
	updateLineHandler       commands.UpdateLineCommandHandler
	removeLineHandler       commands.RemoveLineCommandHandler
	startPreparationHandler commands.StartPreparationCommandHandler
	shipDocumentHandler     commands.ShipDocumentCommandHandler
	receiveDocumentHandler  commands.ReceiveDocumentCommandHandler
	cancelDocumentHandler   commands.CancelDocumentCommandHandler
	failDeliveryHandler     commands.FailDeliveryCommandHandler
	deleteDocumentHandler   commands.DeleteDocumentCommandHandler

	getDocumentHandler          queries.GetDocumentQueryHandler
	listOpenDocumentsHandler    queries.ListOpenDocumentsQueryHandler
	remainingCommittableHandler queries.RemainingCommittableQueryHandler
}

// NewServer creates the HTTP server over the application handlers.
func NewServer(
	createDocumentHandler commands.CreateDocumentCommandHandler,
	addLineHandler commands.AddLineCommandHandler,
	updateLineHandler commands.UpdateLineCommandHandler,
	removeLineHandler commands.RemoveLineCommandHandler,
	startPreparationHandler commands.StartPreparationCommandHandler,
	shipDocumentHandler commands.ShipDocumentCommandHandler,
	receiveDocumentHandler commands.ReceiveDocumentCommandHandler,
	cancelDocumentHandler commands.CancelDocumentCommandHandler,
	failDeliveryHandler commands.FailDeliveryCommandHandler,
	deleteDocumentHandler commands.DeleteDocumentCommandHandler,
	getDocumentHandler queries.GetDocumentQueryHandler,
	listOpenDocumentsHandler queries.ListOpenDocumentsQueryHandler,
	remainingCommittableHandler queries.RemainingCommittableQueryHandler,
) *Server {
	return &Server{
		createDocumentHandler:       createDocumentHandler,
		addLineHandler:              addLineHandler,
		updateLineHandler:           updateLineHandler,
		removeLineHandler:           removeLineHandler,
		startPreparationHandler:     startPreparationHandler,
		shipDocumentHandler:         shipDocumentHandler,
		receiveDocumentHandler:      receiveDocumentHandler,
		cancelDocumentHandler:       cancelDocumentHandler,
		failDeliveryHandler:         failDeliveryHandler,
		deleteDocumentHandler:       deleteDocumentHandler,
		getDocumentHandler:          getDocumentHandler,
		listOpenDocumentsHandler:    listOpenDocumentsHandler,
		remainingCommittableHandler: remainingCommittableHandler,
	}
}

// RegisterRoutes attaches all fulfillment routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/documents", s.CreateDocument)
	v1.GET("/documents", s.ListOpenDocuments)
	v1.GET("/documents/:id", s.GetDocument)
	v1.DELETE("/documents/:id", s.DeleteDocument)

	v1.POST("/documents/:id/lines", s.AddLine)
	v1.PUT("/documents/:id/lines/:lineId", s.UpdateLine)
	v1.DELETE("/documents/:id/lines/:lineId", s.RemoveLine)

	v1.POST("/documents/:id/prepare", s.StartPreparation)
	v1.POST("/documents/:id/ship", s.ShipDocument)
	v1.POST("/documents/:id/receive", s.ReceiveDocument)
	v1.POST("/documents/:id/cancel", s.CancelDocument)
	v1.POST("/documents/:id/fail-delivery", s.FailDelivery)

	v1.GET("/source-lines/:id/availability", s.GetAvailability)
}

// CreateDocument handles POST /api/v1/documents.
func (s *Server) CreateDocument(ctx echo.Context) error {
	var req CreateDocumentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	kind, err := document.KindFromString(req.Kind)
	if err != nil {
		return writeError(ctx, err)
	}
	parentID, err := kernel.UUIDFromString(req.ParentID)
	if err != nil {
		return badRequest(ctx, "invalid parentId")
	}
	originID, err := optionalID(req.OriginID)
	if err != nil {
		return badRequest(ctx, "invalid originId")
	}
	destID, err := optionalID(req.DestinationID)
	if err != nil {
		return badRequest(ctx, "invalid destinationId")
	}

	lines := make([]commands.LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		input, lineErr := parseLineInput(l.SourceLineID, l.Quantity)
		if lineErr != nil {
			return badRequest(ctx, lineErr.Error())
		}
		lines = append(lines, input)
	}

	cmd, err := commands.NewCreateDocumentCommand(
		kind, parentID, originID, destID, req.Notes, actorID, lines)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.createDocumentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateDocumentResponse{
		ID:     resp.DocumentID.String(),
		Number: resp.Number,
		Status: resp.Status.String(),
	})
}

// GetDocument handles GET /api/v1/documents/:id.
func (s *Server) GetDocument(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid document id")
	}

	query, err := queries.NewGetDocumentQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}
	doc, err := s.getDocumentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, documentToResponse(doc))
}

// ListOpenDocuments handles GET /api/v1/documents with an optional
// ?kind= filter.
func (s *Server) ListOpenDocuments(ctx echo.Context) error {
	query := queries.NewListOpenDocumentsQuery()
	if kindParam := ctx.QueryParam("kind"); kindParam != "" {
		kind, err := document.KindFromString(kindParam)
		if err != nil {
			return writeError(ctx, err)
		}
		if query, err = queries.NewListOpenDocumentsQueryForKind(kind); err != nil {
			return writeError(ctx, err)
		}
	}

	docs, err := s.listOpenDocumentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := make([]OpenDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, OpenDocumentResponse{
			ID:        doc.ID.String(),
			Kind:      doc.Kind,
			Number:    doc.Number,
			Status:    doc.Status,
			ParentID:  doc.ParentID.String(),
			CreatedAt: doc.CreatedAt,
			LineCount: doc.LineCount,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// DeleteDocument handles DELETE /api/v1/documents/:id.
func (s *Server) DeleteDocument(ctx echo.Context) error {
	cmdIDs, err := documentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeleteDocumentCommand(cmdIDs.documentID, cmdIDs.actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.deleteDocumentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddLine handles POST /api/v1/documents/:id/lines.
func (s *Server) AddLine(ctx echo.Context) error {
	cmdIDs, err := documentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req AddLineRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	input, err := parseLineInput(req.SourceLineID, req.Quantity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAddLineCommand(
		cmdIDs.documentID, input.SourceLineID, input.Quantity, cmdIDs.actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	resp, err := s.addLineHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, AddLineResponse{LineID: resp.LineID.String()})
}

// UpdateLine handles PUT /api/v1/documents/:id/lines/:lineId.
func (s *Server) UpdateLine(ctx echo.Context) error {
	cmdIDs, err := documentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "invalid line id")
	}

	var req UpdateLineRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	quantity, err := kernel.QuantityFromString(req.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateLineCommand(cmdIDs.documentID, lineID, quantity, cmdIDs.actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.updateLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveLine handles DELETE /api/v1/documents/:id/lines/:lineId.
func (s *Server) RemoveLine(ctx echo.Context) error {
	cmdIDs, err := documentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "invalid line id")
	}

	cmd, err := commands.NewRemoveLineCommand(cmdIDs.documentID, lineID, cmdIDs.actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.removeLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartPreparation handles POST /api/v1/documents/:id/prepare.
func (s *Server) StartPreparation(ctx echo.Context) error {
	cmdIDs, err := documentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewStartPreparationCommand(cmdIDs.documentID, cmdIDs.actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.startPreparationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ShipDocument handles POST /api/v1/documents/:id/ship.
func (s *Server) ShipDocument(ctx echo.Context) error {
	cmdIDs, err := documentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ShipRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	shipments, err := parseLineQuantities(req.Shipments)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	inputs := make([]commands.ShipmentInput, 0, len(shipments))
	for _, shipment := range shipments {
		inputs = append(inputs, commands.ShipmentInput(shipment))
	}
	cmd, err := commands.NewShipDocumentCommand(cmdIDs.documentID, cmdIDs.actorID, inputs)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.shipDocumentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReceiveDocument handles POST /api/v1/documents/:id/receive.
func (s *Server) ReceiveDocument(ctx echo.Context) error {
	cmdIDs, err := documentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ReceiveRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	receipts, err := parseLineQuantities(req.Receipts)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	inputs := make([]commands.ReceiptInput, 0, len(receipts))
	for _, r := range receipts {
		inputs = append(inputs, commands.ReceiptInput(r))
	}
	cmd, err := commands.NewReceiveDocumentCommand(cmdIDs.documentID, cmdIDs.actorID, inputs)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.receiveDocumentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelDocument handles POST /api/v1/documents/:id/cancel.
func (s *Server) CancelDocument(ctx echo.Context) error {
	cmdIDs, err := documentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCancelDocumentCommand(cmdIDs.documentID, cmdIDs.actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cancelDocumentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// FailDelivery handles POST /api/v1/documents/:id/fail-delivery.
func (s *Server) FailDelivery(ctx echo.Context) error {
	cmdIDs, err := documentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewFailDeliveryCommand(cmdIDs.documentID, cmdIDs.actorID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.failDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailability handles GET /api/v1/source-lines/:id/availability.
func (s *Server) GetAvailability(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid source line id")
	}

	query, err := queries.NewRemainingCommittableQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}
	avail, err := s.remainingCommittableHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AvailabilityResponse{
		SourceLineID: avail.SourceLineID.String(),
		ProductID:    avail.ProductID.String(),
		Ordered:      avail.Ordered.String(),
		Committed:    avail.Committed.String(),
		Remaining:    avail.Remaining.String(),
	})
}
