package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrShipDocumentCommandIsNotConstructed = errors.New(
	"ShipDocumentCommand must be created via NewShipDocumentCommand constructor",
)

// ShipmentInput is the actually shipped quantity for one document line.
type ShipmentInput struct {
	LineID   kernel.UUID
	Quantity kernel.Quantity
}

// ShipDocumentCommand represents a request to transition a document to
// Shipped, recording per-line shipped quantities. From this point the
// shipped quantities become the document's commitment against its
// source lines.
type ShipDocumentCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	actorID    kernel.UUID
	shipments  []ShipmentInput

	guard guard.ConstructorGuard
}

// NewShipDocumentCommand creates a command to ship a document. At least
// one shipment entry is required; a document cannot ship nothing.
func NewShipDocumentCommand(documentID, actorID kernel.UUID, shipments []ShipmentInput) (ShipDocumentCommand, error) {
	cmd := ShipDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&cmd.documentID, documentID),
		validateID(&cmd.actorID, actorID),
		cmd.setShipments(shipments),
	); err != nil {
		return ShipDocumentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipDocumentCommand) Validate() error {
	return c.guard.Validate(ErrShipDocumentCommandIsNotConstructed)
}

// DocumentID returns the document to ship.
func (c ShipDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// ActorID returns the acting user.
func (c ShipDocumentCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Shipments returns the per-line shipped quantities.
func (c ShipDocumentCommand) Shipments() []ShipmentInput {
	return c.shipments
}

func (c *ShipDocumentCommand) setShipments(shipments []ShipmentInput) error {
	if len(shipments) == 0 {
		return errs.NewValueIsRequiredError("shipments")
	}
	for _, s := range shipments {
		if err := s.LineID.Validate(); err != nil {
			return err
		}
		if !s.Quantity.IsPositive() {
			return errs.NewValueIsInvalidError("shipment quantity")
		}
	}
	c.shipments = shipments
	return nil
}
