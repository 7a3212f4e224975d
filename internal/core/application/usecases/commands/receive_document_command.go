package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReceiveDocumentCommandIsNotConstructed = errors.New(
	"ReceiveDocumentCommand must be created via NewReceiveDocumentCommand constructor",
)

// ReceiptInput is the received quantity for one document line.
type ReceiptInput struct {
	LineID   kernel.UUID
	Quantity kernel.Quantity
}

// ReceiveDocumentCommand represents a request to record arrival of
// shipped goods. For deliveries the receipt list is ignored and the
// document completes in full; for stock transfers and supplier returns
// each receipt is applied to its line and the document completes once
// every line is fully received.
type ReceiveDocumentCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	actorID    kernel.UUID
	receipts   []ReceiptInput

	guard guard.ConstructorGuard
}

// NewReceiveDocumentCommand creates a command to receive a document.
func NewReceiveDocumentCommand(documentID, actorID kernel.UUID, receipts []ReceiptInput) (ReceiveDocumentCommand, error) {
	cmd := ReceiveDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&cmd.documentID, documentID),
		validateID(&cmd.actorID, actorID),
		cmd.setReceipts(receipts),
	); err != nil {
		return ReceiveDocumentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveDocumentCommand) Validate() error {
	return c.guard.Validate(ErrReceiveDocumentCommandIsNotConstructed)
}

// DocumentID returns the document being received.
func (c ReceiveDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// ActorID returns the acting user.
func (c ReceiveDocumentCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Receipts returns the per-line received quantities.
func (c ReceiveDocumentCommand) Receipts() []ReceiptInput {
	return c.receipts
}

func (c *ReceiveDocumentCommand) setReceipts(receipts []ReceiptInput) error {
	for _, r := range receipts {
		if err := r.LineID.Validate(); err != nil {
			return err
		}
		if !r.Quantity.IsPositive() {
			return errs.NewValueIsInvalidError("receipt quantity")
		}
	}
	c.receipts = receipts
	return nil
}
