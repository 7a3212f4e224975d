package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateDocumentCommandIsNotConstructed = errors.New(
		"CreateDocumentCommand must be created via NewCreateDocumentCommand constructor",
	)
)

// LineInput is one requested line of a new document: the source line to
// draw from and the quantity to commit against it.
type LineInput struct {
	SourceLineID kernel.UUID
	Quantity     kernel.Quantity
}

// CreateDocumentCommand represents a request to create a new fulfillment
// document with an optional initial set of lines. Every line is
// reconciled against its source line before the document is persisted;
// if any line is rejected, nothing is created.
//
// Example:
//
//	cmd, err := NewCreateDocumentCommand(
//	    document.Delivery, parentID, nil, &warehouseID,
//	    "leave at reception", actorID,
//	    []LineInput{{SourceLineID: slID, Quantity: three}},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid document data: %w", err)
//	}
//	resp, err := handler.Handle(ctx, cmd)
type CreateDocumentCommand struct { //nolint:recvcheck //using for validation
	kind     document.Kind
	parentID kernel.UUID
	originID *kernel.UUID
	destID   *kernel.UUID
	notes    string
	actorID  kernel.UUID
	lines    []LineInput

	guard guard.ConstructorGuard
}

// NewCreateDocumentCommand creates a command to register a new document.
// Validates the kind, the parent reference, the acting user, and every
// line input's identifiers and quantity.
func NewCreateDocumentCommand(
	kind document.Kind,
	parentID kernel.UUID,
	originID, destID *kernel.UUID,
	notes string,
	actorID kernel.UUID,
	lines []LineInput,
) (CreateDocumentCommand, error) {
	cmd := CreateDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKind(kind),
		cmd.setParentID(parentID),
		cmd.setActorID(actorID),
		cmd.setLines(lines),
	); err != nil {
		return CreateDocumentCommand{}, err
	}

	cmd.originID = originID
	cmd.destID = destID
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDocumentCommand) Validate() error {
	return c.guard.Validate(ErrCreateDocumentCommandIsNotConstructed)
}

// Kind returns the document kind to create.
func (c CreateDocumentCommand) Kind() document.Kind {
	return c.kind
}

// ParentID returns the parent order or request to fulfill.
func (c CreateDocumentCommand) ParentID() kernel.UUID {
	return c.parentID
}

// OriginID returns the optional origin location.
func (c CreateDocumentCommand) OriginID() *kernel.UUID {
	return c.originID
}

// DestinationID returns the optional destination location.
func (c CreateDocumentCommand) DestinationID() *kernel.UUID {
	return c.destID
}

// Notes returns the free-text notes.
func (c CreateDocumentCommand) Notes() string {
	return c.notes
}

// ActorID returns the acting user for audit fields.
func (c CreateDocumentCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Lines returns the initial line inputs.
func (c CreateDocumentCommand) Lines() []LineInput {
	return c.lines
}

func (c *CreateDocumentCommand) setKind(kind document.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *CreateDocumentCommand) setParentID(parentID kernel.UUID) error {
	if err := parentID.Validate(); err != nil {
		return err
	}
	c.parentID = parentID
	return nil
}

func (c *CreateDocumentCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *CreateDocumentCommand) setLines(lines []LineInput) error {
	for _, line := range lines {
		if err := line.SourceLineID.Validate(); err != nil {
			return err
		}
		if !line.Quantity.IsPositive() {
			return errs.NewValueIsInvalidError("line quantity")
		}
	}
	c.lines = lines
	return nil
}
