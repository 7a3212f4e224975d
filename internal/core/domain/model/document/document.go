// Package document contains the fulfillment document aggregate: the
// header, its lines, the kind taxonomy, and the status state machine.
// A document is one fulfillment instance (delivery, stock transfer, or
// supplier return) whose lines act against source lines of a parent
// order or request.
package document

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sourceline"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrDocumentIsNotConstructed is returned when a Document instance was
	// not created through NewDocument or RestoreDocument.
	ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument or RestoreDocument")

	// ErrDuplicateSourceLine is returned when a document would reference
	// the same source line twice. A source line may be split across
	// different documents but not duplicated within one.
	ErrDuplicateSourceLine = errors.New("document already has a line for this source line")

	// ErrSourceLineParentMismatch is returned when a line's source line
	// belongs to a different parent order than the document declares.
	ErrSourceLineParentMismatch = errors.New("source line belongs to a different parent order")
)

// StatusTransition records one status change for the audit trail:
// who moved the document, from where to where, and when.
type StatusTransition struct {
	From  Status
	To    Status
	Actor kernel.UUID
	At    time.Time
}

// LineShipment is one entry of a ship operation: the line and the
// quantity that actually left the origin location.
type LineShipment struct {
	LineID   kernel.UUID
	Quantity kernel.Quantity
}

// LineReceipt is one entry of a receive operation: the line and the
// quantity confirmed at the destination.
type LineReceipt struct {
	LineID   kernel.UUID
	Quantity kernel.Quantity
}

// Document is the aggregate root for one fulfillment instance. It owns
// its lines for the duration of a unit of work and is the only place
// line mutation happens, so the state-machine gating and the
// within-document invariants cannot be bypassed.
//
// Invariants owned here:
//   - lines are only added, updated, or removed while the status is in
//     the mutable set {Pending, InPreparation}
//   - no two lines reference the same source line
//   - every line's source line belongs to the document's parent order
//   - per line, received <= shipped <= requested
//
// The cross-document invariant (total committed per source line never
// exceeds the ordered quantity) is validated by the reconciliation
// service against the source line ledger before any of the mutating
// methods here are called, inside the same transaction.
type Document struct {
	id        kernel.UUID
	kind      Kind
	number    string
	status    Status
	parentID  kernel.UUID
	originID  *kernel.UUID
	destID    *kernel.UUID
	notes     string
	createdBy kernel.UUID
	createdAt time.Time

	shippedAt  *time.Time
	receivedAt *time.Time

	lines       []*Line
	transitions []StatusTransition

	isConstructed bool
}

// NewDocument creates a document in Pending status with no lines.
// The number must already be assigned by the numbering scheme; origin and
// destination are optional depending on kind (a supplier return has no
// internal destination, a delivery no internal origin).
func NewDocument(
	id kernel.UUID,
	kind Kind,
	number string,
	parentID kernel.UUID,
	originID, destID *kernel.UUID,
	notes string,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*Document, error) {
	if err := errors.Join(
		id.Validate(),
		kind.Validate(),
		parentID.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	return &Document{
		id:            id,
		kind:          kind,
		number:        number,
		status:        Pending,
		parentID:      parentID,
		originID:      originID,
		destID:        destID,
		notes:         notes,
		createdBy:     createdBy,
		createdAt:     createdAt,
		lines:         make([]*Line, 0),
		isConstructed: true,
	}, nil
}

// RestoreDocument rebuilds a document from persistence with its current
// status and lines. Used by repository adapters only.
func RestoreDocument(
	id kernel.UUID,
	kind Kind,
	number string,
	status Status,
	parentID kernel.UUID,
	originID, destID *kernel.UUID,
	notes string,
	createdBy kernel.UUID,
	createdAt time.Time,
	shippedAt, receivedAt *time.Time,
	lines []*Line,
) (*Document, error) {
	if err := errors.Join(
		id.Validate(),
		kind.Validate(),
		status.Validate(),
		parentID.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	doc := &Document{
		id:            id,
		kind:          kind,
		number:        number,
		status:        status,
		parentID:      parentID,
		originID:      originID,
		destID:        destID,
		notes:         notes,
		createdBy:     createdBy,
		createdAt:     createdAt,
		shippedAt:     shippedAt,
		receivedAt:    receivedAt,
		lines:         lines,
		isConstructed: true,
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate re-checks every invariant the aggregate owns. Called by
// repositories as the last gate before a save, regardless of which
// mutation path was taken.
func (d *Document) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDocumentIsNotConstructed
	}

	seen := make(map[kernel.UUID]struct{}, len(d.lines))
	for _, line := range d.lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if _, dup := seen[line.SourceLineID()]; dup {
			return ErrDuplicateSourceLine
		}
		seen[line.SourceLineID()] = struct{}{}
	}
	return nil
}

// ID returns the document's unique identifier.
func (d *Document) ID() kernel.UUID {
	return d.id
}

// Kind returns the document kind.
func (d *Document) Kind() Kind {
	return d.kind
}

// Number returns the human-readable document number.
func (d *Document) Number() string {
	return d.number
}

// Status returns the current lifecycle status.
func (d *Document) Status() Status {
	return d.status
}

// ParentID returns the parent order or request this document fulfills.
func (d *Document) ParentID() kernel.UUID {
	return d.parentID
}

// OriginID returns the origin location reference, if any.
func (d *Document) OriginID() *kernel.UUID {
	return d.originID
}

// DestinationID returns the destination location reference, if any.
func (d *Document) DestinationID() *kernel.UUID {
	return d.destID
}

// Notes returns the free-text notes.
func (d *Document) Notes() string {
	return d.notes
}

// CreatedBy returns the actor that created the document.
func (d *Document) CreatedBy() kernel.UUID {
	return d.createdBy
}

// CreatedAt returns the creation timestamp.
func (d *Document) CreatedAt() time.Time {
	return d.createdAt
}

// ShippedAt returns the ship timestamp, if the document has shipped.
func (d *Document) ShippedAt() *time.Time {
	return d.shippedAt
}

// ReceivedAt returns the completion timestamp, if the document reached
// its terminal success state.
func (d *Document) ReceivedAt() *time.Time {
	return d.receivedAt
}

// Lines returns the document's lines. The slice is a copy; mutate lines
// only through the aggregate's methods.
func (d *Document) Lines() []*Line {
	out := make([]*Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Line returns the line with the given id, or a not-found error.
func (d *Document) Line(lineID kernel.UUID) (*Line, error) {
	for _, line := range d.lines {
		if line.ID().IsEqual(lineID) {
			return line, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("lineId", lineID.String())
}

// LineBySourceLine returns the line consuming the given source line, or
// nil if the document has none.
func (d *Document) LineBySourceLine(sourceLineID kernel.UUID) *Line {
	for _, line := range d.lines {
		if line.SourceLineID().IsEqual(sourceLineID) {
			return line
		}
	}
	return nil
}

// SetNotes updates the free-text notes. Header edits follow the same
// status gating as line mutation.
func (d *Document) SetNotes(notes string) error {
	if err := d.status.ValidateLineMutation("update header"); err != nil {
		return err
	}
	d.notes = notes
	return nil
}

// AddLine creates a line consuming the given source line.
//
// Preconditions enforced here:
//   - the document is in a mutable status
//   - the source line belongs to the document's parent order
//   - no existing line references the same source line
//
// Quantity reconciliation against sibling documents must already have
// passed; AddLine only owns the within-aggregate rules.
func (d *Document) AddLine(lineID kernel.UUID, src *sourceline.SourceLine, requested kernel.Quantity) (*Line, error) {
	if err := d.status.ValidateLineMutation("add line"); err != nil {
		return nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if !src.ParentID().IsEqual(d.parentID) {
		return nil, fmt.Errorf("%w: source line %s belongs to %s, document fulfills %s",
			ErrSourceLineParentMismatch, src.ID(), src.ParentID(), d.parentID)
	}
	if d.LineBySourceLine(src.ID()) != nil {
		return nil, ErrDuplicateSourceLine
	}

	line, err := NewLine(lineID, src.ID(), src.ProductID(), requested)
	if err != nil {
		return nil, err
	}

	d.lines = append(d.lines, line)
	return line, nil
}

// UpdateLineRequested corrects a line's planned quantity. Same status
// gating as AddLine; reconciliation excluding the line's own previous
// commitment must already have passed.
func (d *Document) UpdateLineRequested(lineID kernel.UUID, requested kernel.Quantity) (*Line, error) {
	if err := d.status.ValidateLineMutation("update line"); err != nil {
		return nil, err
	}

	line, err := d.Line(lineID)
	if err != nil {
		return nil, err
	}
	if err := line.setRequested(requested); err != nil {
		return nil, err
	}
	return line, nil
}

// RemoveLine hard-removes a line. Only permitted while mutable.
func (d *Document) RemoveLine(lineID kernel.UUID) error {
	if err := d.status.ValidateLineMutation("remove line"); err != nil {
		return err
	}

	for i, line := range d.lines {
		if line.ID().IsEqual(lineID) {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("lineId", lineID.String())
}

// Ship records the shipped quantity for each supplied line and advances
// the document to Shipped.
//
// Allowed only from the mutable set. Every referenced line must exist
// and no shipment may exceed the line's requested quantity; the
// shipped-step reconciliation against sibling documents happens before
// this call. Rejections leave the document unchanged.
func (d *Document) Ship(shipments []LineShipment, actor kernel.UUID, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if len(shipments) == 0 {
		return errs.NewValueIsRequiredError("shipments")
	}

	newStatus, err := d.status.Ship()
	if err != nil {
		return err
	}

	// Resolve and validate everything before mutating any line, so a
	// rejected shipment cannot leave the document half-shipped.
	lines := make([]*Line, len(shipments))
	for i, s := range shipments {
		line, lookupErr := d.Line(s.LineID)
		if lookupErr != nil {
			return lookupErr
		}
		if !s.Quantity.IsPositive() {
			return errs.NewValueIsInvalidError("shipped quantity")
		}
		if s.Quantity.GreaterThan(line.Requested()) {
			return errs.NewValueIsOutOfRangeError("shipped",
				s.Quantity.String(), "0", line.Requested().String())
		}
		lines[i] = line
	}

	for i, s := range shipments {
		if err := lines[i].ship(s.Quantity); err != nil {
			return err
		}
	}

	d.recordTransition(newStatus, actor, now)
	d.status = newStatus
	d.shippedAt = &now
	return nil
}

// Receive records received quantities and, when every line is fully
// received, advances the document to its terminal success state
// (Delivered or Received).
//
// Allowed only from Shipped. For single-step kinds (deliveries) the
// receipts may be empty: confirmation alone completes the document and
// each line's received counter is set to its shipped quantity.
func (d *Document) Receive(receipts []LineReceipt, actor kernel.UUID, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if d.status != Shipped {
		return errs.NewForbiddenStatusError("receive", d.status.String(), Shipped.String())
	}

	if !d.kind.IsMultiStep() {
		for _, line := range d.lines {
			if line.Shipped().IsPositive() {
				if err := line.receive(line.Shipped()); err != nil {
					return err
				}
			}
		}
		return d.complete(actor, now)
	}

	if len(receipts) == 0 {
		return errs.NewValueIsRequiredError("receipts")
	}

	lines := make([]*Line, len(receipts))
	for i, r := range receipts {
		line, lookupErr := d.Line(r.LineID)
		if lookupErr != nil {
			return lookupErr
		}
		if !r.Quantity.IsPositive() {
			return errs.NewValueIsInvalidError("received quantity")
		}
		if r.Quantity.GreaterThan(line.Shipped()) {
			return errs.NewValueIsOutOfRangeError("received",
				r.Quantity.String(), "0", line.Shipped().String())
		}
		lines[i] = line
	}

	for i, r := range receipts {
		if err := lines[i].receive(r.Quantity); err != nil {
			return err
		}
	}

	if d.allLinesFullyReceived() {
		return d.complete(actor, now)
	}
	return nil
}

// Cancel moves the document to Cancelled from any non-terminal status.
// Cancelled documents release their committed quantities: the ledger
// excludes them from every reconciliation sum.
func (d *Document) Cancel(actor kernel.UUID, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.recordTransition(newStatus, actor, now)
	d.status = newStatus
	return nil
}

// StartPreparation moves the document from Pending to InPreparation.
// Lines remain editable.
func (d *Document) StartPreparation(actor kernel.UUID, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.StartPreparation()
	if err != nil {
		return err
	}

	d.recordTransition(newStatus, actor, now)
	d.status = newStatus
	return nil
}

// FailDelivery moves a shipped delivery to FailedDelivery.
func (d *Document) FailDelivery(actor kernel.UUID, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.FailDelivery(d.kind)
	if err != nil {
		return err
	}

	d.recordTransition(newStatus, actor, now)
	d.status = newStatus
	return nil
}

// EnsureDeletable reports whether the document may be soft-deleted.
// Deletion is an editing operation: documents that shipped already moved
// goods and must be cancelled or completed through the lifecycle instead.
// A cancelled document may still be tidied away.
func (d *Document) EnsureDeletable() error {
	if d.status.AllowsLineMutation() || d.status == Cancelled {
		return nil
	}
	allowed := append(MutableStatusNames(), Cancelled.String())
	return errs.NewForbiddenStatusError("delete document", d.status.String(), allowed...)
}

// CommittedQuantity returns the quantity a line currently counts against
// its source line's capacity, given the document's step: the requested
// quantity while editable, the shipped quantity from Shipped onward, and
// nothing once cancelled. This mirrors the CASE expression the ledger
// uses in storage; in-memory fakes use this method.
func (d *Document) CommittedQuantity(line *Line) kernel.Quantity {
	switch d.status {
	case Pending, InPreparation:
		return line.Requested()
	case Shipped, Delivered, Received, FailedDelivery:
		return line.Shipped()
	default:
		return kernel.ZeroQuantity()
	}
}

// DrainTransitions returns the status transitions recorded since the
// document was loaded and clears the buffer. Repositories persist them
// as the audit trail when saving the aggregate.
func (d *Document) DrainTransitions() []StatusTransition {
	out := d.transitions
	d.transitions = nil
	return out
}

func (d *Document) allLinesFullyReceived() bool {
	for _, line := range d.lines {
		if line.Shipped().IsPositive() && !line.IsFullyReceived() {
			return false
		}
	}
	return true
}

func (d *Document) complete(actor kernel.UUID, now time.Time) error {
	newStatus, err := d.status.Complete(d.kind)
	if err != nil {
		return err
	}

	d.recordTransition(newStatus, actor, now)
	d.status = newStatus
	d.receivedAt = &now
	return nil
}

func (d *Document) recordTransition(to Status, actor kernel.UUID, now time.Time) {
	d.transitions = append(d.transitions, StatusTransition{
		From:  d.status,
		To:    to,
		Actor: actor,
		At:    now,
	})
}
