package document

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a fulfillment document.
// It implements a state machine whose transitions gate which mutations
// are legal on the owning document.
//
// State transitions:
//
//	Pending ──> InPreparation ──> Shipped ──> Delivered / Received
//	   │              │              │
//	   │              │              ├──> FailedDelivery (delivery kind only)
//	   └──────────────┴──────────────┴──> Cancelled
//
// Pending may also ship directly (a document does not have to pass
// through InPreparation). Delivered, Received, Cancelled, and
// FailedDelivery are terminal.
//
// Header fields and line add/update/delete are permitted only while the
// status is in the mutable set {Pending, InPreparation}. The dedicated
// ship and receive operations are the only mutations allowed outside it.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Pending is the initial status of every document. Lines and header
	// fields are freely editable.
	Pending

	// InPreparation marks a document being picked/packed. Still editable.
	InPreparation

	// Shipped marks goods in transit. Lines are frozen; only the receive
	// operation (and delivery failure) may act on the document.
	Shipped

	// Delivered is the terminal success state for deliveries.
	Delivered

	// Received is the terminal success state for transfers and supplier
	// returns, reached when every line is fully received.
	Received

	// Cancelled is reachable from any non-terminal status.
	Cancelled

	// FailedDelivery is reachable from Shipped for the delivery kind.
	FailedDelivery
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:  "Unknown",
		Pending:        "Pending",
		InPreparation:  "InPreparation",
		Shipped:        "Shipped",
		Delivered:      "Delivered",
		Received:       "Received",
		Cancelled:      "Cancelled",
		FailedDelivery: "FailedDelivery",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		InPreparation:  "InPreparation",
		Shipped:        "Shipped",
		Delivered:      "Delivered",
		Received:       "Received",
		Cancelled:      "Cancelled",
		FailedDelivery: "FailedDelivery",
	}
}

// MutableStatusNames returns the names of the statuses that permit line
// and header mutation, for use in Forbidden-class error messages.
func MutableStatusNames() []string {
	return []string{Pending.String(), InPreparation.String()}
}

// StatusFromString parses a status name as stored in persistence.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Received, Cancelled, FailedDelivery:
		return true
	default:
		return false
	}
}

// AllowsLineMutation reports whether line add/update/delete and header
// edits are permitted in this status.
func (s Status) AllowsLineMutation() bool {
	return s == Pending || s == InPreparation
}

// ValidateLineMutation returns a ForbiddenStatusError if the status is
// outside the mutable set. The operation name is included in the error
// so callers can report what was attempted.
func (s Status) ValidateLineMutation(operation string) error {
	if !s.AllowsLineMutation() {
		return errs.NewForbiddenStatusError(operation, s.String(), MutableStatusNames()...)
	}
	return nil
}

// StartPreparation transitions Pending -> InPreparation.
func (s Status) StartPreparation() (Status, error) {
	if s != Pending {
		return 0, errs.NewForbiddenStatusError("start preparation", s.String(), Pending.String())
	}
	return InPreparation, nil
}

// Ship transitions Pending or InPreparation -> Shipped.
// Documents already shipped or in a terminal state cannot ship again.
func (s Status) Ship() (Status, error) {
	if !s.AllowsLineMutation() {
		return 0, errs.NewForbiddenStatusError("ship", s.String(), MutableStatusNames()...)
	}
	return Shipped, nil
}

// Complete transitions Shipped to the kind's terminal success state:
// Delivered for deliveries, Received otherwise.
func (s Status) Complete(kind Kind) (Status, error) {
	if s != Shipped {
		return 0, errs.NewForbiddenStatusError("receive", s.String(), Shipped.String())
	}
	return kind.CompletedStatus(), nil
}

// Cancel transitions any non-terminal status -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewForbiddenStatusError("cancel", s.String(),
			Pending.String(), InPreparation.String(), Shipped.String())
	}
	return Cancelled, nil
}

// FailDelivery transitions Shipped -> FailedDelivery for kinds that
// support it (deliveries only).
func (s Status) FailDelivery(kind Kind) (Status, error) {
	if !kind.SupportsFailedDelivery() {
		return 0, errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%s documents cannot fail delivery", kind))
	}
	if s != Shipped {
		return 0, errs.NewForbiddenStatusError("fail delivery", s.String(), Shipped.String())
	}
	return FailedDelivery, nil
}
