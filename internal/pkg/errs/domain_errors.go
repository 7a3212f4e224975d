package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the fulfillment-specific failure classes.
var (
	ErrQuantityExceeded  = errors.New("quantity exceeds remaining committable amount")
	ErrStatusIsForbidden = errors.New("operation is forbidden in current status")
	ErrConflict          = errors.New("operation aborted after repeated write conflicts")
)

// QuantityExceededError is the reconciliation rejection: a candidate line
// quantity would push the total committed against a source line past its
// ordered quantity. All bounds involved in the decision are preserved so
// the caller can present exact diagnostics.
type QuantityExceededError struct {
	ProductID    string
	SourceLineID string
	Requested    decimal.Decimal
	Remaining    decimal.Decimal
	Ordered      decimal.Decimal
	Committed    decimal.Decimal
}

// NewQuantityExceededError creates a reconciliation rejection carrying the
// requested amount and the bounds it violated.
func NewQuantityExceededError(productID, sourceLineID string, requested, remaining, ordered, committed decimal.Decimal) *QuantityExceededError {
	return &QuantityExceededError{
		ProductID:    productID,
		SourceLineID: sourceLineID,
		Requested:    requested,
		Remaining:    remaining,
		Ordered:      ordered,
		Committed:    committed,
	}
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf(
		"%s: product %s requested %s but only %s remains on source line %s (ordered %s, already committed %s)",
		ErrQuantityExceeded, e.ProductID, e.Requested, e.Remaining, e.SourceLineID, e.Ordered, e.Committed)
}

func (e *QuantityExceededError) Unwrap() error {
	return ErrQuantityExceeded
}

// ForbiddenStatusError indicates a mutation or transition attempted while
// the document status is outside the set that permits it. It names the
// current status and the allowed set; the attempt is never silently ignored.
type ForbiddenStatusError struct {
	Operation     string
	CurrentStatus string
	Allowed       []string
}

// NewForbiddenStatusError creates a ForbiddenStatusError for the given
// operation, current status, and permitted status set.
func NewForbiddenStatusError(operation, currentStatus string, allowed ...string) *ForbiddenStatusError {
	return &ForbiddenStatusError{Operation: operation, CurrentStatus: currentStatus, Allowed: allowed}
}

func (e *ForbiddenStatusError) Error() string {
	return fmt.Sprintf("%s: cannot %s while status is %s (allowed: %s)",
		ErrStatusIsForbidden, e.Operation, e.CurrentStatus, strings.Join(e.Allowed, ", "))
}

func (e *ForbiddenStatusError) Unwrap() error {
	return ErrStatusIsForbidden
}

// ConflictError indicates that a unit of work was retried up to its budget
// against serialization failures and still could not commit.
type ConflictError struct {
	Attempts int
	Cause    error
}

// NewConflictError creates a ConflictError recording the number of attempts
// made and the last storage error observed.
func NewConflictError(attempts int, cause error) *ConflictError {
	return &ConflictError{Attempts: attempts, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: gave up after %d attempts (cause: %v)", ErrConflict, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("%s: gave up after %d attempts", ErrConflict, e.Attempts)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
