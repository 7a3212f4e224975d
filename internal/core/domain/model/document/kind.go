package document

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Kind identifies the type of fulfillment document. The reconciliation
// engine, state machine, and persistence are written once against Kind
// rather than duplicated per document type.
type Kind int

const (
	// UnknownKind represents an invalid or undefined kind.
	UnknownKind Kind = iota

	// Delivery moves goods from a warehouse to a customer. Single-step:
	// the planned quantity is shipped in one operation.
	Delivery

	// StockTransfer moves goods between two internal locations. Tracks
	// requested, shipped, and received quantities independently.
	StockTransfer

	// SupplierReturn sends goods back to a supplier. Tracks requested,
	// shipped, and received quantities like a transfer.
	SupplierReturn
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind:    "Unknown",
		Delivery:       "Delivery",
		StockTransfer:  "StockTransfer",
		SupplierReturn: "SupplierReturn",
	}
}

func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // UnknownKind is intentionally excluded as it's invalid
	return map[Kind]string{
		Delivery:       "Delivery",
		StockTransfer:  "StockTransfer",
		SupplierReturn: "SupplierReturn",
	}
}

// KindFromString parses a kind name as received from external callers.
func KindFromString(s string) (Kind, error) {
	for kind, name := range getValidKindStrings() {
		if name == s {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind",
		fmt.Errorf("%q is not a valid document kind", s))
}

// Validate checks that the Kind is one of the defined document kinds.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%d is not a valid document kind", k))
	}
	return nil
}

// String returns the kind name, or "Unknown" for invalid values.
func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "Unknown"
}

// NumberPrefix returns the document-number prefix for the kind,
// e.g. "DLV" for deliveries. Used by the numbering scheme
// PREFIX-YYYYMMDD-NNNNN.
func (k Kind) NumberPrefix() string {
	switch k {
	case Delivery:
		return "DLV"
	case StockTransfer:
		return "TRF"
	case SupplierReturn:
		return "RTN"
	default:
		return ""
	}
}

// IsMultiStep reports whether the kind tracks shipped and received
// quantities as independent steps. Deliveries complete in a single step;
// transfers and supplier returns ship first and receive later.
func (k Kind) IsMultiStep() bool {
	return k == StockTransfer || k == SupplierReturn
}

// SupportsFailedDelivery reports whether the kind can end in the
// FailedDelivery state. Only deliveries can fail in transit this way.
func (k Kind) SupportsFailedDelivery() bool {
	return k == Delivery
}

// CompletedStatus returns the terminal success status for the kind:
// Delivered for deliveries, Received for transfers and supplier returns.
func (k Kind) CompletedStatus() Status {
	if k == Delivery {
		return Delivered
	}
	return Received
}
