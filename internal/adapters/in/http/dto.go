package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateDocumentRequest is the payload for POST /documents.
type CreateDocumentRequest struct {
	Kind          string             `json:"kind"`
	ParentID      string             `json:"parentId"`
	OriginID      *string            `json:"originId,omitempty"`
	DestinationID *string            `json:"destinationId,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Lines         []LineInputRequest `json:"lines,omitempty"`
}

// LineInputRequest is one initial line of a new document.
type LineInputRequest struct {
	SourceLineID string `json:"sourceLineId"`
	Quantity     string `json:"quantity"`
}

// CreateDocumentResponse reports the created document.
type CreateDocumentResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Status string `json:"status"`
}

// AddLineRequest is the payload for POST /documents/:id/lines.
type AddLineRequest struct {
	SourceLineID string `json:"sourceLineId"`
	Quantity     string `json:"quantity"`
}

// AddLineResponse reports the created line.
type AddLineResponse struct {
	LineID string `json:"lineId"`
}

// UpdateLineRequest is the payload for PUT /documents/:id/lines/:lineId.
type UpdateLineRequest struct {
	Quantity string `json:"quantity"`
}

// ShipRequest is the payload for POST /documents/:id/ship.
type ShipRequest struct {
	Shipments []LineQuantityRequest `json:"shipments"`
}

// ReceiveRequest is the payload for POST /documents/:id/receive. The
// receipts list may be empty for deliveries.
type ReceiveRequest struct {
	Receipts []LineQuantityRequest `json:"receipts,omitempty"`
}

// LineQuantityRequest addresses one line with a quantity.
type LineQuantityRequest struct {
	LineID   string `json:"lineId"`
	Quantity string `json:"quantity"`
}

// DocumentResponse is the full document view.
type DocumentResponse struct {
	ID            string               `json:"id"`
	Kind          string               `json:"kind"`
	Number        string               `json:"number"`
	Status        string               `json:"status"`
	ParentID      string               `json:"parentId"`
	OriginID      *string              `json:"originId,omitempty"`
	DestinationID *string              `json:"destinationId,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	CreatedBy     string               `json:"createdBy"`
	CreatedAt     time.Time            `json:"createdAt"`
	ShippedAt     *time.Time           `json:"shippedAt,omitempty"`
	ReceivedAt    *time.Time           `json:"receivedAt,omitempty"`
	Lines         []LineResponse       `json:"lines"`
	History       []TransitionResponse `json:"history"`
}

// LineResponse is one line of a document view.
type LineResponse struct {
	ID           string `json:"id"`
	SourceLineID string `json:"sourceLineId"`
	ProductID    string `json:"productId"`
	Requested    string `json:"requested"`
	Shipped      string `json:"shipped"`
	Received     string `json:"received"`
	Committed    string `json:"committed"`
}

// TransitionResponse is one audit-trail entry.
type TransitionResponse struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Actor string    `json:"actor"`
	At    time.Time `json:"at"`
}

// OpenDocumentResponse is one entry of the open-documents listing.
type OpenDocumentResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	ParentID  string    `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	LineCount int       `json:"lineCount"`
}

// AvailabilityResponse is the source line availability snapshot.
type AvailabilityResponse struct {
	SourceLineID string `json:"sourceLineId"`
	ProductID    string `json:"productId"`
	Ordered      string `json:"ordered"`
	Committed    string `json:"committed"`
	Remaining    string `json:"remaining"`
}

func documentToResponse(doc queries.GetDocumentQueryResponse) DocumentResponse {
	resp := DocumentResponse{
		ID:         doc.ID.String(),
		Kind:       doc.Kind,
		Number:     doc.Number,
		Status:     doc.Status,
		ParentID:   doc.ParentID.String(),
		Notes:      doc.Notes,
		CreatedBy:  doc.CreatedBy.String(),
		CreatedAt:  doc.CreatedAt,
		ShippedAt:  doc.ShippedAt,
		ReceivedAt: doc.ReceivedAt,
		Lines:      make([]LineResponse, 0, len(doc.Lines)),
		History:    make([]TransitionResponse, 0, len(doc.History)),
	}
	if doc.OriginID != nil {
		s := doc.OriginID.String()
		resp.OriginID = &s
	}
	if doc.DestinationID != nil {
		s := doc.DestinationID.String()
		resp.DestinationID = &s
	}
	for _, line := range doc.Lines {
		resp.Lines = append(resp.Lines, LineResponse{
			ID:           line.ID.String(),
			SourceLineID: line.SourceLineID.String(),
			ProductID:    line.ProductID.String(),
			Requested:    line.Requested.String(),
			Shipped:      line.Shipped.String(),
			Received:     line.Received.String(),
			Committed:    line.Committed.String(),
		})
	}
	for _, tr := range doc.History {
		resp.History = append(resp.History, TransitionResponse{
			From:  tr.From,
			To:    tr.To,
			Actor: tr.Actor.String(),
			At:    tr.At,
		})
	}
	return resp
}
