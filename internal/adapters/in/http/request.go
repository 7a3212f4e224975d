package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// requestIDs bundles the two identifiers every document mutation needs.
type requestIDs struct {
	documentID kernel.UUID
	actorID    kernel.UUID
}

// lineQuantity is the parsed form of LineQuantityRequest, structurally
// convertible to the command input types.
type lineQuantity struct {
	LineID   kernel.UUID
	Quantity kernel.Quantity
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func actorFromHeader(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(actorHeader)
	if raw == "" {
		return kernel.UUID{}, errors.New("missing " + actorHeader + " header")
	}
	actorID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errors.New("invalid " + actorHeader + " header")
	}
	return actorID, nil
}

func documentAndActor(ctx echo.Context) (requestIDs, error) {
	documentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return requestIDs{}, errors.New("invalid document id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return requestIDs{}, err
	}
	return requestIDs{documentID: documentID, actorID: actorID}, nil
}

func optionalID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseLineInput(sourceLineID, quantity string) (commands.LineInput, error) {
	id, err := kernel.UUIDFromString(sourceLineID)
	if err != nil {
		return commands.LineInput{}, errors.New("invalid sourceLineId")
	}
	qty, err := kernel.QuantityFromString(quantity)
	if err != nil {
		return commands.LineInput{}, err
	}
	return commands.LineInput{SourceLineID: id, Quantity: qty}, nil
}

func parseLineQuantities(items []LineQuantityRequest) ([]lineQuantity, error) {
	parsed := make([]lineQuantity, 0, len(items))
	for _, item := range items {
		id, err := kernel.UUIDFromString(item.LineID)
		if err != nil {
			return nil, errors.New("invalid lineId")
		}
		qty, err := kernel.QuantityFromString(item.Quantity)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, lineQuantity{LineID: id, Quantity: qty})
	}
	return parsed, nil
}
