package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps domain errors onto HTTP statuses: rejection classes
// become client errors, conflicts surface as 409 so the caller can
// retry, everything else is a 500 with the detail withheld.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrStatusIsForbidden):
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "operation conflicted with concurrent changes, please retry",
		})
	case errors.Is(err, errs.ErrQuantityExceeded),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, document.ErrDuplicateSourceLine),
		errors.Is(err, document.ErrSourceLineParentMismatch):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}
