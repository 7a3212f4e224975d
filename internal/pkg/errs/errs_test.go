package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("documentId", "123")

		assert.Equal(t, "documentId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("sourceLineId", "123", cause)

		assert.Equal(t, "sourceLineId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: sourceLineId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be positive")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, "value is invalid: quantity (cause: must be positive)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("received", 8, 0, 6)

	assert.Equal(t, "received", err.ParamName)
	assert.Equal(t, 8, err.Value)
	assert.Equal(t, 0, err.Min)
	assert.Equal(t, 6, err.Max)
	assert.Equal(t, "value is invalid: 8 is received, min value is 0, max value is 6", err.Error())
	assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
}

func TestQuantityExceededError(t *testing.T) {
	err := errs.NewQuantityExceededError(
		"prod-1", "sl-1",
		decimal.NewFromInt(3), decimal.NewFromInt(2),
		decimal.NewFromInt(5), decimal.NewFromInt(3),
	)

	assert.Equal(t, "prod-1", err.ProductID)
	assert.True(t, err.Remaining.Equal(decimal.NewFromInt(2)))
	assert.Contains(t, err.Error(), "requested 3")
	assert.Contains(t, err.Error(), "only 2 remains")
	assert.Contains(t, err.Error(), "ordered 5")
	assert.Contains(t, err.Error(), "already committed 3")
	require.ErrorIs(t, err, errs.ErrQuantityExceeded)
}

func TestForbiddenStatusError(t *testing.T) {
	err := errs.NewForbiddenStatusError("add line", "Shipped", "Pending", "InPreparation")

	assert.Equal(t, "Shipped", err.CurrentStatus)
	assert.Equal(t, []string{"Pending", "InPreparation"}, err.Allowed)
	assert.Contains(t, err.Error(), "cannot add line while status is Shipped")
	assert.Contains(t, err.Error(), "allowed: Pending, InPreparation")
	require.ErrorIs(t, err, errs.ErrStatusIsForbidden)
}

func TestConflictError(t *testing.T) {
	cause := errors.New("pq: could not serialize access")
	err := errs.NewConflictError(3, cause)

	assert.Equal(t, 3, err.Attempts)
	assert.Contains(t, err.Error(), "gave up after 3 attempts")
	assert.Contains(t, err.Error(), "could not serialize access")
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("id", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("q"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("q", 1, 2, 3), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("q"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewConflictError(1, nil), errs.ErrConflict)
}
