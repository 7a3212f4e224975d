package document_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []document.Status{
		document.Pending, document.InPreparation, document.Shipped,
		document.Delivered, document.Received, document.Cancelled, document.FailedDelivery,
	}
	for _, s := range valid {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	t.Run("unknown_is_invalid", func(t *testing.T) {
		require.Error(t, document.UnknownStatus.Validate())
		require.Error(t, document.Status(99).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", document.Pending.String())
	assert.Equal(t, "InPreparation", document.InPreparation.String())
	assert.Equal(t, "Shipped", document.Shipped.String())
	assert.Equal(t, "FailedDelivery", document.FailedDelivery.String())
	assert.Equal(t, "Unknown", document.Status(99).String())
}

func TestStatus_AllowsLineMutation(t *testing.T) {
	assert.True(t, document.Pending.AllowsLineMutation())
	assert.True(t, document.InPreparation.AllowsLineMutation())
	assert.False(t, document.Shipped.AllowsLineMutation())
	assert.False(t, document.Delivered.AllowsLineMutation())
	assert.False(t, document.Cancelled.AllowsLineMutation())
}

func TestStatus_ValidateLineMutation(t *testing.T) {
	t.Run("allowed_in_mutable_statuses", func(t *testing.T) {
		require.NoError(t, document.Pending.ValidateLineMutation("add line"))
		require.NoError(t, document.InPreparation.ValidateLineMutation("add line"))
	})

	t.Run("forbidden_outside_mutable_set_names_status_and_allowed", func(t *testing.T) {
		err := document.Shipped.ValidateLineMutation("add line")

		require.ErrorIs(t, err, errs.ErrStatusIsForbidden)
		var forbidden *errs.ForbiddenStatusError
		require.ErrorAs(t, err, &forbidden)
		assert.Equal(t, "Shipped", forbidden.CurrentStatus)
		assert.Equal(t, []string{"Pending", "InPreparation"}, forbidden.Allowed)
	})
}

func TestStatus_Ship(t *testing.T) {
	t.Run("pending_ships", func(t *testing.T) {
		s, err := document.Pending.Ship()
		require.NoError(t, err)
		assert.Equal(t, document.Shipped, s)
	})

	t.Run("in_preparation_ships", func(t *testing.T) {
		s, err := document.InPreparation.Ship()
		require.NoError(t, err)
		assert.Equal(t, document.Shipped, s)
	})

	t.Run("shipped_cannot_ship_again", func(t *testing.T) {
		_, err := document.Shipped.Ship()
		require.ErrorIs(t, err, errs.ErrStatusIsForbidden)
	})

	t.Run("terminal_states_cannot_ship", func(t *testing.T) {
		for _, s := range []document.Status{
			document.Delivered, document.Received, document.Cancelled, document.FailedDelivery,
		} {
			_, err := s.Ship()
			require.ErrorIs(t, err, errs.ErrStatusIsForbidden, s.String())
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("shipped_delivery_completes_to_delivered", func(t *testing.T) {
		s, err := document.Shipped.Complete(document.Delivery)
		require.NoError(t, err)
		assert.Equal(t, document.Delivered, s)
	})

	t.Run("shipped_transfer_completes_to_received", func(t *testing.T) {
		s, err := document.Shipped.Complete(document.StockTransfer)
		require.NoError(t, err)
		assert.Equal(t, document.Received, s)
	})

	t.Run("pending_cannot_complete", func(t *testing.T) {
		_, err := document.Pending.Complete(document.Delivery)
		require.ErrorIs(t, err, errs.ErrStatusIsForbidden)
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("non_terminal_states_cancel", func(t *testing.T) {
		for _, s := range []document.Status{
			document.Pending, document.InPreparation, document.Shipped,
		} {
			got, err := s.Cancel()
			require.NoError(t, err, s.String())
			assert.Equal(t, document.Cancelled, got)
		}
	})

	t.Run("terminal_states_cannot_cancel", func(t *testing.T) {
		for _, s := range []document.Status{
			document.Delivered, document.Received, document.Cancelled, document.FailedDelivery,
		} {
			_, err := s.Cancel()
			require.ErrorIs(t, err, errs.ErrStatusIsForbidden, s.String())
		}
	})
}

func TestStatus_FailDelivery(t *testing.T) {
	t.Run("shipped_delivery_can_fail", func(t *testing.T) {
		s, err := document.Shipped.FailDelivery(document.Delivery)
		require.NoError(t, err)
		assert.Equal(t, document.FailedDelivery, s)
	})

	t.Run("transfer_cannot_fail_delivery", func(t *testing.T) {
		_, err := document.Shipped.FailDelivery(document.StockTransfer)
		require.Error(t, err)
	})

	t.Run("pending_delivery_cannot_fail", func(t *testing.T) {
		_, err := document.Pending.FailDelivery(document.Delivery)
		require.ErrorIs(t, err, errs.ErrStatusIsForbidden)
	})
}

func TestStatus_StartPreparation(t *testing.T) {
	s, err := document.Pending.StartPreparation()
	require.NoError(t, err)
	assert.Equal(t, document.InPreparation, s)

	_, err = document.Shipped.StartPreparation()
	require.ErrorIs(t, err, errs.ErrStatusIsForbidden)
}

func TestKind(t *testing.T) {
	t.Run("prefixes", func(t *testing.T) {
		assert.Equal(t, "DLV", document.Delivery.NumberPrefix())
		assert.Equal(t, "TRF", document.StockTransfer.NumberPrefix())
		assert.Equal(t, "RTN", document.SupplierReturn.NumberPrefix())
	})

	t.Run("multi_step", func(t *testing.T) {
		assert.False(t, document.Delivery.IsMultiStep())
		assert.True(t, document.StockTransfer.IsMultiStep())
		assert.True(t, document.SupplierReturn.IsMultiStep())
	})

	t.Run("from_string", func(t *testing.T) {
		k, err := document.KindFromString("Delivery")
		require.NoError(t, err)
		assert.Equal(t, document.Delivery, k)

		_, err = document.KindFromString("Invoice")
		require.Error(t, err)
	})

	t.Run("completed_status", func(t *testing.T) {
		assert.Equal(t, document.Delivered, document.Delivery.CompletedStatus())
		assert.Equal(t, document.Received, document.SupplierReturn.CompletedStatus())
	})

	t.Run("validate", func(t *testing.T) {
		require.NoError(t, document.Delivery.Validate())
		require.Error(t, document.UnknownKind.Validate())
	})
}
