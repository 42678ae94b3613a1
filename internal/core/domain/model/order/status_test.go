package order_test

import (
	"testing"

	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_StringAndParse(t *testing.T) {
	for _, s := range []order.Status{
		order.Draft, order.Pending, order.Accepted, order.Delivered, order.Completed, order.Cancelled,
	} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
		require.NoError(t, s.Validate())
	}

	_, err := order.ParseStatus("SHIPPED")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
	require.Error(t, order.Unknown.Validate())
}

func TestStatus_Transitions(t *testing.T) {
	testCases := []struct {
		name     string
		from     order.Status
		apply    func(order.Status) (order.Status, error)
		expected order.Status
		ok       bool
	}{
		{"accept pending", order.Pending, order.Status.Accept, order.Accepted, true},
		{"accept draft", order.Draft, order.Status.Accept, order.Unknown, false},
		{"deliver accepted", order.Accepted, order.Status.Deliver, order.Delivered, true},
		{"deliver pending", order.Pending, order.Status.Deliver, order.Unknown, false},
		{"complete delivered", order.Delivered, order.Status.Complete, order.Completed, true},
		{"complete accepted", order.Accepted, order.Status.Complete, order.Unknown, false},
		{"cancel delivered", order.Delivered, order.Status.Cancel, order.Cancelled, true},
		{"cancel completed", order.Completed, order.Status.Cancel, order.Unknown, false},
		{"cancel cancelled", order.Cancelled, order.Status.Cancel, order.Unknown, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.apply(tc.from)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, got)
				return
			}
			require.ErrorIs(t, err, errs.ErrInvalidState)
		})
	}
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Delivered.IsTerminal())

	assert.True(t, order.Draft.IsEditable())
	assert.True(t, order.Pending.IsEditable())
	assert.False(t, order.Accepted.IsEditable())

	assert.True(t, order.Accepted.IsNegotiable())
	assert.False(t, order.Delivered.IsNegotiable())

	require.NoError(t, order.Cancelled.ValidateCanHavePicker(true))
	require.NoError(t, order.Cancelled.ValidateCanHavePicker(false))
	require.Error(t, order.Pending.ValidateCanHavePicker(true))
	require.Error(t, order.Completed.ValidateCanHavePicker(false))
}
