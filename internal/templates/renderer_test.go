package templates

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type paymentView struct {
	OrderID string
	UserID  string
	Amount  decimal.Decimal
}

type deliveryView struct {
	OrderID string
	UserID  string
	Address string
	Item    string
	Message string
}

func TestRenderer_RenderPaymentCompleted(t *testing.T) {
	r, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		amount string
		want   string
	}{
		{"42.50", "Notification: Payment COMPLETED for user u1 on order o1. Amount: 42.50"},
		{"42.5", "Notification: Payment COMPLETED for user u1 on order o1. Amount: 42.50"},
		{"10", "Notification: Payment COMPLETED for user u1 on order o1. Amount: 10.00"},
		{"0.005", "Notification: Payment COMPLETED for user u1 on order o1. Amount: 0.005"},
		{"1.999", "Notification: Payment COMPLETED for user u1 on order o1. Amount: 1.999"},
	}

	for _, tt := range tests {
		text, err := r.RenderPaymentCompleted(paymentView{OrderID: "o1", UserID: "u1", Amount: decimal.RequireFromString(tt.amount)})
		require.NoError(t, err)
		assert.Equal(t, tt.want, text)
	}
}

func TestRenderer_RenderDelivery(t *testing.T) {
	r, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)

	view := deliveryView{OrderID: "o2", UserID: "u2", Address: "12 Elm St", Item: "Pizza", Message: "Enjoy!"}

	ready, err := r.RenderOrderReadyForDelivery(view)
	require.NoError(t, err)
	assert.Equal(t, "Notification: Order o2 is READY FOR DELIVERY for user u2. Address: 12 Elm St. Item: Pizza. Message: Enjoy!", ready)

	delivered, err := r.RenderOrderDelivered(view)
	require.NoError(t, err)
	assert.Equal(t, "Notification: Order o2 is DELIVERED for user u2. Address: 12 Elm St. Item: Pizza. Message: Enjoy!", delivered)
}

func TestRenderer_WrongDataFails(t *testing.T) {
	r, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)

	_, err = r.RenderOrderDelivered(paymentView{OrderID: "o1"})
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"42.5", "42.50"},
		{"100", "100.00"},
		{"1.999", "1.999"},
		{"0.004", "0.004"},
		{"10.125", "10.125"},
		{"-3.1", "-3.10"},
		{"1e3", "1000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)), tt.in)
	}
}
