package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPriceDecodesStringOrNumber(t *testing.T) {
	var fromString, fromNumber Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","name":"Shea Butter","price":"24.99"}`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","name":"Shea Butter","price":24.99}`), &fromNumber))

	assert.True(t, fromString.Price.Equal(fromNumber.Price),
		"string and number prices must decode to the same value")
	assert.Equal(t, "24.99", fromString.Price.StringFixed(2))
}

func TestProductInStock(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{"active with stock", Product{IsActive: true, StockQuantity: 3}, true},
		{"active without stock", Product{IsActive: true, StockQuantity: 0}, false},
		{"inactive with stock", Product{IsActive: false, StockQuantity: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.InStock())
		})
	}
}

func TestProductMainImage(t *testing.T) {
	assert.Equal(t, "", Product{}.MainImage())
	p := Product{ImageURLs: []string{"/static/uploads/a.jpg", "/static/uploads/b.jpg"}}
	assert.Equal(t, "/static/uploads/a.jpg", p.MainImage())
}

func TestCartTotals(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{
				Quantity: 2,
				Product: Product{
					Price:        decimal.RequireFromString("10.00"),
					ShippingCost: decimal.RequireFromString("10"),
				},
			},
			{
				Quantity: 1,
				Product: Product{
					Price:        decimal.RequireFromString("5.50"),
					ShippingCost: decimal.Zero,
				},
			},
		},
		TotalItems: 3,
		TotalPrice: decimal.RequireFromString("25.50"),
	}

	assert.Equal(t, "25.50", cart.Items[0].Subtotal().Add(cart.Items[1].Subtotal()).StringFixed(2))
	assert.Equal(t, "10.00", cart.ShippingTotal().StringFixed(2),
		"shipping is summed per line, free lines add nothing")
	assert.Equal(t, "35.50", cart.GrandTotal().StringFixed(2))
}

func TestOrderAmountPesewas(t *testing.T) {
	order := Order{TotalAmount: decimal.RequireFromString("12.50")}
	assert.Equal(t, int64(1250), order.AmountPesewas())

	order.TotalAmount = decimal.RequireFromString("0.01")
	assert.Equal(t, int64(1), order.AmountPesewas())
}

func TestOrderAwaitingPayment(t *testing.T) {
	assert.True(t, Order{Status: OrderPending, PaymentStatus: PaymentPending}.AwaitingPayment())
	assert.True(t, Order{Status: OrderPending, PaymentStatus: PaymentFailed}.AwaitingPayment())
	assert.False(t, Order{Status: OrderPending, PaymentStatus: PaymentCompleted}.AwaitingPayment())
	assert.False(t, Order{Status: OrderCancelled, PaymentStatus: PaymentPending}.AwaitingPayment())
}

func TestPaymentVerificationSucceeded(t *testing.T) {
	assert.True(t, PaymentVerification{Status: "success"}.Succeeded())
	assert.False(t, PaymentVerification{Status: "failed"}.Succeeded())
	assert.False(t, PaymentVerification{}.Succeeded())
}
