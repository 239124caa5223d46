package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
)

type orderCreate struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

// OrderPage is the backend's order list envelope.
type OrderPage struct {
	Orders  []models.Order `json:"orders"`
	Total   int            `json:"total"`
	Skip    int            `json:"skip"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"has_more"`
}

// CreateOrder snapshots the current cart into an order. The backend empties
// the cart as part of this call.
func (c *Client) CreateOrder(ctx context.Context, address models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, "/api/orders", orderCreate{ShippingAddress: address, PaymentMethod: paymentMethod}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, skip, limit int) (*OrderPage, error) {
	q := url.Values{}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var page OrderPage
	if err := c.get(ctx, "/api/orders", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, "/api/orders/"+id, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
