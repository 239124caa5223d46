package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
)

// OrderStatusUpdate submits a subset of {status, payment_status}; nil
// fields are omitted and left untouched by the backend.
type OrderStatusUpdate struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}

// GetDashboardStats fetches the admin dashboard statistics.
func (c *Client) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.get(ctx, "/api/admin/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminListOrders lists all orders across users.
func (c *Client) AdminListOrders(ctx context.Context, skip, limit int) (*OrderPage, error) {
	q := url.Values{}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var page OrderPage
	if err := c.get(ctx, "/api/admin/orders", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminUpdateOrder changes order and/or payment status.
func (c *Client) AdminUpdateOrder(ctx context.Context, orderID string, update OrderStatusUpdate) (*models.Order, error) {
	var order models.Order
	if err := c.put(ctx, "/api/admin/orders/"+orderID, update, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
