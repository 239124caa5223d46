package api

import (
	"context"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
)

type cartItemAdd struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type cartItemUpdate struct {
	Quantity int `json:"quantity"`
}

// GetCart fetches the user's cart with server-computed totals.
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.get(ctx, "/api/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds a product, or bumps quantity if it is already present.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := c.post(ctx, "/api/cart/items", cartItemAdd{ProductID: productID, Quantity: quantity}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the line quantity. Callers clamp to
// [1, stock_quantity] before calling; the backend rejects anything else.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := c.put(ctx, "/api/cart/items/"+itemID, cartItemUpdate{Quantity: quantity}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID string) error {
	return c.delete(ctx, "/api/cart/items/"+itemID, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.delete(ctx, "/api/cart", nil)
}
