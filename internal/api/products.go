package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
	"github.com/shopspring/decimal"
)

// ProductFilter selects and pages the catalog listing. Zero values are
// omitted from the query.
type ProductFilter struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

func (f ProductFilter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// ProductPage is the backend's list envelope.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
	HasMore  bool             `json:"has_more"`
}

func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	var page ProductPage
	if err := c.get(ctx, "/api/products", filter.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, "/api/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/api/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ProductInput is the full replacement payload for create and update; the
// admin screens always send every field.
type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	ImageURLs     []string        `json:"image_urls"`
	VideoURL      string          `json:"video_url,omitempty"`
	TrendingScore int             `json:"trending_score"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.post(ctx, "/api/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.put(ctx, "/api/products/"+id, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/products/"+id, nil)
}
