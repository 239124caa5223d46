package models

import "github.com/shopspring/decimal"

// Dashboard statistics as served by GET /api/admin/dashboard.

type SalesTrendPoint struct {
	Date    string          `json:"date"`
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

type TopProduct struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	ImageURL      string          `json:"image_url"`
	Category      string          `json:"category"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

type LowStockProduct struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	StockQuantity int      `json:"stock_quantity"`
	ImageURLs     []string `json:"image_urls"`
	Category      string   `json:"category"`
}

type DashboardStats struct {
	TotalOrders       int               `json:"total_orders"`
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
	PendingOrders     int               `json:"pending_orders"`
	TotalProducts     int               `json:"total_products"`
	LowStockProducts  int               `json:"low_stock_products"`
	TotalUsers        int               `json:"total_users"`
	NewUsersThisMonth int               `json:"new_users_this_month"`
	SalesTrend        []SalesTrendPoint `json:"sales_trend"`
	TopProducts       []TopProduct      `json:"top_products"`
	LowStockDetails   []LowStockProduct `json:"low_stock_details"`
}
