package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order fulfillment statuses as the backend reports them.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment methods supported at checkout.
const (
	MethodMomoMTN        = "momo_mtn"
	MethodMomoVodafone   = "momo_vodafone"
	MethodMomoAirtelTigo = "momo_airteltigo"
	MethodCard           = "card"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Product mirrors the catalog entry owned by the backend. Price and
// ShippingCost arrive as either JSON numbers or numeric strings depending
// on the backend's serializer; decimal.Decimal accepts both.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURLs     []string        `json:"image_urls"`
	VideoURL      string          `json:"video_url,omitempty"`
	IsActive      bool            `json:"is_active"`
	TrendingScore int             `json:"trending_score,omitempty"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InStock reports whether any units are purchasable. The backend is the
// final authority; this only reflects the last fetched copy.
func (p Product) InStock() bool {
	return p.IsActive && p.StockQuantity > 0
}

// MainImage returns the first image URL, or empty if none.
func (p Product) MainImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}

type CartItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   Product   `json:"product"`
	CreatedAt time.Time `json:"created_at"`
}

// Subtotal is unit price times quantity for the line.
func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// Cart is the server-held collection of items with server-computed totals.
type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ShippingTotal sums the per-item shipping cost. Each line contributes its
// product's shipping cost once; shipping is never a flat fee.
func (c Cart) ShippingTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Product.ShippingCost)
	}
	return total
}

// GrandTotal is the server-computed item total plus per-item shipping.
func (c Cart) GrandTotal() decimal.Decimal {
	return c.TotalPrice.Add(c.ShippingTotal())
}

type ShippingAddress struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code,omitempty"`
}

type OrderItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
	Product     *Product        `json:"product,omitempty"`
}

// Order is an immutable snapshot of a cart at purchase time.
type Order struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           string          `json:"status"`
	PaymentStatus    string          `json:"payment_status"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	ShippingAddress  ShippingAddress `json:"shipping_address"`
	Items            []OrderItem     `json:"items"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AmountPesewas converts the order total to the smallest currency unit,
// which is what the payment popup expects (GHS 12.50 -> 1250).
func (o Order) AmountPesewas() int64 {
	return o.TotalAmount.Mul(decimal.NewFromInt(100)).IntPart()
}

// AwaitingPayment reports whether the order still needs a payment attempt.
func (o Order) AwaitingPayment() bool {
	return o.PaymentStatus != PaymentCompleted && o.Status != OrderCancelled
}

// PaymentSession is the ephemeral reference/authorization pair issued by
// the backend when a payment is initialized.
type PaymentSession struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// PaymentVerification is the backend's answer to a verify call.
type PaymentVerification struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount,omitempty"`
	OrderID   string          `json:"order_id,omitempty"`
}

func (v PaymentVerification) Succeeded() bool {
	return v.Status == "success"
}

// AuthToken is the login/signup response: bearer token plus the user it
// belongs to.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
