package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/cache"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
)

type CartHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	Cache     *cache.Cache
}

func cartKey(userID string) string {
	return cache.Key("cart", userID)
}

func (h *CartHandler) client(r *http.Request) *api.Client {
	return h.API.WithToken(h.Sessions.Token(r))
}

// fetchCart reads the cart through the query cache.
func (h *CartHandler) fetchCart(r *http.Request) (*models.Cart, error) {
	user := h.Sessions.CurrentUser(r)
	if user == nil {
		return nil, api.ErrUnauthorized
	}
	v, err := h.Cache.Fetch(cartKey(user.ID), func() (any, error) {
		return h.client(r).GetCart(r.Context())
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Cart), nil
}

// invalidateCart marks the cached cart stale so the next read re-fetches
// consistent totals.
func (h *CartHandler) invalidateCart(r *http.Request) {
	if user := h.Sessions.CurrentUser(r); user != nil {
		h.Cache.Invalidate(cartKey(user.ID))
	}
}

// View renders the cart and reconciles the optimistic badge count against
// the authoritative total.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	cart, err := h.fetchCart(r)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/")
		return
	}
	h.Sessions.SetCartCount(w, r, cart.TotalItems)

	render(h.Templates, h.Sessions, w, r, "cart.html", map[string]interface{}{
		"Cart":          cart,
		"Subtotal":      cart.TotalPrice,
		"ShippingTotal": cart.ShippingTotal(),
		"GrandTotal":    cart.GrandTotal(),
	})
}

// Add puts a product in the cart. Quantity comes from a free-text field and
// is clamped the same way as updates.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID := r.FormValue("product_id")
	if productID == "" {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.client(r).GetProduct(r.Context(), productID)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/")
		return
	}
	if !product.InStock() {
		h.Sessions.AddFlash(w, r, "error", product.Name+" is out of stock.")
		http.Redirect(w, r, backTo(r, "/"), http.StatusSeeOther)
		return
	}

	quantity := parseQuantity(r.FormValue("quantity"), product.StockQuantity)

	if _, err := h.client(r).AddCartItem(r.Context(), productID, quantity); err != nil {
		failRedirect(w, r, h.Sessions, err, backTo(r, "/"))
		return
	}

	h.invalidateCart(r)
	h.Sessions.AdjustCartCount(w, r, quantity)
	h.Sessions.AddFlash(w, r, "success", product.Name+" added to cart.")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Update changes a line quantity. Increments and decrements that would
// leave [1, stock_quantity] are rejected locally; no request is sent.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID := r.FormValue("item_id")
	cart, err := h.fetchCart(r)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/cart")
		return
	}

	item := findItem(cart, itemID)
	if item == nil {
		h.Sessions.AddFlash(w, r, "error", "That item is no longer in your cart.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	stock := item.Product.StockQuantity

	var next int
	switch r.FormValue("action") {
	case "increment":
		next = item.Quantity + 1
		if next > stock {
			h.Sessions.AddFlash(w, r, "error", fmt.Sprintf("Only %d of %s in stock.", stock, item.Product.Name))
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
	case "decrement":
		next = item.Quantity - 1
		if next < 1 {
			// Quantity never goes below one; removal is a separate action.
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
	default:
		next = parseQuantity(r.FormValue("quantity"), stock)
	}

	if next == item.Quantity {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if _, err := h.client(r).UpdateCartItem(r.Context(), itemID, next); err != nil {
		failRedirect(w, r, h.Sessions, err, "/cart")
		return
	}

	h.invalidateCart(r)
	h.Sessions.AdjustCartCount(w, r, next-item.Quantity)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Remove deletes a line item, optimistically decrementing the badge ahead
// of the next authoritative fetch.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	itemID := r.FormValue("item_id")

	var removedQty int
	if cart, err := h.fetchCart(r); err == nil {
		if item := findItem(cart, itemID); item != nil {
			removedQty = item.Quantity
		}
	}

	if err := h.client(r).RemoveCartItem(r.Context(), itemID); err != nil {
		failRedirect(w, r, h.Sessions, err, "/cart")
		return
	}

	h.invalidateCart(r)
	h.Sessions.AdjustCartCount(w, r, -removedQty)
	h.Sessions.AddFlash(w, r, "success", "Item removed from cart.")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Clear empties the cart and zeroes the badge.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.client(r).ClearCart(r.Context()); err != nil {
		failRedirect(w, r, h.Sessions, err, "/cart")
		return
	}

	h.invalidateCart(r)
	h.Sessions.SetCartCount(w, r, 0)
	h.Sessions.AddFlash(w, r, "success", "Cart cleared.")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func findItem(cart *models.Cart, itemID string) *models.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}

// parseQuantity turns free-text quantity input into a valid count:
// defaulted to 1 on parse failure and clamped to [1, stock].
func parseQuantity(raw string, stock int) int {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		q = 1
	}
	if q < 1 {
		q = 1
	}
	if stock > 0 && q > stock {
		q = stock
	}
	return q
}

// backTo returns the referring page, or fallback when absent, for flows
// that should land the user where they started.
func backTo(r *http.Request, fallback string) string {
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return fallback
}
