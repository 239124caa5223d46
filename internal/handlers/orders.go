package handlers

import (
	"net/http"
	"strconv"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
)

const ordersPageSize = 10

type OrderHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

func (h *OrderHandler) client(r *http.Request) *api.Client {
	return h.API.WithToken(h.Sessions.Token(r))
}

// List shows the signed-in user's order history.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	orders, err := h.client(r).ListOrders(r.Context(), (page-1)*ordersPageSize, ordersPageSize)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/")
		return
	}

	totalPages := (orders.Total + ordersPageSize - 1) / ordersPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	render(h.Templates, h.Sessions, w, r, "orders.html", map[string]interface{}{
		"Orders":      orders.Orders,
		"CurrentPage": page,
		"TotalPages":  totalPages,
	})
}

// Detail shows one order snapshot with its fulfillment and payment status.
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := h.client(r).GetOrder(r.Context(), id)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/orders")
		return
	}

	render(h.Templates, h.Sessions, w, r, "order_detail.html", map[string]interface{}{
		"Order": order,
	})
}
