package handlers

import (
	"net/http"
	"strconv"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
)

var orderStatuses = []string{
	models.OrderPending,
	models.OrderProcessing,
	models.OrderShipped,
	models.OrderDelivered,
	models.OrderCancelled,
}

var paymentStatuses = []string{
	models.PaymentPending,
	models.PaymentCompleted,
	models.PaymentFailed,
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10 // Default limit
	}

	orders, err := h.client(r).AdminListOrders(r.Context(), (page-1)*limit, limit)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/admin")
		return
	}

	totalPages := (orders.Total + limit - 1) / limit
	if totalPages == 0 { // Handle case with no orders
		totalPages = 1
	}

	render(h.Templates, h.Sessions, w, r, "admin_orders.html", map[string]interface{}{
		"Orders":          orders.Orders,
		"OrderStatuses":   orderStatuses,
		"PaymentStatuses": paymentStatuses,
		"CurrentPage":     page,
		"TotalPages":      totalPages,
		"Limit":           limit,
	})
}

// UpdateOrder submits whichever of {status, payment_status} the admin
// changed; untouched fields are omitted from the payload entirely.
func (h *AdminHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	if id == "" {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var update api.OrderStatusUpdate
	if s := r.FormValue("status"); validStatus(s, orderStatuses) {
		update.Status = &s
	}
	if p := r.FormValue("payment_status"); validStatus(p, paymentStatuses) {
		update.PaymentStatus = &p
	}
	if update.Status == nil && update.PaymentStatus == nil {
		h.Sessions.AddFlash(w, r, "error", "Nothing to update.")
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	if _, err := h.client(r).AdminUpdateOrder(r.Context(), id, update); err != nil {
		failRedirect(w, r, h.Sessions, err, "/admin/orders")
		return
	}

	h.Sessions.AddFlash(w, r, "success", "Order updated!")
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

func validStatus(value string, allowed []string) bool {
	for _, s := range allowed {
		if value == s {
			return true
		}
	}
	return false
}
