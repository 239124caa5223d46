package handlers

import (
	"net/http"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
)

// paymentRedirectDelaySeconds is how long the confirmation page is shown
// before navigating to the order detail.
const paymentRedirectDelaySeconds = 3

type PaymentHandler struct {
	API               *api.Client
	Sessions          *session.Manager
	Templates         *TemplateCache
	PaystackPublicKey string
}

func (h *PaymentHandler) client(r *http.Request) *api.Client {
	return h.API.WithToken(h.Sessions.Token(r))
}

// Page is phase two of checkout: load the order, initialize a payment
// session, and render the Paystack inline popup with the amount in pesewas
// and the server-issued reference. The popup's callback routes to the
// verification page; this handler owns no payment state of its own.
func (h *PaymentHandler) Page(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := h.client(r).GetOrder(r.Context(), orderID)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/orders")
		return
	}
	if !order.AwaitingPayment() {
		http.Redirect(w, r, "/orders/"+order.ID, http.StatusSeeOther)
		return
	}

	payment, err := h.client(r).InitializePayment(r.Context(), orderID)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/orders/"+order.ID)
		return
	}

	user := h.Sessions.CurrentUser(r)
	email := ""
	if user != nil {
		email = user.Email
	}

	render(h.Templates, h.Sessions, w, r, "payment.html", map[string]interface{}{
		"Order":         order,
		"AmountPesewas": order.AmountPesewas(),
		"Reference":     payment.Reference,
		"PublicKey":     h.PaystackPublicKey,
		"Email":         email,
		"CallbackURL":   "/payment/verify/" + payment.Reference + "?order=" + order.ID,
	})
}

// Verify asks the backend to confirm the payment with the provider. Success
// renders a confirmation that navigates to the order detail after a fixed
// delay; failure shows a retry affordance. No polling, no local timers:
// the single verification request decides.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")
	if reference == "" {
		http.Error(w, "Invalid payment reference", http.StatusBadRequest)
		return
	}
	orderID := r.URL.Query().Get("order")

	verification, err := h.client(r).VerifyPayment(r.Context(), reference)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/orders")
		return
	}

	if !verification.Succeeded() {
		render(h.Templates, h.Sessions, w, r, "payment_failed.html", map[string]interface{}{
			"Reference": reference,
			"Message":   verification.Message,
			"OrderID":   orderID,
		})
		return
	}

	if verification.OrderID != "" {
		orderID = verification.OrderID
	}
	render(h.Templates, h.Sessions, w, r, "payment_success.html", map[string]interface{}{
		"Reference":    reference,
		"Amount":       verification.Amount,
		"OrderID":      orderID,
		"RedirectURL":  "/orders/" + orderID,
		"DelaySeconds": paymentRedirectDelaySeconds,
	})
}
