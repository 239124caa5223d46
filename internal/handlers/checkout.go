package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/cache"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
)

var paymentMethods = []struct {
	Value string
	Label string
}{
	{models.MethodMomoMTN, "MTN Mobile Money"},
	{models.MethodMomoVodafone, "Telecel Cash"},
	{models.MethodMomoAirtelTigo, "AirtelTigo Money"},
	{models.MethodCard, "Debit / Credit Card"},
}

type CheckoutHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	Cache     *cache.Cache
}

func (h *CheckoutHandler) client(r *http.Request) *api.Client {
	return h.API.WithToken(h.Sessions.Token(r))
}

// Form shows the shipping address form with the cart summary. An empty cart
// cannot be checked out.
func (h *CheckoutHandler) Form(w http.ResponseWriter, r *http.Request) {
	cart, err := h.client(r).GetCart(r.Context())
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/cart")
		return
	}
	if len(cart.Items) == 0 {
		h.Sessions.AddFlash(w, r, "error", "Your cart is empty.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	render(h.Templates, h.Sessions, w, r, "checkout.html", map[string]interface{}{
		"Cart":           cart,
		"Subtotal":       cart.TotalPrice,
		"ShippingTotal":  cart.ShippingTotal(),
		"GrandTotal":     cart.GrandTotal(),
		"PaymentMethods": paymentMethods,
	})
}

// Submit is phase one of checkout: turn the cart into an order, then hand
// off to the payment page keyed by the new order id.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	address := models.ShippingAddress{
		FullName:     strings.TrimSpace(r.FormValue("full_name")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
		AddressLine1: strings.TrimSpace(r.FormValue("address_line1")),
		AddressLine2: strings.TrimSpace(r.FormValue("address_line2")),
		City:         strings.TrimSpace(r.FormValue("city")),
		Region:       strings.TrimSpace(r.FormValue("region")),
		PostalCode:   strings.TrimSpace(r.FormValue("postal_code")),
	}
	method := r.FormValue("payment_method")

	if msg := validateCheckout(address, method); msg != "" {
		h.Sessions.AddFlash(w, r, "error", msg)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	order, err := h.client(r).CreateOrder(r.Context(), address, method)
	if err != nil {
		var ve *api.ValidationError
		if errors.As(err, &ve) {
			for _, msg := range ve.Fields {
				h.Sessions.AddFlash(w, r, "error", msg)
			}
			http.Redirect(w, r, "/checkout", http.StatusSeeOther)
			return
		}
		failRedirect(w, r, h.Sessions, err, "/checkout")
		return
	}

	// The backend emptied the cart when it snapshotted the order.
	if user := h.Sessions.CurrentUser(r); user != nil {
		h.Cache.Invalidate(cartKey(user.ID))
	}
	h.Sessions.SetCartCount(w, r, 0)

	http.Redirect(w, r, "/payment/"+order.ID, http.StatusSeeOther)
}

func validateCheckout(address models.ShippingAddress, method string) string {
	switch {
	case address.FullName == "":
		return "Recipient name is required."
	case address.Phone == "":
		return "A contact phone number is required."
	case address.AddressLine1 == "":
		return "Delivery address is required."
	case address.City == "":
		return "City is required."
	case address.Region == "":
		return "Region is required."
	}
	for _, m := range paymentMethods {
		if method == m.Value {
			return ""
		}
	}
	return "Please choose a payment method."
}
