package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentHandler(f *fixture) *PaymentHandler {
	return &PaymentHandler{
		API:               f.api,
		Sessions:          f.sessions,
		Templates:         f.templates,
		PaystackPublicKey: "pk_test_abc",
	}
}

func orderJSON(status, paymentStatus string) string {
	return `{
		"id": "o1",
		"user_id": "u1",
		"total_amount": "12.50",
		"status": "` + status + `",
		"payment_status": "` + paymentStatus + `",
		"payment_method": "momo_mtn",
		"shipping_address": {"full_name": "Ama Mensah", "phone": "0241234567", "address_line1": "12 Ring Rd", "city": "Accra", "region": "Greater Accra"},
		"items": []
	}`
}

func TestPaymentPageRendersPopupData(t *testing.T) {
	f := newFixture(t)
	f.backend.respond("GET /api/orders/o1", 200, orderJSON("pending", "pending"))
	f.backend.respond("POST /api/payments/initialize/o1", 200,
		`{"authorization_url":"https://checkout.paystack.com/x","access_code":"ac_1","reference":"ref-777"}`)
	cookie := f.signIn(t, testUser(), "tok")

	h := newPaymentHandler(f)
	r := httptest.NewRequest(http.MethodGet, "/payment/o1", nil)
	r.SetPathValue("id", "o1")
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.Page(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "1250", "GHS 12.50 becomes 1250 pesewas")
	assert.Contains(t, body, "ref-777")
	assert.Contains(t, body, "pk_test_abc")
	assert.Contains(t, body, "/payment/verify/ref-777")
}

func TestPaymentPageSkipsAlreadyPaidOrders(t *testing.T) {
	f := newFixture(t)
	f.backend.respond("GET /api/orders/o1", 200, orderJSON("processing", "completed"))
	cookie := f.signIn(t, testUser(), "tok")

	h := newPaymentHandler(f)
	r := httptest.NewRequest(http.MethodGet, "/payment/o1", nil)
	r.SetPathValue("id", "o1")
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.Page(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/orders/o1", w.Header().Get("Location"))
	assert.Zero(t, f.backend.count("POST /api/payments/initialize/o1"),
		"no payment session for an order that needs none")
}

func TestVerifySuccessRendersDelayedRedirect(t *testing.T) {
	f := newFixture(t)
	f.backend.respond("GET /api/payments/verify/ref-777", 200,
		`{"status":"success","message":"Payment verified","reference":"ref-777","amount":"12.50","order_id":"o1"}`)
	cookie := f.signIn(t, testUser(), "tok")

	h := newPaymentHandler(f)
	r := httptest.NewRequest(http.MethodGet, "/payment/verify/ref-777?order=o1", nil)
	r.SetPathValue("reference", "ref-777")
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.Verify(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `content="3;url=/orders/o1"`,
		"confirmation hands off to the order detail after a fixed delay")
}

func TestVerifyFailureOffersRetry(t *testing.T) {
	f := newFixture(t)
	f.backend.respond("GET /api/payments/verify/ref-777", 200,
		`{"status":"failed","message":"Transaction declined","reference":"ref-777"}`)
	cookie := f.signIn(t, testUser(), "tok")

	h := newPaymentHandler(f)
	r := httptest.NewRequest(http.MethodGet, "/payment/verify/ref-777?order=o1", nil)
	r.SetPathValue("reference", "ref-777")
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.Verify(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Transaction declined")
	assert.Contains(t, body, "/payment/o1", "the failure page links back to a retry")
}
