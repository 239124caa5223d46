package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	f := newFixture(t)
	called := false
	handler := RequireAuth(f.sessions, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, called)
}

func TestRequireAuthPassesSignedIn(t *testing.T) {
	f := newFixture(t)
	cookie := f.signIn(t, testUser(), "tok")

	called := false
	handler := RequireAuth(f.sessions, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.AddCookie(cookie)
	handler(httptest.NewRecorder(), r)
	assert.True(t, called)
}

func TestRequireAdminBlocksRegularUsers(t *testing.T) {
	f := newFixture(t)
	cookie := f.signIn(t, testUser(), "tok")

	called := false
	handler := RequireAdmin(f.sessions, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.False(t, called)
}

func TestRequireAdminPassesAdmins(t *testing.T) {
	f := newFixture(t)
	cookie := f.signIn(t, adminUser(), "tok")

	called := false
	handler := RequireAdmin(f.sessions, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(cookie)
	handler(httptest.NewRecorder(), r)
	assert.True(t, called)
}

func TestRateLimiterBlocksRapidRepeats(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	handler := rl.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	first := httptest.NewRecorder()
	handler(first, r)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler(second, r)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "js.paystack.co",
		"the payment popup script must be allowed to load")
}
