package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/cache"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
	"github.com/stretchr/testify/require"
)

// fakeBackend stands in for the REST API. Responses are registered per
// "METHOD /path" route, and every request is counted so tests can assert
// which calls did (and did not) go out.
type fakeBackend struct {
	srv      *httptest.Server
	mu       sync.Mutex
	hits     map[string]int
	bodies   map[string]string
	statuses map[string]int
	payloads map[string]string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	b := &fakeBackend{
		hits:     map[string]int{},
		bodies:   map[string]string{},
		statuses: map[string]int{},
		payloads: map[string]string{},
	}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)

		b.mu.Lock()
		b.hits[route]++
		b.bodies[route] = string(body)
		status, ok := b.statuses[route]
		payload := b.payloads[route]
		b.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not found"}`))
			return
		}
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) respond(route string, status int, payload string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses[route] = status
	b.payloads[route] = payload
}

func (b *fakeBackend) count(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

func (b *fakeBackend) lastBody(route string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[route]
}

// fixture wires the dependency set every handler needs against a fake
// backend and the real template directory.
type fixture struct {
	backend   *fakeBackend
	api       *api.Client
	sessions  *session.Manager
	templates *TemplateCache
	cache     *cache.Cache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tc := NewTemplateCache()
	require.NoError(t, tc.Load("../../templates"))

	b := newFakeBackend(t)
	return &fixture{
		backend:   b,
		api:       api.New(b.srv.URL, time.Second),
		sessions:  session.NewManager([]byte("0123456789abcdef0123456789abcdef"), false, ""),
		templates: tc,
		cache:     cache.New(time.Minute),
	}
}

func testUser() models.User {
	return models.User{ID: "u1", Email: "ama@example.com", FullName: "Ama Mensah"}
}

func adminUser() models.User {
	return models.User{ID: "a1", Email: "admin@example.com", FullName: "Admin", IsAdmin: true}
}

// signIn produces the session cookie of a signed-in user for attaching to
// test requests.
func (f *fixture) signIn(t *testing.T, user models.User, token string) *http.Cookie {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	require.NoError(t, f.sessions.SignIn(w, r, token, user))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[len(cookies)-1]
}

// lastCookie returns the most recent session cookie written to w, or nil.
func lastCookie(w *httptest.ResponseRecorder) *http.Cookie {
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		return nil
	}
	return cookies[len(cookies)-1]
}

// followUp builds a request carrying the session state w left behind, so
// tests can inspect flashes, the badge count, or the token after a handler
// ran.
func followUp(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if c := lastCookie(w); c != nil {
		r.AddCookie(c)
	}
	return r
}

// flashes drains the notifications queued during the handler under test.
func (f *fixture) flashes(w *httptest.ResponseRecorder) []session.FlashMessage {
	return f.sessions.Flashes(httptest.NewRecorder(), followUp(w))
}
