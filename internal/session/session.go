package session

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "bodyaura-session"

	keyToken     = "token"
	keyUser      = "user"
	keyCartCount = "cart_count"
	keyChatID    = "chat_id"
)

// Register types for gob encoding (used by sessions)
func init() {
	gob.Register(FlashMessage{})
	gob.Register(models.User{})
}

// FlashMessage structure
type FlashMessage struct {
	Type    string
	Message string
}

// Manager owns the two persisted client-side entries, bearer token and
// cached user, plus the cart badge count and flash messages. Everything
// else is server-authoritative and re-fetched on demand.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(key []byte, secure bool, domain string) *Manager {
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	if domain != "" {
		store.Options.Domain = domain
	}
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	// Get never fails fatally for cookie stores; a bad cookie yields a
	// fresh session, which is the behavior we want.
	s, _ := m.store.Get(r, sessionName)
	return s
}

// Token returns the stored bearer token, or empty when signed out.
func (m *Manager) Token(r *http.Request) string {
	if t, ok := m.get(r).Values[keyToken].(string); ok {
		return t
	}
	return ""
}

// CurrentUser returns the cached user record, or nil.
func (m *Manager) CurrentUser(r *http.Request) *models.User {
	if u, ok := m.get(r).Values[keyUser].(models.User); ok {
		return &u
	}
	return nil
}

// SignIn stores the token and user after a successful login or signup.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, token string, user models.User) error {
	s := m.get(r)
	s.Values[keyToken] = token
	s.Values[keyUser] = user
	return s.Save(r, w)
}

// SignOut clears all session state. Used by logout and by the 401 policy.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) {
	s := m.get(r)
	s.Values = make(map[any]any)
	s.Options.MaxAge = -1 // Expire immediately
	if err := s.Save(r, w); err != nil {
		slog.Error("Failed to clear session", "error", err)
	}
}

// CartCount returns the cart badge count. It is an optimistic local value;
// the next authoritative cart fetch reconciles it.
func (m *Manager) CartCount(r *http.Request) int {
	if n, ok := m.get(r).Values[keyCartCount].(int); ok {
		return n
	}
	return 0
}

func (m *Manager) SetCartCount(w http.ResponseWriter, r *http.Request, n int) {
	if n < 0 {
		n = 0
	}
	s := m.get(r)
	s.Values[keyCartCount] = n
	if err := s.Save(r, w); err != nil {
		slog.Error("Failed to save cart count", "error", err)
	}
}

// AdjustCartCount applies an optimistic delta to the badge, clamped at zero.
func (m *Manager) AdjustCartCount(w http.ResponseWriter, r *http.Request, delta int) {
	m.SetCartCount(w, r, m.CartCount(r)+delta)
}

// ChatID returns the per-session chat identifier, creating it on first use
// with newID.
func (m *Manager) ChatID(w http.ResponseWriter, r *http.Request, newID func() string) string {
	s := m.get(r)
	if id, ok := s.Values[keyChatID].(string); ok && id != "" {
		return id
	}
	id := newID()
	s.Values[keyChatID] = id
	if err := s.Save(r, w); err != nil {
		slog.Error("Failed to save chat session id", "error", err)
	}
	return id
}

// AddFlash queues a one-shot notification for the next rendered page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	s := m.get(r)
	s.AddFlash(FlashMessage{Type: kind, Message: message})
	if err := s.Save(r, w); err != nil {
		slog.Error("Failed to save flash", "error", err)
	}
}

// Flashes drains queued notifications. Saving the session is what clears
// them, so the caller must pass the live writer.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []FlashMessage {
	s := m.get(r)
	raw := s.Flashes()
	if err := s.Save(r, w); err != nil {
		slog.Error("Failed to save session after draining flashes", "error", err)
	}
	var messages []FlashMessage
	for _, f := range raw {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}
