package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
	"github.com/google/uuid"
)

// chatHistoryLimit caps the in-memory transcript per session. History is
// never persisted; a restart or new session starts clean.
const chatHistoryLimit = 50

type ChatMessage struct {
	From string // "user" or "bot"
	Text string
	At   time.Time
}

// ChatHandler is the floating support widget. Each message is posted to an
// automation webhook with a random per-session identifier, and the JSON
// response text is shown as the reply.
type ChatHandler struct {
	Sessions   *session.Manager
	Templates  *TemplateCache
	WebhookURL string
	HTTP       *http.Client

	mu      sync.Mutex
	history map[string][]ChatMessage
}

func NewChatHandler(sm *session.Manager, tc *TemplateCache, webhookURL string, timeout time.Duration) *ChatHandler {
	return &ChatHandler{
		Sessions:   sm,
		Templates:  tc,
		WebhookURL: webhookURL,
		HTTP:       &http.Client{Timeout: timeout},
		history:    make(map[string][]ChatMessage),
	}
}

func (h *ChatHandler) chatID(w http.ResponseWriter, r *http.Request) string {
	return h.Sessions.ChatID(w, r, uuid.NewString)
}

// Widget renders the chat page with this session's transcript.
func (h *ChatHandler) Widget(w http.ResponseWriter, r *http.Request) {
	id := h.chatID(w, r)

	h.mu.Lock()
	messages := append([]ChatMessage(nil), h.history[id]...)
	h.mu.Unlock()

	render(h.Templates, h.Sessions, w, r, "chat.html", map[string]interface{}{
		"Messages": messages,
		"Enabled":  h.WebhookURL != "",
	})
}

// Send relays one user message to the webhook and records both sides of
// the exchange.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.FormValue("message"))
	if text == "" {
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}
	id := h.chatID(w, r)

	h.append(id, ChatMessage{From: "user", Text: text, At: time.Now()})

	reply, err := h.askWebhook(r, id, text)
	if err != nil {
		slog.Error("Chat webhook request failed", "error", err)
		reply = "Sorry, support chat is unavailable right now. Please try again later."
	}
	h.append(id, ChatMessage{From: "bot", Text: reply, At: time.Now()})

	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

func (h *ChatHandler) append(id string, msg ChatMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	history := append(h.history[id], msg)
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}
	h.history[id] = history
}

func (h *ChatHandler) askWebhook(r *http.Request, sessionID, message string) (string, error) {
	if h.WebhookURL == "" {
		return "Support chat is not configured.", nil
	}

	payload, err := json.Marshal(map[string]string{
		"session_id": sessionID,
		"message":    message,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var out struct {
		Response string `json:"response"`
		Output   string `json:"output"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.Response != "" {
		return out.Response, nil
	}
	if out.Output != "" {
		return out.Output, nil
	}
	return "Sorry, I didn't catch that. Could you rephrase?", nil
}
