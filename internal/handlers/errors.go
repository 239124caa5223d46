package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
)

// failRedirect applies the fixed status-to-notification policy to a backend
// error, then redirects to fallback. It is the only place the policy lives:
//
//	401 -> clear session state, hard redirect to /login (once)
//	403 -> permission-denied notice
//	404 -> not-found notice
//	5xx -> generic server-error notice
//	no response -> connectivity notice
//
// 422 never reaches this function globally; forms intercept ValidationError
// first to show field-level messages. Login and signup also never call this
// for their own failed attempts; they render their own copy.
func failRedirect(w http.ResponseWriter, r *http.Request, sm *session.Manager, err error, fallback string) {
	slog.Error("Backend request failed", "path", r.URL.Path, "error", err)

	switch {
	case errors.Is(err, api.ErrUnauthorized):
		sm.SignOut(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case errors.Is(err, api.ErrForbidden):
		sm.AddFlash(w, r, "error", "You do not have permission to do that.")
	case errors.Is(err, api.ErrNotFound):
		sm.AddFlash(w, r, "error", "We couldn't find what you were looking for.")
	case errors.Is(err, api.ErrBackendUnavailable):
		sm.AddFlash(w, r, "error", "Cannot reach the server. Please check your connection and try again.")
	case errors.Is(err, api.ErrServer):
		sm.AddFlash(w, r, "error", "Something went wrong on our end. Please try again.")
	default:
		// Includes 400s with domain copy and 422s a form chose not to
		// handle; both degrade to a generic notification.
		if detail := api.Detail(err); detail != "" {
			sm.AddFlash(w, r, "error", detail)
		} else {
			sm.AddFlash(w, r, "error", "Something went wrong. Please try again.")
		}
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}
