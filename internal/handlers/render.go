package handlers

import (
	"log/slog"
	"net/http"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
	"github.com/gorilla/csrf"
)

// render executes a cached template, filling in the data every page shares:
// the signed-in user, the cart badge count, queued flashes, and the CSRF
// field.
func render(tc *TemplateCache, sm *session.Manager, w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	tmpl := tc.Get(name)
	if tmpl == nil {
		slog.Error("Template not found", "name", name)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	if _, ok := data["Flashes"]; !ok {
		data["Flashes"] = sm.Flashes(w, r)
	}
	data["User"] = sm.CurrentUser(r)
	data["CartCount"] = sm.CartCount(r)
	data["CsrfField"] = csrf.TemplateField(r)

	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("Failed to execute template", "name", name, "error", err)
	}
}
