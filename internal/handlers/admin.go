package handlers

import (
	"net/http"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/cache"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/config"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
)

// dashboardRefreshSeconds drives the meta-refresh on the statistics view.
const dashboardRefreshSeconds = 30

type AdminHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	Cache     *cache.Cache
	Config    *config.Config
}

func (h *AdminHandler) client(r *http.Request) *api.Client {
	return h.API.WithToken(h.Sessions.Token(r))
}

// Dashboard renders the statistics view. It always fetches fresh: the
// page re-loads itself every 30 seconds and stale numbers defeat the point.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.client(r).GetDashboardStats(r.Context())
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/")
		return
	}

	render(h.Templates, h.Sessions, w, r, "admin.html", map[string]interface{}{
		"Stats":          stats,
		"RefreshSeconds": dashboardRefreshSeconds,
	})
}
