package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/blogem/webtemplate/middleware"
	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/services"
)

// SessionController shows the current session
type SessionController struct {
	services *services.Services
}

// NewSessionController creates a new session controller
func NewSessionController(services *services.Services) *SessionController {
	return &SessionController{
		services: services,
	}
}

// Index handles GET /session; ?format=json returns the raw document
func (c *SessionController) Index(w http.ResponseWriter, r *http.Request) {
	sess := c.services.Session.Current(middleware.SessionStore(r))
	if sess == nil {
		sess = &models.Session{}
	}

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sess); err != nil {
			slog.Error("failed to write session JSON", "error", err)
		}
		return
	}

	serialized, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		reportError(r, c.services, err)
	}

	data := pageData(r, c.services, "Session", "session")
	data.Data = string(serialized)

	renderTemplate(w, "session", "session.html", data)
}
