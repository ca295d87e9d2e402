package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/webtemplate/middleware"
	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/services"
)

// HomeController handles the landing page and dialog answers
type HomeController struct {
	services *services.Services
}

// NewHomeController creates a new home controller
func NewHomeController(services *services.Services) *HomeController {
	return &HomeController{
		services: services,
	}
}

// Index handles GET /
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	store := middleware.SessionStore(r)

	sess, err := c.services.Logon.Begin(r.Context(), store, middleware.ClientIP(r), r.UserAgent())
	if err != nil {
		reportError(r, c.services, err)
	}

	// Send a freshly logged on visitor to the page they asked for
	if sess != nil && sess.IsAuthenticated && c.services.Dialog.Current(store) == nil {
		if target, ok := store.Get(middleware.RedirectAfterLoginKey).(string); ok && target != "" {
			if err := store.Delete(middleware.RedirectAfterLoginKey); err != nil {
				slog.Error("failed to clear redirect target", "error", err)
			}
			http.Redirect(w, r, localPath(target), http.StatusSeeOther)
			return
		}
	}

	renderTemplate(w, "home", "home.html", pageData(r, c.services, "Home", "home"))
}

// Answer handles POST /dialog/{id}
func (c *HomeController) Answer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	result := models.DialogResult{
		DialogID:  chi.URLParam(r, "id"),
		Value:     r.FormValue("value"),
		Cancelled: r.FormValue("action") == "cancel",
	}

	err := c.services.Logon.Answer(r.Context(), middleware.SessionStore(r), result)
	if err != nil && !errors.Is(err, services.ErrDialogNotFound) {
		reportError(r, c.services, err)
	}

	// Stale answers (double submit, back button) just show the page again
	http.Redirect(w, r, localPath(r.FormValue("return")), http.StatusSeeOther)
}
