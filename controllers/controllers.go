package controllers

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/blogem/webtemplate/middleware"
	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/services"
	"github.com/blogem/webtemplate/templates"
	"github.com/blogem/webtemplate/userctx"
)

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, pageTemplate string, data interface{}) error {
	// Create a new template set with only the templates we need
	tmpl := template.New(templateName).Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})

	// Parse layout, dialog and page template
	if _, err := tmpl.ParseFS(templates.FS, "layout.html", "dialog.html", pageTemplate); err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	// Render into a buffer so a failing template does not leave half a page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := buf.WriteTo(w)
	return err
}

// Controllers holds all controller instances
type Controllers struct {
	Auth    *AuthController
	Home    *HomeController
	Log     *LogController
	Session *SessionController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Auth:    NewAuthController(services),
		Home:    NewHomeController(services),
		Log:     NewLogController(services),
		Session: NewSessionController(services),
	}
}

const flashKey = "flash"

// setFlash keeps a message for the next page rendered in this session
func setFlash(r *http.Request, kind, message string) {
	storeFlash(middleware.SessionStore(r), models.FlashMessage{Type: kind, Message: message})
}

func storeFlash(store services.SessionStore, flash models.FlashMessage) {
	if err := store.Set(flashKey, flash); err != nil {
		slog.Error("failed to store flash message", "error", err, "message", flash.Message)
	}
}

// popFlash returns the pending flash message, if any, and removes it
func popFlash(store services.SessionStore) *models.FlashMessage {
	flash, ok := store.Get(flashKey).(models.FlashMessage)
	if !ok {
		return nil
	}
	if err := store.Delete(flashKey); err != nil {
		slog.Error("failed to clear flash message", "error", err)
	}
	return &flash
}

// pageData fills the envelope every page shares
func pageData(r *http.Request, srvs *services.Services, title, currentPage string) models.PageData {
	store := middleware.SessionStore(r)

	data := models.PageData{
		Title:       title,
		CurrentPage: currentPage,
		Path:        r.URL.Path,
		Dialog:      srvs.Dialog.Current(store),
	}
	if sess := srvs.Session.Current(store); sess != nil {
		data.Session = *sess
	}
	data.FlashMessage = popFlash(store)
	return data
}

// reportError records err in the log and queues it as an "Error" dialog
func reportError(r *http.Request, srvs *services.Services, err error) {
	ip := userctx.GetClientIP(r.Context())
	slog.Error("request failed", "error", err, "path", r.URL.Path, "ip", ip)

	if showErr := srvs.Dialog.ShowError(r.Context(), middleware.SessionStore(r), ip, err); showErr != nil {
		slog.Error("failed to show error dialog", "error", showErr)
	}
}

// localPath only lets redirects go to paths on this site
func localPath(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "/"
	}
	return path
}
