package controllers

import (
	"fmt"
	"net/http"

	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/services"
	"github.com/blogem/webtemplate/userctx"
)

// LogController handles the log viewer
type LogController struct {
	services *services.Services
}

// NewLogController creates a new log controller
func NewLogController(services *services.Services) *LogController {
	return &LogController{
		services: services,
	}
}

// Index handles GET /log
func (c *LogController) Index(w http.ResponseWriter, r *http.Request) {
	entries, err := c.services.Log.GetLog(r.Context())
	if err != nil {
		reportError(r, c.services, err)
		entries = []models.LogEntry{}
	}

	data := pageData(r, c.services, "Log", "log")
	data.Data = entries

	renderTemplate(w, "log", "log.html", data)
}

// Delete handles POST /log/delete
func (c *LogController) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.services.Log.DeleteLog(r.Context(), userctx.GetClientIP(r.Context()))
	if err != nil {
		reportError(r, c.services, err)
	} else {
		setFlash(r, "success", fmt.Sprintf("Deleted %d log record(s)", deleted))
	}

	// Redirect to the log page after deleting
	http.Redirect(w, r, "/log", http.StatusSeeOther)
}
