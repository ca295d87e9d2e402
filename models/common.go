package models

import (
	"time"
)

// FlashMessage represents a flash message for user feedback
type FlashMessage struct {
	Type    string `json:"type"` // "success", "error", "warning", "info"
	Message string `json:"message"`
}

// PageData represents common data passed to templates
type PageData struct {
	Title        string        `json:"title"`
	CurrentPage  string        `json:"current_page"`
	Path         string        `json:"path"`
	FlashMessage *FlashMessage `json:"flash_message,omitempty"`
	Session      Session       `json:"session"`
	Dialog       *Dialog       `json:"dialog,omitempty"`
	Data         interface{}   `json:"data,omitempty"`
}

// DateRange represents a range of dates
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GetLastMonths returns the range ending at now and starting the given
// number of months earlier.
func GetLastMonths(now time.Time, months int) DateRange {
	if months < 1 {
		months = 1
	}
	return DateRange{Start: now.AddDate(0, -months, 0), End: now}
}

// FormatDateTime formats a time as YYYY-MM-DD HH:MM:SS
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
