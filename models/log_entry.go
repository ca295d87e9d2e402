package models

import "time"

// LogTable is the name of the application log table.
const LogTable = "Log"

// LogEntry is one row of the application log.
type LogEntry struct {
	ID          int64     `json:"id" sqlmap:"Id,skip"`
	IP          string    `json:"ip" sqlmap:"Ip"`
	Message     string    `json:"message" sqlmap:"Message"`
	MessageDate time.Time `json:"message_date" sqlmap:"MessageDate"`
}

// NewLogEntry stamps a message with the current time.
func NewLogEntry(message, ip string) *LogEntry {
	return &LogEntry{
		IP:          ip,
		Message:     message,
		MessageDate: time.Now(),
	}
}

// LocalDate formats the entry time in the server's zone for display.
func (e LogEntry) LocalDate() string {
	return FormatDateTime(e.MessageDate.Local())
}
