package services

import (
	"context"
	"fmt"
	"time"

	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/repositories"
)

// Messages written by the application itself
const (
	MessageLogon           = "Logon"
	MessageLogonFailed     = "Logon failed"
	MessageLogout          = "Logout"
	MessageLogDeleted      = "Deleted All Log Records"
	DefaultRetentionMonths = 1
)

// LogService interface defines application log business logic
type LogService interface {
	GetLog(ctx context.Context) ([]models.LogEntry, error)
	InsertLogData(ctx context.Context, message, ip string) error
	DeleteLog(ctx context.Context, ip string) (int64, error)
}

// logService implements LogService interface
type logService struct {
	logRepo         repositories.LogRepository
	retentionMonths int
	now             func() time.Time
}

// NewLogService creates a new log service
func NewLogService(logRepo repositories.LogRepository, retentionMonths int) LogService {
	if retentionMonths < 1 {
		retentionMonths = DefaultRetentionMonths
	}
	return &logService{
		logRepo:         logRepo,
		retentionMonths: retentionMonths,
		now:             time.Now,
	}
}

// GetLog retrieves entries inside the retention window, newest first
func (s *logService) GetLog(ctx context.Context) ([]models.LogEntry, error) {
	window := models.GetLastMonths(s.now(), s.retentionMonths)

	entries, err := s.logRepo.GetSince(ctx, window.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}

	return entries, nil
}

// InsertLogData records a message for the given client IP
func (s *logService) InsertLogData(ctx context.Context, message, ip string) error {
	entry := &models.LogEntry{
		IP:          ip,
		Message:     message,
		MessageDate: s.now(),
	}

	if err := s.logRepo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert log data: %w", err)
	}

	return nil
}

// DeleteLog removes every entry and records who cleared the log
func (s *logService) DeleteLog(ctx context.Context, ip string) (int64, error) {
	deleted, err := s.logRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete log: %w", err)
	}

	if err := s.InsertLogData(ctx, MessageLogDeleted, ip); err != nil {
		return deleted, err
	}

	return deleted, nil
}
