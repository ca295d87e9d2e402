package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/sqlmap"
)

// LogRepository interface defines application log database operations
type LogRepository interface {
	GetSince(ctx context.Context, since time.Time) ([]models.LogEntry, error)
	Insert(ctx context.Context, entry *models.LogEntry) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// logRepository implements LogRepository on top of the sqlmap client
type logRepository struct {
	client *sqlmap.Client
}

// NewLogRepository creates a new log repository
func NewLogRepository(client *sqlmap.Client) LogRepository {
	return &logRepository{client: client}
}

// GetSince retrieves entries newer than since, newest first
func (r *logRepository) GetSince(ctx context.Context, since time.Time) ([]models.LogEntry, error) {
	query := `
		SELECT Id, Ip, Message, MessageDate
		FROM Log
		WHERE MessageDate > $since
		ORDER BY MessageDate DESC, Id DESC
	`

	entries, err := sqlmap.QueryList[models.LogEntry](ctx, r.client, query, sqlmap.Params{"$since": since})
	if err != nil {
		return nil, fmt.Errorf("failed to query log: %w", err)
	}

	return entries, nil
}

// Insert writes a new entry
func (r *logRepository) Insert(ctx context.Context, entry *models.LogEntry) error {
	if entry.MessageDate.IsZero() {
		entry.MessageDate = time.Now()
	}

	stmt, err := sqlmap.BuildInsert(entry, models.LogTable)
	if err != nil {
		return fmt.Errorf("failed to build log insert: %w", err)
	}

	id, err := r.client.ExecuteInsert(ctx, stmt, nil)
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}
	entry.ID = id

	return nil
}

// DeleteAll removes every entry and returns how many were removed
func (r *logRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := r.client.ExecuteNonQuery(ctx, "DELETE FROM Log;", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to delete log: %w", err)
	}
	return n, nil
}

// Count returns the number of entries
func (r *logRepository) Count(ctx context.Context) (int64, error) {
	value, err := r.client.ExecuteScalar(ctx, "SELECT COUNT(*) FROM Log", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count log entries: %w", err)
	}
	return sqlmap.AsLong(value), nil
}
