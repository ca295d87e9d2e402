package sqlmap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultQueryTimeout bounds every statement unless overridden.
const DefaultQueryTimeout = 20 * time.Second

const (
	opQuery  = "query"
	opExec   = "exec"
	opScalar = "scalar"
)

// Client runs statements against a database, taking a dedicated connection
// from the pool for each call and returning it afterwards.
type Client struct {
	db           *sql.DB
	queryTimeout time.Duration
	capture      bool
	logger       *slog.Logger
	metrics      *Metrics

	mu            sync.Mutex
	lastStatement string
}

// Option configures a Client.
type Option func(*Client)

// WithQueryTimeout overrides DefaultQueryTimeout.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.queryTimeout = d
		}
	}
}

// WithStatementCapture records the last executed statement, with parameter
// values substituted, for LastStatement.
func WithStatementCapture(enabled bool) Option {
	return func(c *Client) { c.capture = enabled }
}

// WithLogger sets the logger used for failed statements.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics attaches prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client over db.
func NewClient(db *sql.DB, opts ...Option) *Client {
	c := &Client{
		db:           db,
		queryTimeout: DefaultQueryTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LastStatement returns the most recent statement when capture is enabled.
func (c *Client) LastStatement() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastStatement
}

func (c *Client) captureStatement(query string, params Params) {
	if !c.capture {
		return
	}
	expanded := expandStatement(query, params)
	c.mu.Lock()
	c.lastStatement = expanded
	c.mu.Unlock()
}

// withConn runs fn on a dedicated connection under the query timeout.
func (c *Client) withConn(ctx context.Context, operation, query string, fn func(ctx context.Context, conn *sql.Conn) error) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.observe(operation, start, err)
		if err != nil {
			c.logger.Error("statement failed", "operation", operation, "sql", query, "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	conn, err := c.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}

// GetDataTable runs query and returns all rows.
func (c *Client) GetDataTable(ctx context.Context, query string, params Params) (*Table, error) {
	var table *Table
	err := c.withConn(ctx, opQuery, query, func(ctx context.Context, conn *sql.Conn) error {
		c.captureStatement(query, params)

		rows, err := conn.QueryContext(ctx, query, params.args()...)
		if err != nil {
			return fmt.Errorf("failed to query data table: %w", err)
		}
		defer rows.Close()

		table, err = LoadTable(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// ExecuteNonQuery runs a statement and returns the number of rows affected.
func (c *Client) ExecuteNonQuery(ctx context.Context, query string, params Params) (int64, error) {
	var affected int64
	err := c.withConn(ctx, opExec, query, func(ctx context.Context, conn *sql.Conn) error {
		c.captureStatement(query, params)

		result, err := conn.ExecContext(ctx, query, params.args()...)
		if err != nil {
			return fmt.Errorf("failed to execute statement: %w", err)
		}

		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		return nil
	})
	return affected, err
}

// ExecuteInsert runs an INSERT and returns the rowid it assigned.
func (c *Client) ExecuteInsert(ctx context.Context, query string, params Params) (int64, error) {
	var id int64
	err := c.withConn(ctx, opExec, query, func(ctx context.Context, conn *sql.Conn) error {
		c.captureStatement(query, params)

		result, err := conn.ExecContext(ctx, query, params.args()...)
		if err != nil {
			return fmt.Errorf("failed to execute insert: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		return nil
	})
	return id, err
}

// ExecuteScalar returns the first column of the first row, or nil when the
// query yields no rows.
func (c *Client) ExecuteScalar(ctx context.Context, query string, params Params) (any, error) {
	var value any
	err := c.withConn(ctx, opScalar, query, func(ctx context.Context, conn *sql.Conn) error {
		c.captureStatement(query, params)

		rows, err := conn.QueryContext(ctx, query, params.args()...)
		if err != nil {
			return fmt.Errorf("failed to execute scalar: %w", err)
		}
		defer rows.Close()

		table, err := LoadTable(rows)
		if err != nil {
			return err
		}
		if !table.IsEmpty() && len(table.Rows[0]) > 0 {
			value = table.Rows[0][0]
		}
		return nil
	})
	return value, err
}

// ConnectionTest returns "OK" when the database answers, otherwise the error text.
func (c *Client) ConnectionTest(ctx context.Context) string {
	if _, err := c.ExecuteScalar(ctx, "SELECT datetime('now');", nil); err != nil {
		return err.Error()
	}
	return "OK"
}

// QueryList runs query and maps every row onto a new T.
func QueryList[T any](ctx context.Context, c *Client, query string, params Params) ([]T, error) {
	table, err := c.GetDataTable(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return ToList[T](table)
}

// QueryRecord runs query and maps the first row onto T. A query without rows
// yields the zero T.
func QueryRecord[T any](ctx context.Context, c *Client, query string, params Params) (T, error) {
	var zero T
	items, err := QueryList[T](ctx, c, query, params)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, nil
	}
	return items[0], nil
}
