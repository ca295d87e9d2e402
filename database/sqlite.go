package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultFileName is the database file created beside the executable.
const DefaultFileName = "LocalLog.sdb"

// BusyTimeoutMillis is how long a connection waits on a locked database
// before failing with SQLITE_BUSY.
const BusyTimeoutMillis = 10000

var db *sql.DB

// OpenDB initializes the SQLite database connection
func OpenDB(dataSourceName string) error {
	var err error
	db, err = sql.Open("sqlite3", withBusyTimeout(dataSourceName))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err = db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// withBusyTimeout adds the busy timeout to dsn unless it already sets one.
// Options in the DSN apply to every connection the pool opens.
func withBusyTimeout(dsn string) string {
	// also matches _busy_timeout
	if strings.Contains(dsn, "_timeout=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, BusyTimeoutMillis)
}

// InitializeDatabase opens the database connection and runs migrations
func InitializeDatabase(dataSourceName string) error {
	if err := OpenDB(dataSourceName); err != nil {
		return err
	}

	applied, err := RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database initialized", "path", dataSourceName, "migrations_applied", applied)
	return nil
}

// GetDB returns the database connection
func GetDB() *sql.DB {
	return db
}

// CloseDB closes the database connection
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// DataSourceFor resolves file against dir. An empty dir means the directory
// of the running executable; absolute file paths are returned unchanged.
func DataSourceFor(dir, file string) (string, error) {
	if file == "" {
		file = DefaultFileName
	}
	if filepath.IsAbs(file) {
		return file, nil
	}
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		dir = filepath.Dir(exe)
	}
	return filepath.Join(dir, file), nil
}
