package database

import (
	"database/sql"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	dialect         = "sqlite3"
	migrationsTable = "migrations"
)

// migrationSet records applied migrations in the migrations table
var migrationSet = migrate.MigrationSet{TableName: migrationsTable}

func migrationSource() migrate.MigrationSource {
	return migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// RunMigrations applies all pending migrations and returns how many ran
func RunMigrations(db *sql.DB) (int, error) {
	n, err := migrationSet.Exec(db, dialect, migrationSource(), migrate.Up)
	if err != nil {
		return n, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return n, nil
}

// RollbackMigrations reverts every applied migration
func RollbackMigrations(db *sql.DB) (int, error) {
	n, err := migrationSet.Exec(db, dialect, migrationSource(), migrate.Down)
	if err != nil {
		return n, fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return n, nil
}

// AppliedMigrations returns the IDs of migrations recorded in the tracking table
func AppliedMigrations(db *sql.DB) ([]string, error) {
	records, err := migrationSet.GetMigrationRecords(db, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.Id)
	}
	return ids, nil
}
