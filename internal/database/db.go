// Package database provides the SQLite-backed WordNet store: connection
// setup, schema migrations, lookups and the TSV importer.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/edgard/nlpres/migrations"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

// connPragmas are set by the driver on every new connection, so they hold
// after the pool recycles one.
var connPragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// wordnetTables must exist once migrations ran.
var wordnetTables = []string{"synsets", "senses"}

// Open connects to the WordNet database at dbPath, applies migrations,
// checks the schema and returns the connection pool.
func Open(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", DSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Lookups are read-mostly and imports run in one transaction; a single
	// connection keeps SQLite writers serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	dbName := ExtractDBNameFromPath(dbPath)
	if err := ApplyMigrations(db.DB, dbName); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	if err := verifySchema(db); err != nil {
		closeQuietly(db)
		return nil, err
	}

	slog.Debug("WordNet database ready", "path", dbPath)
	return db, nil
}

// DSN appends the connection pragmas to dbPath in the form the modernc
// driver reads them.
func DSN(dbPath string) string {
	params := make([]string, 0, len(connPragmas))
	for _, p := range connPragmas {
		params = append(params, "_pragma="+p)
	}

	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + strings.Join(params, "&")
}

func verifySchema(db *sqlx.DB) error {
	var found []string
	query, args, err := sqlx.In(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN (?) ORDER BY name`, wordnetTables)
	if err != nil {
		return fmt.Errorf("failed to build schema query: %w", err)
	}
	if err := db.Select(&found, db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if len(found) != len(wordnetTables) {
		return fmt.Errorf("wordnet schema incomplete: found tables %v, want %v", found, wordnetTables)
	}
	return nil
}

// Close closes the database connection pool.
func Close(db *sqlx.DB) error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func closeQuietly(db *sqlx.DB) {
	if closeErr := db.Close(); closeErr != nil {
		slog.Error("Error closing database after setup failure", "error", closeErr)
	}
}

// ApplyMigrations runs database migrations using embedded files.
func ApplyMigrations(db *sql.DB, dbName string) error {
	if db == nil {
		return errors.New("database connection is nil, cannot apply migrations")
	}
	if dbName == "" {
		return errors.New("database name/path for migration driver is empty")
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create embed source driver instance: %w", err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite database driver: %w", err)
	}
	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("No database migrations to apply.", "database_name", dbName)
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("Database migrations applied successfully.", "database_name", dbName)
	return nil
}

// ExtractDBNameFromPath extracts the database file path from a possibly URL-formatted path.
func ExtractDBNameFromPath(path string) string {
	path = strings.TrimPrefix(path, "file:")

	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}

	if decoded, err := url.PathUnescape(path); err == nil {
		return decoded
	}

	return path
}
