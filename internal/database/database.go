package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	sqlite "modernc.org/sqlite"

	"github.com/larderhq/larder/internal/database/migrations"
)

var (
	// ErrDuplicateKey is reported when an insert collides with an
	// existing primary key. Callers that want idempotent writes should
	// use the store's upsert instead of relying on this.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMigration marks a failed schema upgrade. Upgrade steps are
	// idempotent, so the remedy is to re-open, not to roll back.
	ErrMigration = errors.New("schema migration")
)

// Open opens a SQLite database at the given path and runs migrations.
// Failure here is fatal to the session; callers surface it and stop.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrMigration, err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// IsDuplicateKey reports whether err is a primary-key or unique-index
// violation from the SQLite driver.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, ErrDuplicateKey) {
		return true
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		// SQLITE_CONSTRAINT_PRIMARYKEY / SQLITE_CONSTRAINT_UNIQUE
		return se.Code() == 1555 || se.Code() == 2067
	}
	return false
}
