// Package database provides the embedded SQLite store handle.
//
// The store is constructed explicitly at startup and injected into each
// repository; its lifetime is owned by the application entrypoint. WAL mode
// is enabled on Open so reads never block the single writer.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO
	// so the binary builds anywhere the Go toolchain does.
	_ "modernc.org/sqlite"
)

// schema is the DDL applied once on startup. Idempotent via IF NOT EXISTS;
// the table shapes are load-bearing for data-format compatibility with
// existing database files and must not change.
const schema = `
CREATE TABLE IF NOT EXISTS products(
	product_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	price REAL NOT NULL CHECK(price>=0),
	stock INTEGER NOT NULL CHECK(stock>=0)
);
CREATE TABLE IF NOT EXISTS cart_items(
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id TEXT NOT NULL,
	qty INTEGER NOT NULL CHECK(qty>0),
	UNIQUE(product_id),
	FOREIGN KEY(product_id) REFERENCES products(product_id)
);
CREATE TABLE IF NOT EXISTS orders(
	order_id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	total REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items(
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER,
	product_id TEXT,
	qty INTEGER,
	price REAL,
	FOREIGN KEY(order_id) REFERENCES orders(order_id),
	FOREIGN KEY(product_id) REFERENCES products(product_id)
);
`

// Store is the handle to the embedded database. All repositories share one
// Store instance.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens (or creates) the SQLite database file at the given path and
// verifies connectivity. Call InitSchema before using the repositories.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	// foreign_keys=on enforces referential integrity; busy_timeout waits
	// for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	// Driver name is "sqlite", not "sqlite3", for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %q: %w", path, err)
	}

	logger.Info().Str("path", path).Msg("database opened")

	return &Store{
		db:     db,
		logger: logger.With().Str("component", "database").Logger(),
	}, nil
}

// InitSchema creates the four tables if they are absent. Safe to call on
// every startup; existing data is untouched.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		s.logger.Error().Err(err).Msg("failed to apply schema")
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction. If fn returns an error the
// transaction is rolled back and that error is returned; otherwise the
// transaction is committed. No partial writes survive a failure.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DB exposes the underlying handle for single-statement queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
