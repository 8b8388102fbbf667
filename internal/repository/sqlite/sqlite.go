// Package sqlite implements the domain repositories on top of a local
// SQLite database, which stands in for the managed backend in production
// and backs tests with throwaway files.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhalloran/inkwell/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps the underlying connection and hands out repository instances.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all unapplied schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// Posts returns the SQLite-backed post repository.
func (d *DB) Posts() *PostRepository {
	return NewPostRepository(d)
}

// Users returns the SQLite-backed user repository.
func (d *DB) Users() *UserRepository {
	return NewUserRepository(d)
}

// Media returns the SQLite-backed media metadata repository.
func (d *DB) Media() *MediaRepository {
	return NewMediaRepository(d)
}

// FileStore returns the SQLite BLOB file store.
func (d *DB) FileStore() *FileStore {
	return &FileStore{db: d.SqlDB}
}
