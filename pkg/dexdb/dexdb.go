package dexdb

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/joshuapare/oatkit/pkg/types"
)

const driverName = "sqlite"

// Options configures Open.
type Options struct {
	// Safe refuses to open a path that is not an existing regular file, rather
	// than letting sqlite create an empty database there.
	Safe bool

	// Logger receives query diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DB is a handle on one DEX database.
type DB struct {
	path string
	db   *sql.DB
	log  *slog.Logger
}

// Open opens the database at path.
func Open(path string, opts Options) (*DB, error) {
	if opts.Safe {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s", types.ErrDatabaseNotFound, path)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// sqlite serialises writers anyway; one connection keeps the
	// create-then-insert sequence on the same handle.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &DB{path: path, db: db, log: log.With("db", filepath.Base(path))}, nil
}

// Name returns the base name of the database file.
func (d *DB) Name() string {
	return filepath.Base(d.path)
}

// Close releases the underlying connection.
func (d *DB) Close() error {
	return d.db.Close()
}
