package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/scriptbridge/internal/ports"
	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

const (
	pathKey       = "store.sqlite_path"
	defaultDir    = ".scriptbridge"
	defaultFile   = "scriptbridge.db"
	storeDirMode  = 0o700
	memoryDataset = ":memory:"
)

//go:embed schema.sql
var schemaSQL string

// DB owns the connection and hands out the repositories backed by it.
type DB struct {
	db    *sql.DB
	clock ports.Clock
}

// OpenFromConfig opens the database named by store.sqlite_path, defaulting to
// ~/.scriptbridge/scriptbridge.db.
func OpenFromConfig(ctx context.Context, cfg *viper.Viper, clock ports.Clock) (*DB, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(pathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, defaultDir, defaultFile)
	}

	return Open(ctx, path, clock)
}

func Open(ctx context.Context, path string, clock ports.Clock) (*DB, error) {
	if path == "" {
		return nil, errors.New("database path is empty")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	if path != memoryDataset {
		if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection serializes writers and keeps ":memory:" to one
	// database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{db: db, clock: clock}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Commands() *CommandRepository { return &CommandRepository{db: d.db} }

func (d *DB) Notes() *NoteRepository { return &NoteRepository{db: d.db} }

func (d *DB) Identities() *IdentityRepository { return &IdentityRepository{db: d.db} }

func (d *DB) Members() *MemberCache { return &MemberCache{db: d.db, clock: d.clock} }

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
