package store

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/ndtool/internal/array"
	"github.com/roach88/ndtool/internal/npy"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - empty file, schema not yet applied
// 1 - arrays table
const currentSchemaVersion = 1

// ErrNotFound is returned by Get when no array has the requested name.
var ErrNotFound = errors.New("array not found")

// Store is an open array archive.
type Store struct {
	db       *sql.DB
	readOnly bool
}

// Open creates or opens an archive at path for reading and writing.
// Applies pragmas and schema migrations; safe to call on an existing
// archive.
func Open(path string) (*Store, error) {
	uri, err := fileURI(path, "rwc")
	if err != nil {
		return nil, err
	}
	db, err := connect(uri)
	if err != nil {
		return nil, err
	}

	if err := applyPragmas(db, writePragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenReadOnly opens an existing archive without modifying it. The file
// must exist and carry a schema version this package understands.
func OpenReadOnly(path string) (*Store, error) {
	uri, err := fileURI(path, "ro")
	if err != nil {
		return nil, err
	}
	db, err := connect(uri)
	if err != nil {
		return nil, err
	}

	if err := applyPragmas(db, readPragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	version, err := schemaVersion(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if version != currentSchemaVersion {
		db.Close()
		return nil, fmt.Errorf("%s is not an ndtool archive (schema version %d, want %d)", path, version, currentSchemaVersion)
	}

	return &Store{db: db, readOnly: true}, nil
}

// fileURI builds a SQLite file: URI for path with the given open mode.
// The path is made absolute and percent-escaped so '?', '#' and '%' in
// file names stay part of the name.
func fileURI(path, mode string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=" + mode}
	return u.String(), nil
}

func connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores a under name, replacing any array already stored there.
func (s *Store) Put(ctx context.Context, name string, a *array.Array) error {
	if s.readOnly {
		return fmt.Errorf("put %q: archive is open read-only", name)
	}
	if name == "" {
		return fmt.Errorf("put: array name must not be empty")
	}

	blob, err := npy.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode %q: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO arrays (name, dtype, shape, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			dtype = excluded.dtype,
			shape = excluded.shape,
			data = excluded.data
	`, name, a.DType().String(), a.Shape().String(), blob)
	if err != nil {
		return fmt.Errorf("insert array %q: %w", name, err)
	}
	return nil
}

// Get loads the array stored under name.
// Returns an error wrapping ErrNotFound if there is none.
func (s *Store) Get(ctx context.Context, name string) (*array.Array, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM arrays WHERE name = ?`, name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query array %q: %w", name, err)
	}

	a, err := npy.Read(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("decode array %q: %w", name, err)
	}
	return a, nil
}

// Names returns the stored array names in byte order.
// Returns an empty slice (not nil) for an empty archive.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM arrays ORDER BY name COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate names: %w", err)
	}
	return names, nil
}

var writePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
}

var readPragmas = []string{
	"PRAGMA busy_timeout = 5000",
	"PRAGMA query_only = ON",
}

func applyPragmas(db *sql.DB, pragmas []string) error {
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
func applySchema(db *sql.DB) error {
	version, err := schemaVersion(db)
	if err != nil {
		return err
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("archive schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

func schemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
