// Package storage handles SQLite persistence for trainer state.
//
// All persisted state lives in a single key-value table holding JSON
// documents, one per key.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Keys of the persisted documents.
const (
	KeyLanguage         = "language"
	KeyPracticeType     = "practiceType"
	KeyUseCustomMode    = "useCustomMode"
	KeySentenceFolders  = "sentenceFolders"
	KeySelectedFolderID = "selectedFolderId"
	KeyTargetWPM        = "targetWpm"
	KeyLeaderboard      = "typingLeaderboard"
	KeyDrillLeaderboard = "typingMinigameLeaderboard"
)

// KV is the abstract store the trainer persists into. Values are
// opaque bytes; callers store JSON documents.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store wraps SQLite access for the key-value table.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value stored under key, reporting whether it exists.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value))
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// ReadJSON loads key into v. A missing key or a value that fails to
// parse reports ok=false so callers fall back to their defaults
// instead of failing on corrupt state.
func ReadJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, nil
	}
	return true, nil
}

// WriteJSON marshals v and stores it under key.
func WriteJSON(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, raw)
}
