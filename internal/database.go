package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// The store keeps everything in one key-value table: session records under
// "session:<id>" keys and the connection settings under a fixed key.
const (
	sessionKeyPrefix = "session:"
	settingsKey      = "settings"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS talkKV (
	key TEXT PRIMARY KEY,
	value TEXT
)`

// OpenDatabase opens (creating if necessary) the SQLite database backing
// the session store. Synchronous journaling is left at its default so each
// committed write survives a crash immediately after the call returns.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Op: "open", Err: fmt.Errorf("database ping failed: %w", err)}
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, &StoreError{Op: "open", Err: fmt.Errorf("schema init failed: %w", err)}
	}

	return db, nil
}

// queryKV returns all key/value rows whose key matches the LIKE pattern.
func queryKV(db *sql.DB, pattern string) ([]KeyValuePair, error) {
	rows, err := db.Query(
		"SELECT key, value FROM talkKV WHERE key LIKE ? AND value IS NOT NULL", pattern)
	if err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}
	defer rows.Close()

	var pairs []KeyValuePair
	for rows.Next() {
		var pair KeyValuePair
		var value sql.NullString
		if err := rows.Scan(&pair.Key, &value); err != nil {
			return nil, &StoreError{Op: "read", Err: err}
		}
		if value.Valid {
			pair.Value = value.String
			pairs = append(pairs, pair)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}
	return pairs, nil
}

// getKV returns the value for one key, with ok=false when absent.
func getKV(db *sql.DB, key string) (string, bool, error) {
	var value sql.NullString
	err := db.QueryRow("SELECT value FROM talkKV WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StoreError{Op: "read", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// putKV writes one key/value row, replacing any existing value. The write
// is committed before the call returns.
func putKV(db *sql.DB, key, value string) error {
	_, err := db.Exec(
		"INSERT INTO talkKV (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	return nil
}

// deleteKV removes one key.
func deleteKV(db *sql.DB, key string) error {
	if _, err := db.Exec("DELETE FROM talkKV WHERE key = ?", key); err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	return nil
}

// KeyValuePair represents a key-value row from talkKV
type KeyValuePair struct {
	Key   string
	Value string
}
