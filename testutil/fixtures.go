package testutil

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// TempDBPath returns a database path under a fresh temporary directory.
func TempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "talk-to-data.db")
}

// WriteKV writes a raw key/value row directly into the store database at
// path, creating the schema if needed. Used to plant fixture and corrupt
// records without going through the store.
func WriteKV(t *testing.T, path, key, value string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS talkKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	_, err = db.Exec(
		"INSERT INTO talkKV (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		t.Fatalf("Failed to write row: %v", err)
	}
}

// Frame wraps a payload in the stream's wire framing.
func Frame(payload string) string {
	return "data: " + payload + "\n\n"
}

// Frames joins several payloads into one framed stream body.
func Frames(payloads ...string) string {
	var b strings.Builder
	for _, p := range payloads {
		b.WriteString(Frame(p))
	}
	return b.String()
}

// ProgressFrame builds a framed progress event payload.
func ProgressFrame(value float64) string {
	return Frame(fmt.Sprintf(`{"type":"progress","value":%g}`, value))
}

// TextFrame builds a framed text event payload of the given type.
func TextFrame(eventType, content string) string {
	return Frame(fmt.Sprintf(`{"type":%q,"content":%q}`, eventType, content))
}
