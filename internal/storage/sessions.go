package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"focusdock/internal/core/model"
)

const sessionsSchemaVersion = 1

// SessionStore keeps the local history of completed sessions. It is
// written by the main surface when a completion notification arrives
// and read back for the dashboard.
type SessionStore struct {
	db *sql.DB
}

// SessionRecord is one completed session row.
type SessionRecord struct {
	ID              int64
	Mode            model.Mode
	DurationMinutes int
	CategoryID      string
	CategoryName    string
	CompletedAt     time.Time
}

// DefaultSessionDBPath returns the per-user sessions database path.
func DefaultSessionDBPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, "sessions.db"), nil
}

// NewSessionStore opens (or creates) the SQLite database at dbPath and
// runs migrations.
func NewSessionStore(dbPath string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	store := &SessionStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// NewSessionStoreMemory creates an in-memory store for testing.
func NewSessionStoreMemory() (*SessionStore, error) {
	return NewSessionStore(":memory:")
}

func (store *SessionStore) Close() error {
	return store.db.Close()
}

func (store *SessionStore) migrate() error {
	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= sessionsSchemaVersion {
		return nil
	}

	if version < 1 {
		_, err := store.db.Exec(`
			CREATE TABLE IF NOT EXISTS sessions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				mode TEXT NOT NULL,
				duration_minutes INTEGER NOT NULL,
				category_id TEXT NOT NULL DEFAULT '',
				category_name TEXT NOT NULL DEFAULT '',
				completed_at TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_sessions_completed_at ON sessions(completed_at);
		`)
		if err != nil {
			return fmt.Errorf("create sessions table: %w", err)
		}
	}

	_, err := store.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", sessionsSchemaVersion))
	return err
}

// Record stores a completed session. The category is the cached
// selection at completion time and may be nil.
func (store *SessionStore) Record(completion model.Completion, category *model.Category) error {
	categoryID, categoryName := "", ""
	if category != nil {
		categoryID, categoryName = category.ID, category.Name
	}
	_, err := store.db.Exec(
		`INSERT INTO sessions (mode, duration_minutes, category_id, category_name, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		string(completion.Mode), completion.DurationMinutes, categoryID, categoryName,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Recent returns the most recently completed sessions, newest first.
func (store *SessionStore) Recent(limit int) ([]SessionRecord, error) {
	rows, err := store.db.Query(
		`SELECT id, mode, duration_minutes, category_id, category_name, completed_at
		 FROM sessions ORDER BY completed_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var record SessionRecord
		var mode, completedAt string
		if err := rows.Scan(&record.ID, &mode, &record.DurationMinutes,
			&record.CategoryID, &record.CategoryName, &completedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		record.Mode = model.Mode(mode)
		record.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		records = append(records, record)
	}
	return records, rows.Err()
}

// FocusMinutesByDay sums completed focus minutes per UTC day over the
// trailing window.
func (store *SessionStore) FocusMinutesByDay(days int) (map[string]int, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	rows, err := store.db.Query(
		`SELECT substr(completed_at, 1, 10) AS day, SUM(duration_minutes)
		 FROM sessions
		 WHERE mode LIKE 'FOCUS%' AND completed_at >= ?
		 GROUP BY day`, since,
	)
	if err != nil {
		return nil, fmt.Errorf("query focus totals: %w", err)
	}
	defer rows.Close()

	totals := map[string]int{}
	for rows.Next() {
		var day string
		var minutes int
		if err := rows.Scan(&day, &minutes); err != nil {
			return nil, fmt.Errorf("scan focus total: %w", err)
		}
		totals[day] = minutes
	}
	return totals, rows.Err()
}
