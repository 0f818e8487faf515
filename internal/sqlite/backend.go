// Package sqlite implements the SQLite journal backend for rpncalc.
// The database file lives in the configured data directory and survives
// across sessions; Export writes the same records as JSONL.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/rpncalc/pkg/types"
)

// DBFileName is the name of the journal database inside the data directory.
const DBFileName = "journal.db"

// timeLayout is used for every timestamp column.
const timeLayout = time.RFC3339Nano

// Backend implements types.Journal on top of a SQLite database file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	// now is overridden in tests.
	now func() time.Time
}

var _ types.Journal = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Attach opens (or creates) the journal database in config.DataDir and
// ensures the schema exists. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	// A single connection keeps PRAGMA settings and serializes writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// StartSession inserts a new session with a UUID v7 identifier.
func (b *Backend) StartSession(mode string) (types.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.Session{}, types.ErrJournalDetached
	}
	if !types.ValidMode(mode) {
		return types.Session{}, types.ErrInvalidMode
	}

	s := types.Session{
		SessionID: generateUUID(),
		Mode:      mode,
		StartedAt: b.now().UTC(),
	}
	_, err := b.db.Exec(
		"INSERT INTO sessions (session_id, mode, started_at) VALUES (?, ?, ?)",
		s.SessionID, s.Mode, s.StartedAt.Format(timeLayout),
	)
	if err != nil {
		return types.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

// Record appends entry to its session, assigning the next sequence number.
func (b *Backend) Record(entry types.Entry) (types.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.Entry{}, types.ErrJournalDetached
	}
	if err := entry.Validate(); err != nil {
		return types.Entry{}, err
	}

	stack := entry.Stack
	if stack == nil {
		stack = []float64{}
	}
	stackJSON, err := json.Marshal(types.Snapshot(stack))
	if err != nil {
		return types.Entry{}, fmt.Errorf("marshal stack: %w", err)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return types.Entry{}, fmt.Errorf("begin record: %w", err)
	}
	defer tx.Rollback()

	if err := sessionExists(tx, entry.SessionID); err != nil {
		return types.Entry{}, err
	}

	var seq int
	if err := tx.QueryRow(
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM entries WHERE session_id = ?",
		entry.SessionID,
	).Scan(&seq); err != nil {
		return types.Entry{}, fmt.Errorf("next sequence: %w", err)
	}

	entry.EntryID = generateUUID()
	entry.Seq = seq
	entry.Stack = stack
	entry.CreatedAt = b.now().UTC()

	_, err = tx.Exec(
		`INSERT INTO entries (entry_id, session_id, seq, line, outcome, error, stack, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.EntryID, entry.SessionID, entry.Seq, entry.Line, entry.Outcome,
		nullString(entry.Error), string(stackJSON), entry.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return types.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return types.Entry{}, fmt.Errorf("commit record: %w", err)
	}
	return entry, nil
}

// Sessions returns every session with its entry count, oldest first.
func (b *Backend) Sessions() ([]types.Session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrJournalDetached
	}

	rows, err := b.db.Query(`SELECT s.session_id, s.mode, s.started_at, COUNT(e.entry_id)
		FROM sessions s LEFT JOIN entries e ON e.session_id = s.session_id
		GROUP BY s.session_id, s.mode, s.started_at
		ORDER BY s.started_at, s.session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []types.Session
	for rows.Next() {
		var (
			s         types.Session
			startedAt string
		)
		if err := rows.Scan(&s.SessionID, &s.Mode, &startedAt, &s.Entries); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if s.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Entries returns the entries of sessionID in sequence order.
func (b *Backend) Entries(sessionID string) ([]types.Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrJournalDetached
	}
	if err := sessionExists(b.db, sessionID); err != nil {
		return nil, err
	}

	rows, err := b.db.Query(selectEntries+" WHERE session_id = ? ORDER BY seq", sessionID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// LastSnapshot returns the stack stored by the most recently recorded entry.
func (b *Backend) LastSnapshot() ([]float64, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, false, types.ErrJournalDetached
	}

	var stackJSON string
	err := b.db.QueryRow("SELECT stack FROM entries ORDER BY rowid DESC LIMIT 1").Scan(&stackJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query snapshot: %w", err)
	}

	var stack types.Snapshot
	if err := json.Unmarshal([]byte(stackJSON), &stack); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return stack, true, nil
}

// selectEntries is the column list shared by entry queries; scanEntry
// expects this order.
const selectEntries = `SELECT entry_id, session_id, seq, line, outcome, error, stack, created_at FROM entries`

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func sessionExists(q querier, sessionID string) error {
	var n int
	if err := q.QueryRow("SELECT COUNT(*) FROM sessions WHERE session_id = ?", sessionID).Scan(&n); err != nil {
		return fmt.Errorf("lookup session: %w", err)
	}
	if n == 0 {
		return types.ErrSessionNotFound
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]types.Entry, error) {
	var out []types.Entry
	for rows.Next() {
		var (
			e         types.Entry
			errText   sql.NullString
			stackJSON string
			createdAt string
		)
		if err := rows.Scan(&e.EntryID, &e.SessionID, &e.Seq, &e.Line, &e.Outcome,
			&errText, &stackJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Error = errText.String
		var stack types.Snapshot
		if err := json.Unmarshal([]byte(stackJSON), &stack); err != nil {
			return nil, fmt.Errorf("decode stack of entry %s: %w", e.EntryID, err)
		}
		e.Stack = stack
		t, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		e.CreatedAt = t
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// generateUUID generates a new UUID v7 for session and entry IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
