package types

import "errors"

// Journal records the lines evaluated by calculator sessions so that a later
// session can list, export or resume them.
type Journal interface {
	// Attach opens the backend described by config, creating DataDir if it
	// does not exist. Returns ErrAlreadyAttached if already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, other methods return ErrJournalDetached.
	Detach() error

	// StartSession creates a new session record with a generated ID.
	StartSession(mode string) (Session, error)

	// Record appends entry to its session. EntryID, Seq and CreatedAt are
	// assigned by the journal and returned in the stored copy.
	Record(entry Entry) (Entry, error)

	// Sessions returns every session, oldest first.
	Sessions() ([]Session, error)

	// Entries returns the entries of one session in recording order.
	// Returns ErrSessionNotFound for an unknown session ID.
	Entries(sessionID string) ([]Entry, error)

	// LastSnapshot returns the stack recorded by the most recent entry of
	// any session. The bool is false when the journal holds no entries.
	LastSnapshot() ([]float64, bool, error)

	// Export writes every entry as one JSON object per line to path.
	Export(path string) error
}

// Journal lifecycle and lookup errors.
var (
	ErrJournalDetached = errors.New("journal is detached")
	ErrAlreadyAttached = errors.New("journal is already attached")
	ErrSessionNotFound = errors.New("session not found")
)
