package types

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/mesh-intelligence/rpncalc/pkg/rpn"
)

// Session modes.
const (
	ModeInteractive = "interactive"
	ModeBatch       = "batch"
)

// Session is one run of the calculator.
type Session struct {
	SessionID string    `json:"session_id"` // UUID v7, generated on creation.
	Mode      string    `json:"mode"`       // ModeInteractive or ModeBatch.
	StartedAt time.Time `json:"started_at"`
	Entries   int       `json:"entries"` // Number of recorded lines.
}

// Entry is one evaluated input line and the stack it left behind.
type Entry struct {
	EntryID   string    `json:"entry_id"`
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Line      string    `json:"line"`
	Outcome   string    `json:"outcome"` // rpn.Outcome.String()
	Error     string    `json:"error,omitempty"`
	Stack     []float64 `json:"stack"` // Encoded as a Snapshot.
	CreatedAt time.Time `json:"created_at"`
}

// entryJSON has Entry's fields without its methods.
type entryJSON Entry

// MarshalJSON encodes Stack as a Snapshot so non-finite values survive.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		entryJSON
		Stack Snapshot `json:"stack"`
	}{entryJSON(e), Snapshot(e.Stack)})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var aux struct {
		entryJSON
		Stack Snapshot `json:"stack"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Entry(aux.entryJSON)
	e.Stack = []float64(aux.Stack)
	return nil
}

// Entry validation errors.
var (
	ErrInvalidSessionID = errors.New("session ID must not be empty")
	ErrInvalidOutcome   = errors.New("unknown outcome")
	ErrInvalidMode      = errors.New("unknown session mode")
)

// NewEntry builds an unsaved Entry from the result of evaluating line.
func NewEntry(sessionID, line string, outcome rpn.Outcome, err error, stack []float64) Entry {
	e := Entry{
		SessionID: sessionID,
		Line:      line,
		Outcome:   outcome.String(),
		Stack:     stack,
	}
	if err != nil {
		e.Error = err.Error()
	}
	if e.Stack == nil {
		e.Stack = []float64{}
	}
	return e
}

// Validate checks the fields a caller must set before Record.
func (e Entry) Validate() error {
	if e.SessionID == "" {
		return ErrInvalidSessionID
	}
	if _, ok := rpn.ParseOutcome(e.Outcome); !ok {
		return ErrInvalidOutcome
	}
	return nil
}

// ValidMode reports whether mode is a known session mode.
func ValidMode(mode string) bool {
	return mode == ModeInteractive || mode == ModeBatch
}
