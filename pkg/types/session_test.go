package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/rpncalc/pkg/rpn"
)

func TestNewEntry(t *testing.T) {
	e := NewEntry("s1", "10 0 /", rpn.Completed, rpn.ErrDivisionByZero, nil)
	assert.Equal(t, "s1", e.SessionID)
	assert.Equal(t, "completed", e.Outcome)
	assert.Equal(t, "division by zero", e.Error)
	assert.NotNil(t, e.Stack)
	assert.NoError(t, e.Validate())

	e = NewEntry("s1", "3 4 +", rpn.Completed, nil, []float64{7})
	assert.Empty(t, e.Error)
	assert.Equal(t, []float64{7}, e.Stack)
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{"missing session", Entry{Outcome: "completed"}, ErrInvalidSessionID},
		{"unknown outcome", Entry{SessionID: "s", Outcome: "done"}, ErrInvalidOutcome},
		{"partial failure", Entry{SessionID: "s", Outcome: "partial_failure"}, nil},
		{"quit", Entry{SessionID: "s", Outcome: "quit"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode(ModeInteractive))
	assert.True(t, ValidMode(ModeBatch))
	assert.False(t, ValidMode("daemon"))
}
