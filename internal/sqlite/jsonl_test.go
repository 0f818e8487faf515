package sqlite

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rpncalc/pkg/rpn"
	"github.com/mesh-intelligence/rpncalc/pkg/types"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestWriteJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	records := []json.RawMessage{
		json.RawMessage(`{"a":1}`),
		json.RawMessage(`{"b":2}`),
	}
	require.NoError(t, writeJSONL(path, records))
	assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, readLines(t, path))

	// Overwrite replaces the whole file.
	require.NoError(t, writeJSONL(path, records[:1]))
	assert.Equal(t, []string{`{"a":1}`}, readLines(t, path))

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".jsonl-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files left behind")
}

func TestWriteJSONL_MissingDir(t *testing.T) {
	err := writeJSONL(filepath.Join(t.TempDir(), "missing", "out.jsonl"), nil)
	assert.Error(t, err)
}

func TestBackend_Export(t *testing.T) {
	b := attachedBackend(t, t.TempDir())

	s, err := b.StartSession(types.ModeBatch)
	require.NoError(t, err)
	_, err = b.Record(types.NewEntry(s.SessionID, "10 0 /", rpn.Completed, rpn.ErrDivisionByZero, nil))
	require.NoError(t, err)
	_, err = b.Record(types.NewEntry(s.SessionID, "2 3 *", rpn.Completed, nil, []float64{6}))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "journal.jsonl")
	require.NoError(t, b.Export(path))

	lines := readLines(t, path)
	require.Len(t, lines, 2)

	var first, second types.Entry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, s.SessionID, first.SessionID)
	assert.Equal(t, "division by zero", first.Error)
	assert.Equal(t, []float64{}, first.Stack)
	assert.Equal(t, 2, second.Seq)
	assert.Equal(t, []float64{6}, second.Stack)
}
