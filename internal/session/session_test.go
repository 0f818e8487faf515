package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/rpncalc/pkg/types"
)

// scriptReader replays a fixed list of lines and errors.
type scriptReader struct {
	steps   []step
	prompts []string
	closed  bool
}

type step struct {
	line string
	err  error
}

func lines(ls ...string) *scriptReader {
	r := &scriptReader{}
	for _, l := range ls {
		r.steps = append(r.steps, step{line: l})
	}
	return r
}

func (r *scriptReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.steps) == 0 {
		return "", io.EOF
	}
	st := r.steps[0]
	r.steps = r.steps[1:]
	return st.line, st.err
}

func (r *scriptReader) Close() error {
	r.closed = true
	return nil
}

// memJournal is an in-memory types.Journal.
type memJournal struct {
	sessions  []types.Session
	entries   []types.Entry
	recordErr error
}

func (j *memJournal) Attach(types.Config) error { return nil }
func (j *memJournal) Detach() error             { return nil }

func (j *memJournal) StartSession(mode string) (types.Session, error) {
	s := types.Session{SessionID: "session-" + mode, Mode: mode}
	j.sessions = append(j.sessions, s)
	return s, nil
}

func (j *memJournal) Record(e types.Entry) (types.Entry, error) {
	if j.recordErr != nil {
		return types.Entry{}, j.recordErr
	}
	e.Seq = len(j.entries) + 1
	j.entries = append(j.entries, e)
	return e, nil
}

func (j *memJournal) Sessions() ([]types.Session, error) { return j.sessions, nil }

func (j *memJournal) Entries(string) ([]types.Entry, error) { return j.entries, nil }

func (j *memJournal) LastSnapshot() ([]float64, bool, error) {
	if len(j.entries) == 0 {
		return nil, false, nil
	}
	return j.entries[len(j.entries)-1].Stack, true, nil
}

func (j *memJournal) Export(string) error { return nil }

func TestRun_Batch(t *testing.T) {
	var out bytes.Buffer
	s := New(&out, Config{Precision: -1})
	r := lines("3 4 +", "5 bogus 6", "10 0 /")

	require.NoError(t, s.Run(context.Background(), r))

	want := strings.Join([]string{
		"error",
		"error - division by zero",
		"7.000000",
		"5.000000",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
	assert.Equal(t, []string{"", "", "", ""}, r.prompts)
}

func TestRun_Interactive(t *testing.T) {
	var out bytes.Buffer
	s := New(&out, Config{Interactive: true, Precision: 2})
	r := lines("1 2", "+", "")

	require.NoError(t, s.Run(context.Background(), r))

	want := strings.Join([]string{
		"1.00", "2.00", // after "1 2"
		"3.00", // after "+"
		"error", "3.00", // empty line is an error
		"", // newline at end of input
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, []string{Prompt, Prompt, Prompt, Prompt}, r.prompts)
}

func TestRun_QuitSkipsFinalPrint(t *testing.T) {
	var out bytes.Buffer
	s := New(&out, Config{})
	r := lines("1 2 +", "4 quit 5", "6")

	require.NoError(t, s.Run(context.Background(), r))
	assert.Empty(t, out.String())
	assert.Equal(t, []float64{3, 4}, s.Stack().Values())
	assert.Len(t, r.steps, 1, "lines after quit are not read")
}

func TestRun_MultipleDivisionErrors(t *testing.T) {
	var out bytes.Buffer
	s := New(&out, Config{Precision: DefaultPrecision})
	require.NoError(t, s.Run(context.Background(), lines("1 0 / 2 0 / 3")))
	assert.Equal(t, "error - division by zero\nerror - division by zero\n3.000000\n", out.String())
}

func TestRun_AbortedLineIsSkipped(t *testing.T) {
	var out bytes.Buffer
	s := New(&out, Config{Interactive: true, Precision: DefaultPrecision})
	r := &scriptReader{steps: []step{
		{err: ErrAborted},
		{line: "8"},
	}}

	require.NoError(t, s.Run(context.Background(), r))
	assert.Equal(t, "8.000000\n\n", out.String())
}

func TestRun_ReadError(t *testing.T) {
	boom := errors.New("tty gone")
	s := New(io.Discard, Config{})
	err := s.Run(context.Background(), &scriptReader{steps: []step{{err: boom}}})
	assert.ErrorIs(t, err, boom)
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(io.Discard, Config{})
	err := s.Run(ctx, lines("1"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Resume(t *testing.T) {
	var out bytes.Buffer
	s := New(&out, Config{Resume: []float64{2, 3}, SegmentCapacity: 1, Precision: DefaultPrecision})
	require.NoError(t, s.Run(context.Background(), lines("0*")))
	assert.Equal(t, "6.000000\n", out.String())
	assert.Equal(t, 1, s.Stack().Capacity())
}

func TestRun_Journal(t *testing.T) {
	j := &memJournal{}
	s := New(io.Discard, Config{Journal: j})

	require.NoError(t, s.Run(context.Background(), lines("3 4 +", "x", "10 0 /", "quit")))

	assert.Equal(t, "session-batch", s.ID())
	require.Len(t, j.entries, 4)
	assert.Equal(t, "completed", j.entries[0].Outcome)
	assert.Equal(t, []float64{7}, j.entries[0].Stack)
	assert.Equal(t, "partial_failure", j.entries[1].Outcome)
	assert.NotEmpty(t, j.entries[1].Error)
	assert.Equal(t, "division by zero", j.entries[2].Error)
	assert.Equal(t, []float64{7}, j.entries[2].Stack)
	assert.Equal(t, "quit", j.entries[3].Outcome)
}

func TestRun_JournalFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	j := &memJournal{recordErr: errors.New("disk full")}
	var out bytes.Buffer
	s := New(&out, Config{Journal: j, Logger: zap.New(core), Precision: DefaultPrecision})

	require.NoError(t, s.Run(context.Background(), lines("1 1 +")))
	assert.Equal(t, "2.000000\n", out.String())

	warnings := logs.FilterMessage("journal record failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "1 1 +", warnings[0].ContextMap()["line"])
}
