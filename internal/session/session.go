// Package session runs the calculator read loop: it pulls lines from a
// LineReader, evaluates them against one operand stack, reports errors,
// prints the stack and records each line in an optional journal.
//
// Interactive sessions prompt with "> " and print the whole stack after
// every line. Batch sessions print only errors while reading and the stack
// once when input ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/rpncalc/pkg/rpn"
	"github.com/mesh-intelligence/rpncalc/pkg/types"
)

// Prompt is shown before each interactive line.
const Prompt = "> "

// Messages printed for evaluation errors.
const (
	msgError          = "error"
	msgDivisionByZero = "error - division by zero"
)

// Config controls a Session.
type Config struct {
	// Interactive selects interactive framing; false means batch.
	Interactive bool

	// Precision is the number of decimals printed per value; negative
	// selects DefaultPrecision.
	Precision int

	// SegmentCapacity sizes the stack segments; zero or less selects
	// rpn.DefaultSegmentCapacity.
	SegmentCapacity int

	// Journal records evaluated lines when non-nil. It must be attached.
	Journal types.Journal

	// Resume values are pushed onto the stack before the first line.
	Resume []float64

	// Logger receives diagnostics; nil disables them.
	Logger *zap.Logger
}

// Session owns the operand stack of one calculator run.
type Session struct {
	cfg       Config
	stack     *rpn.Stack
	out       io.Writer
	log       *zap.Logger
	sessionID string
}

// New creates a session that writes its output to out.
func New(out io.Writer, cfg Config) *Session {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	stack := rpn.NewStack(cfg.SegmentCapacity)
	for _, v := range cfg.Resume {
		stack.Push(v)
	}
	return &Session{
		cfg:   cfg,
		stack: stack,
		out:   out,
		log:   log,
	}
}

// Stack returns the session's operand stack.
func (s *Session) Stack() *rpn.Stack {
	return s.stack
}

// ID returns the journal session ID, or "" when no journal is in use or
// Run has not started.
func (s *Session) ID() string {
	return s.sessionID
}

func (s *Session) mode() string {
	if s.cfg.Interactive {
		return types.ModeInteractive
	}
	return types.ModeBatch
}

// Run reads and evaluates lines until r is exhausted, a line asks to quit,
// or ctx is done. It returns nil on end of input and on quit.
func (s *Session) Run(ctx context.Context, r LineReader) error {
	if s.cfg.Journal != nil {
		js, err := s.cfg.Journal.StartSession(s.mode())
		if err != nil {
			return fmt.Errorf("start journal session: %w", err)
		}
		s.sessionID = js.SessionID
	}
	s.log.Debug("session started",
		zap.String("mode", s.mode()),
		zap.String("session_id", s.sessionID),
		zap.Int("resumed", len(s.cfg.Resume)),
		zap.Int("segment_capacity", s.stack.Capacity()))

	prompt := ""
	if s.cfg.Interactive {
		prompt = Prompt
	}

	lines := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.ReadLine(prompt)
		if errors.Is(err, ErrAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			s.log.Debug("end of input", zap.Int("lines", lines))
			return s.finish()
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		lines++

		outcome, evalErr := rpn.Evaluate(s.stack, line)
		if err := s.report(outcome, evalErr); err != nil {
			return err
		}
		s.record(line, outcome, evalErr)

		if outcome == rpn.QuitRequested {
			s.log.Debug("quit requested", zap.Int("lines", lines))
			return nil
		}
		if s.cfg.Interactive {
			if err := s.printStack(); err != nil {
				return err
			}
		}
	}
}

// report prints one message per division by zero and one for a rejected
// token.
func (s *Session) report(outcome rpn.Outcome, err error) error {
	if err == nil {
		return nil
	}
	for range countDivisionByZero(err) {
		if _, werr := fmt.Fprintln(s.out, msgDivisionByZero); werr != nil {
			return werr
		}
	}
	if outcome == rpn.PartialFailure {
		s.log.Debug("line rejected", zap.Error(err))
		if _, werr := fmt.Fprintln(s.out, msgError); werr != nil {
			return werr
		}
	}
	return nil
}

// record stores the line in the journal. Journal failures are logged and
// do not end the session.
func (s *Session) record(line string, outcome rpn.Outcome, err error) {
	if s.cfg.Journal == nil {
		return
	}
	entry := types.NewEntry(s.sessionID, line, outcome, err, s.stack.Values())
	if _, rerr := s.cfg.Journal.Record(entry); rerr != nil {
		s.log.Warn("journal record failed", zap.String("line", line), zap.Error(rerr))
	}
}

func (s *Session) finish() error {
	if s.cfg.Interactive {
		_, err := fmt.Fprintln(s.out)
		return err
	}
	return s.printStack()
}

func (s *Session) printStack() error {
	return Render(s.out, s.stack.All(), s.cfg.Precision)
}

// countDivisionByZero counts ErrDivisionByZero leaves in an error tree
// built with errors.Join.
func countDivisionByZero(err error) int {
	switch e := err.(type) {
	case nil:
		return 0
	case interface{ Unwrap() []error }:
		n := 0
		for _, inner := range e.Unwrap() {
			n += countDivisionByZero(inner)
		}
		return n
	}
	if errors.Is(err, rpn.ErrDivisionByZero) {
		return 1
	}
	return 0
}
