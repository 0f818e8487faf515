package rpn

import (
	"errors"
	"strings"
)

// Outcome is how evaluation of a line ended.
type Outcome int

// Evaluation outcomes.
const (
	// Completed means every token of the line was applied.
	Completed Outcome = iota
	// PartialFailure means a token could not be classified. Tokens before
	// it were applied and stay applied.
	PartialFailure
	// QuitRequested means the line contained "quit"; the caller should end
	// the session.
	QuitRequested
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case PartialFailure:
		return "partial_failure"
	case QuitRequested:
		return "quit"
	}
	return "unknown"
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, bool) {
	for _, o := range []Outcome{Completed, PartialFailure, QuitRequested} {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// Evaluate applies every token of line to s in order.
//
// An empty line, or a token Classify rejects, ends evaluation with
// PartialFailure and a *TokenError. Division by zero does not end the line:
// it is collected and evaluation moves on to the next token. The returned
// error joins every error met, so errors.Is works for each sentinel.
func Evaluate(s *Stack, line string) (Outcome, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return PartialFailure, &TokenError{Err: ErrEmptyLine}
	}

	var errs []error
	for i, tok := range tokens {
		cmd, err := Classify(tok)
		if err != nil {
			errs = append(errs, &TokenError{Token: tok, Index: i, Err: err})
			return PartialFailure, join(errs)
		}

		switch c := cmd.(type) {
		case Number:
			s.Push(c.Value)
		case Operator:
			if err := Apply(s, c.Kind, c.Repeat); err != nil {
				errs = append(errs, err)
			}
		case Drop:
			s.Pop()
		case Clear:
			s.Clear()
		case Quit:
			return QuitRequested, join(errs)
		}
	}
	return Completed, join(errs)
}

// join returns nil, the only error, or errors.Join of all of them.
func join(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
