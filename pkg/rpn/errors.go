package rpn

import (
	"errors"
	"fmt"
)

// Evaluation errors.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrEmptyLine      = fmt.Errorf("empty line: %w", ErrInvalidToken)
	ErrDivisionByZero = errors.New("division by zero")
)

// TokenError reports the token that stopped evaluation of a line.
type TokenError struct {
	Token string // Raw token text; empty for an empty line.
	Index int    // Zero-based position of the token in the line.
	Err   error  // ErrInvalidToken or ErrEmptyLine.
}

func (e *TokenError) Error() string {
	if e.Token == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("token %d %q: %v", e.Index, e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}
