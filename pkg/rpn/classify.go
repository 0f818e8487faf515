package rpn

import (
	"errors"
	"strconv"
)

// keywords are matched before any other rule.
var keywords = map[string]Command{
	"drop":  Drop{},
	"clear": Clear{},
	"quit":  Quit{},
}

// Classify turns one token into a Command. Rules are tried in order and the
// first match wins:
//
//  1. the keywords "drop", "clear" and "quit";
//  2. a leading '+' or '-': alone it is an operator, otherwise the rest must
//     be an unsigned decimal and the token is a signed number;
//  3. a leading '*' or '/': only valid alone, as an operator;
//  4. an unsigned decimal number, or a non-negative integer followed by an
//     operator character, which is that operator with a repeat count.
//
// Anything else returns ErrInvalidToken.
func Classify(token string) (Command, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	if cmd, ok := keywords[token]; ok {
		return cmd, nil
	}

	switch first := token[0]; first {
	case '+', '-':
		if len(token) == 1 {
			k, _ := kindOf(first)
			return Operator{Kind: k, Repeat: 1}, nil
		}
		if !isDecimal(token[1:]) {
			return nil, ErrInvalidToken
		}
		return parseNumber(token)
	case '*', '/':
		if len(token) > 1 {
			return nil, ErrInvalidToken
		}
		k, _ := kindOf(first)
		return Operator{Kind: k, Repeat: 1}, nil
	}

	if isDecimal(token) {
		return parseNumber(token)
	}

	end := len(token) - 1
	k, ok := kindOf(token[end])
	if !ok || !isInteger(token[:end]) {
		return nil, ErrInvalidToken
	}
	n, err := strconv.Atoi(token[:end])
	if err != nil {
		// Only overflow reaches here.
		return nil, ErrInvalidToken
	}
	return Operator{Kind: k, Repeat: n}, nil
}

func parseNumber(token string) (Command, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, ErrInvalidToken
	}
	// Out of range values saturate to ±Inf or 0.
	return Number{Value: v}, nil
}

// isDecimal reports whether s is digits with at most one '.', and at least
// one digit.
func isDecimal(s string) bool {
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.' && !dot:
			dot = true
		case isDigit(c):
			digits++
		default:
			return false
		}
	}
	return digits > 0
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
