package engine

import (
	"errors"
	"fmt"

	"shunt/internal/token"
)

// ErrMismatchedParentheses matches every MismatchedParenthesesError via errors.Is.
var ErrMismatchedParentheses = errors.New("mismatched parentheses")

// ErrInvalidTokens is returned by RunTokens for sequences the lexer could not have produced.
var ErrInvalidTokens = errors.New("invalid token sequence")

// Paren names the side of a parenthesis pair.
type Paren uint8

const (
	ParenLeft Paren = iota + 1
	ParenRight
)

func (p Paren) String() string {
	switch p {
	case ParenLeft:
		return "'('"
	case ParenRight:
		return "')'"
	default:
		return "'?'"
	}
}

func (p Paren) flip() Paren {
	if p == ParenLeft {
		return ParenRight
	}
	return ParenLeft
}

// MismatchedParenthesesError reports a parenthesis without a partner.
// Missing is the side that would have to be added to the expression as
// written by the user, in either mode: the prefix scan runs over the
// reversed, paren-swapped sequence, so the side it sees is flipped back.
// "( A + B" reports a missing ')' in both modes. Span locates the
// unmatched parenthesis.
type MismatchedParenthesesError struct {
	Missing Paren
	TokenID string
	Span    token.Span
}

func (e *MismatchedParenthesesError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrMismatchedParentheses, e.Missing)
}

// Is makes errors.Is(err, ErrMismatchedParentheses) hold for both sides.
func (e *MismatchedParenthesesError) Is(target error) bool {
	return target == ErrMismatchedParentheses
}
