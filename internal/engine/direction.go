package engine

import (
	"slices"

	"shunt/internal/token"
)

// direction is the policy that separates postfix from prefix conversion.
// The pop/push core is shared; only the transforms around it and the tie-break differ.
type direction struct {
	mode Mode
	// reversed scans the expression right to left by reversing it up front.
	reversed bool
}

func directionOf(mode Mode) direction {
	return direction{mode: mode, reversed: mode == Prefix}
}

// prepare returns the sequence the core loop reads. In reverse direction
// the order is flipped and '(' and ')' trade places; ids are assigned after
// the transform so they follow the displayed order.
func (d direction) prepare(tokens []token.Token) []token.Token {
	if !d.reversed {
		return tokens
	}
	out := make([]token.Token, len(tokens))
	for i := range tokens {
		src := tokens[len(tokens)-1-i]
		value := src.Value
		switch src.Kind {
		case token.LeftParen:
			value = ")"
		case token.RightParen:
			value = "("
		}
		out[i] = token.New(i, value, src.Span)
	}
	return out
}

// popOnTie reports whether an operator of equal precedence on the stack
// must be popped before incoming is pushed.
func (d direction) popOnTie(incoming token.Token) bool {
	if d.reversed {
		return incoming.RightAssoc()
	}
	return !incoming.RightAssoc()
}

// finish turns the output queue into the canonical notation order.
func (d direction) finish(output []token.Token) []token.Token {
	out := slices.Clone(output)
	if d.reversed {
		slices.Reverse(out)
	}
	return out
}

// missing maps a side seen by the core loop back to the user's expression.
func (d direction) missing(p Paren) Paren {
	if d.reversed {
		return p.flip()
	}
	return p
}
