package engine

import (
	"fmt"

	"shunt/internal/lexer"
	"shunt/internal/token"
)

// Run tokenizes expr and converts it in the given mode.
// On a parenthesis mismatch it returns a *MismatchedParenthesesError and no
// result: a partial trace is never exposed.
func Run(expr string, mode Mode) (*Result, error) {
	return RunTokens(lexer.Tokenize(expr), mode)
}

// RunTokens converts a token sequence in reading order, as produced by the lexer.
func RunTokens(tokens []token.Token, mode Mode) (*Result, error) {
	if mode > Prefix {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(mode))
	}
	if err := validate(tokens); err != nil {
		return nil, err
	}
	dir := directionOf(mode)
	r := newRecorder(dir, dir.prepare(tokens))
	if err := r.convert(); err != nil {
		return nil, err
	}
	return r.result(), nil
}

func validate(tokens []token.Token) error {
	seen := make(map[string]struct{}, len(tokens))
	for i, t := range tokens {
		if t.Kind < token.Operand || t.Kind > token.RightParen {
			return fmt.Errorf("%w: token %d has kind %v", ErrInvalidTokens, i, t.Kind)
		}
		if t.ID == "" {
			return fmt.Errorf("%w: token %d has no id", ErrInvalidTokens, i)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidTokens, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func (r *recorder) convert() error {
	r.snapshot(startTitle, startDetail(len(r.tokens)), "")

	for r.next < len(r.tokens) {
		t := r.tokens[r.next]
		r.snapshot(readTitle(t), readDetail(t), t.ID)

		switch t.Kind {
		case token.Operand:
			r.emitOperand(outputTitle(t), operandDetail(t))
		case token.LeftParen:
			r.pushHead(pushTitle(t), openDetail(t))
		case token.RightParen:
			if err := r.closeGroup(t); err != nil {
				return err
			}
		case token.Operator:
			r.pushOperator(t)
		}
	}

	for {
		top, ok := r.top()
		if !ok {
			break
		}
		if top.Kind == token.LeftParen {
			return r.mismatch(ParenRight, top)
		}
		r.popToOutput(popTitle(top), drainDetail(top))
	}

	r.snapshot(finishedTitle, r.finishedDetail(), "")
	return nil
}

// closeGroup pops operators until the '(' matching t and discards both.
func (r *recorder) closeGroup(t token.Token) error {
	for {
		top, ok := r.top()
		if !ok {
			return r.mismatch(ParenLeft, t)
		}
		if top.Kind == token.LeftParen {
			r.discardPair(discardTitle, discardDetail(top, t))
			return nil
		}
		r.popToOutput(popTitle(top), groupPopDetail(top, t))
	}
}

// pushOperator pops every operator that must leave before t, then pushes t.
func (r *recorder) pushOperator(t token.Token) {
	for {
		top, ok := r.top()
		if !ok || top.Kind == token.LeftParen {
			break
		}
		higher := top.Precedence > t.Precedence
		tie := top.Precedence == t.Precedence && r.dir.popOnTie(t)
		if !higher && !tie {
			break
		}
		r.popToOutput(popTitle(top), operatorPopDetail(top, t, higher, r.dir))
	}
	below, _ := r.top()
	r.pushHead(pushTitle(t), pushDetail(t, below))
}

func (r *recorder) mismatch(seen Paren, at token.Token) error {
	return &MismatchedParenthesesError{
		Missing: r.dir.missing(seen),
		TokenID: at.ID,
		Span:    at.Span,
	}
}
