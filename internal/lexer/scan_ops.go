package lexer

import "shunt/internal/token"

// scanSymbol consumes one of + - * / ^ ( ). There are no multi-byte operators.
func (lx *Lexer) scanSymbol() token.Span {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.cursor.SpanFrom(start)
}
