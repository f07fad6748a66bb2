package lexer

import "shunt/internal/token"

// scanOperand consumes a maximal run of letters, digits and dots.
// "3.14.15" and "a.b" are single operands: the lexer does not validate numbers.
func (lx *Lexer) scanOperand() token.Span {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		r, size := lx.peekRune()
		if size == 0 || !isOperandRune(r) {
			break
		}
		lx.cursor.Advance(size)
	}
	return lx.cursor.SpanFrom(start)
}
