package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune decodes the rune at the cursor.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(lx.cursor.Src[lx.cursor.Off:])
}

func (lx *Lexer) skip(r rune, size int) {
	start := lx.cursor.Mark()
	if size == 0 {
		size = 1
	}
	lx.cursor.Advance(size)
	if unicode.IsSpace(r) {
		return
	}
	lx.report("Skipped", lx.cursor.SpanFrom(start), "character ignored")
}

func isOperandRune(r rune) bool {
	if r < utf8.RuneSelf {
		return r == '.' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
