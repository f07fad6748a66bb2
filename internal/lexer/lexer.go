// Package lexer splits an infix expression into tokens.
//
// A maximal run of letters, digits and '.' is one operand; each of
// + - * / ^ ( ) is its own token; every other character, whitespace
// included, is skipped. Lexing never fails.
package lexer

import (
	"shunt/internal/token"
)

type Lexer struct {
	cursor Cursor
	opts   Options
	count  int // tokens emitted so far, the index of the next token
}

func New(src string, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		opts:   opts,
	}
}

// Next returns the next token. ok is false once the input is exhausted.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	for !lx.cursor.EOF() {
		r, size := lx.peekRune()
		switch {
		case size == 1 && token.IsOperatorByte(byte(r)):
			return lx.emit(lx.scanSymbol()), true
		case isOperandRune(r):
			return lx.emit(lx.scanOperand()), true
		default:
			lx.skip(r, size)
		}
	}
	return token.Token{}, false
}

// All drains the lexer.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 8)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// Tokenize returns every token of src in order. An input without any
// recognizable characters yields an empty, non-nil slice.
func Tokenize(src string) []token.Token {
	return New(src, Options{}).All()
}

func (lx *Lexer) emit(sp token.Span) token.Token {
	tok := token.New(lx.count, lx.cursor.Text(sp), sp)
	lx.count++
	return tok
}
