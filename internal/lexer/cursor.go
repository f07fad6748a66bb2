package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"shunt/internal/token"
)

// Cursor is a byte position in the expression being scanned.
type Cursor struct {
	Src string
	Off uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src string) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("expression length overflow: %w", err))
	}
	return Cursor{Src: src, Limit: limit}
}

// EOF reports whether the whole expression has been consumed.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Bump advances one byte and returns the byte it consumed.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Advance moves the cursor forward by n bytes, clamped to Limit.
func (c *Cursor) Advance(n int) {
	un, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("advance overflow: %w", err))
	}
	if c.Off+un > c.Limit {
		c.Off = c.Limit
		return
	}
	c.Off += un
}

// Mark is a saved offset used to build the span of a lexeme.
type Mark uint32

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom returns the span from m to the current position.
func (c *Cursor) SpanFrom(m Mark) token.Span {
	return token.Span{Start: uint32(m), End: c.Off}
}

// Text returns the source text covered by sp.
func (c *Cursor) Text(sp token.Span) string {
	return c.Src[sp.Start:sp.End]
}
