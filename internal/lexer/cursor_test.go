package lexer

import "testing"

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor("a+")
	if c.EOF() {
		t.Fatal("expected not EOF at start")
	}
	if b := c.Bump(); b != 'a' {
		t.Fatalf("bump = %c, want a", b)
	}
	if c.Peek() != '+' {
		t.Fatalf("peek = %c, want +", c.Peek())
	}
	c.Bump()
	if !c.EOF() {
		t.Fatal("expected EOF after two bumps")
	}
	if c.Peek() != 0 || c.Bump() != 0 {
		t.Fatal("peek/bump past EOF must return 0")
	}
}

func TestCursorMarkAndSpan(t *testing.T) {
	c := NewCursor("abc*d")
	m := c.Mark()
	c.Advance(3)
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 3 {
		t.Fatalf("span = %v, want 0-3", sp)
	}
	if got := c.Text(sp); got != "abc" {
		t.Fatalf("text = %q, want abc", got)
	}
	c.Advance(100)
	if c.Off != c.Limit {
		t.Fatalf("advance must clamp to limit, off=%d limit=%d", c.Off, c.Limit)
	}
}
