package engine

import (
	"maps"

	"shunt/internal/token"
)

// recorder holds the mutable state of one run. Every move goes through a
// method that relocates, renumbers and records a step in one call, so no
// step can observe a zone with a gap.
type recorder struct {
	dir    direction
	tokens []token.Token
	next   int // tokens[next:] are still in the input zone
	stack  []token.Token
	output []token.Token
	dumped []token.Token
	locs   map[string]Location
	steps  []Step
}

func newRecorder(dir direction, tokens []token.Token) *recorder {
	r := &recorder{
		dir:    dir,
		tokens: tokens,
		stack:  make([]token.Token, 0, len(tokens)),
		output: make([]token.Token, 0, len(tokens)),
		locs:   make(map[string]Location, len(tokens)),
		steps:  make([]Step, 0, 2*len(tokens)+2),
	}
	r.renumber(ZoneInput)
	return r
}

// renumber rewrites the position of every token currently in zone z.
func (r *recorder) renumber(z Zone) {
	switch z {
	case ZoneInput:
		for i, t := range r.tokens[r.next:] {
			r.locs[t.ID] = Location{Zone: ZoneInput, Position: i}
		}
	case ZoneStack:
		for i, t := range r.stack {
			r.locs[t.ID] = Location{Zone: ZoneStack, Position: i}
		}
	case ZoneOutput:
		for i, t := range r.output {
			r.locs[t.ID] = Location{Zone: ZoneOutput, Position: i}
		}
	case ZoneDiscarded:
		for _, t := range r.dumped {
			r.locs[t.ID] = Location{Zone: ZoneDiscarded}
		}
	}
}

func (r *recorder) snapshot(title, detail, activeID string) {
	r.steps = append(r.steps, Step{
		Index:         len(r.steps),
		Title:         title,
		Detail:        detail,
		Locations:     maps.Clone(r.locs),
		ActiveTokenID: activeID,
	})
}

func (r *recorder) top() (token.Token, bool) {
	if len(r.stack) == 0 {
		return token.Token{}, false
	}
	return r.stack[len(r.stack)-1], true
}

// consume takes the token at the head of the input.
func (r *recorder) consume() token.Token {
	t := r.tokens[r.next]
	r.next++
	r.renumber(ZoneInput)
	return t
}

// emitOperand moves the input head to the output queue.
func (r *recorder) emitOperand(title, detail string) {
	t := r.consume()
	r.output = append(r.output, t)
	r.renumber(ZoneOutput)
	r.snapshot(title, detail, t.ID)
}

// pushHead moves the input head onto the stack.
func (r *recorder) pushHead(title, detail string) {
	t := r.consume()
	r.stack = append(r.stack, t)
	r.renumber(ZoneStack)
	r.snapshot(title, detail, t.ID)
}

// popToOutput pops the stack top onto the output queue.
func (r *recorder) popToOutput(title, detail string) token.Token {
	t := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.output = append(r.output, t)
	r.renumber(ZoneStack)
	r.renumber(ZoneOutput)
	r.snapshot(title, detail, t.ID)
	return t
}

// discardPair drops the '(' on the stack top together with the ')' at the input head.
func (r *recorder) discardPair(title, detail string) {
	open := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	closing := r.consume()
	r.dumped = append(r.dumped, open, closing)
	r.renumber(ZoneStack)
	r.renumber(ZoneDiscarded)
	r.snapshot(title, detail, closing.ID)
}

func (r *recorder) result() *Result {
	return &Result{
		Tokens: r.tokens,
		Steps:  r.steps,
		Mode:   r.dir.mode,
	}
}
