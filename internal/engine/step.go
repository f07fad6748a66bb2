package engine

import (
	"cmp"
	"slices"
	"strings"

	"shunt/internal/token"
)

// Step is one recorded instant of a run. Steps are never modified after
// they are recorded, and Locations is a private copy.
type Step struct {
	Index     int                 `json:"index" yaml:"index" msgpack:"index"`
	Title     string              `json:"title" yaml:"title" msgpack:"title"`
	Detail    string              `json:"detail" yaml:"detail" msgpack:"detail"`
	Locations map[string]Location `json:"locations" yaml:"locations" msgpack:"locations"`
	// ActiveTokenID is empty for the Start and Finished steps.
	ActiveTokenID string `json:"activeTokenId,omitempty" yaml:"activeTokenId,omitempty" msgpack:"activeTokenId,omitempty"`
}

// Result is the complete trace of one conversion. The caller owns it.
// In Prefix mode Tokens are the reversed, parenthesis-swapped tokens the
// steps refer to.
type Result struct {
	Tokens []token.Token `json:"tokens" yaml:"tokens" msgpack:"tokens"`
	Steps  []Step        `json:"steps" yaml:"steps" msgpack:"steps"`
	Mode   Mode          `json:"mode" yaml:"mode" msgpack:"mode"`
}

// Token looks a token up by id.
func (r *Result) Token(id string) (token.Token, bool) {
	for _, t := range r.Tokens {
		if t.ID == id {
			return t, true
		}
	}
	return token.Token{}, false
}

// ZoneAt returns the tokens in zone z at step i ordered by position.
// It is the view a renderer needs to draw one frame.
func (r *Result) ZoneAt(i int, z Zone) []token.Token {
	if i < 0 || i >= len(r.Steps) {
		return nil
	}
	locs := r.Steps[i].Locations
	var out []token.Token
	for _, t := range r.Tokens {
		if loc, ok := locs[t.ID]; ok && loc.Zone == z {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b token.Token) int {
		return cmp.Compare(locs[a.ID].Position, locs[b.ID].Position)
	})
	return out
}

// Final returns the last step.
func (r *Result) Final() Step {
	if len(r.Steps) == 0 {
		return Step{}
	}
	return r.Steps[len(r.Steps)-1]
}

// Output returns the output queue of the last step in emission order.
// For Prefix this is still the reversed form; see Notation.
func (r *Result) Output() []token.Token {
	return r.ZoneAt(len(r.Steps)-1, ZoneOutput)
}

// Notation returns the converted expression with single spaces between
// tokens. For Prefix the output queue is reversed here.
func (r *Result) Notation() string {
	out := directionOf(r.Mode).finish(r.Output())
	return strings.Join(token.Values(out), " ")
}
