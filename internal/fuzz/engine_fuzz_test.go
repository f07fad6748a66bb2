package fuzztests

import (
	"errors"
	"testing"

	"shunt/internal/engine"
	"shunt/internal/lexer"
	"shunt/internal/testkit"
	"shunt/internal/token"
)

const maxFuzzInput = 1 << 12

func FuzzTokenize(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		toks := lexer.Tokenize(input)
		seen := make(map[string]bool, len(toks))
		var prevEnd uint32
		for i, tok := range toks {
			if tok.ID != token.ID(i, tok.Value) {
				t.Fatalf("token %d has id %q", i, tok.ID)
			}
			if seen[tok.ID] {
				t.Fatalf("duplicate id %q", tok.ID)
			}
			seen[tok.ID] = true
			if tok.Span.Start < prevEnd || int(tok.Span.End) > len(input) {
				t.Fatalf("token %d span %s out of order or range", i, tok.Span)
			}
			if input[tok.Span.Start:tok.Span.End] != tok.Value {
				t.Fatalf("token %d value %q does not match its span", i, tok.Value)
			}
			prevEnd = tok.Span.End
		}
	})
}

func FuzzConvert(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		for _, mode := range []engine.Mode{engine.Postfix, engine.Prefix} {
			res, err := engine.Run(input, mode)
			if err != nil {
				if !errors.Is(err, engine.ErrMismatchedParentheses) {
					t.Fatalf("%v: unexpected error %v", mode, err)
				}
				if res != nil {
					t.Fatalf("%v: result returned with error", mode)
				}
				continue
			}
			if err := testkit.CheckTraceInvariants(res); err != nil {
				t.Fatalf("%v: %v", mode, err)
			}
		}
	})
}
