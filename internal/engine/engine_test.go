package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shunt/internal/engine"
	"shunt/internal/testkit"
	"shunt/internal/token"
)

func TestRunKnownConversions(t *testing.T) {
	cases := []struct {
		name string
		expr string
		mode engine.Mode
		want string
	}{
		{"precedence and group", "A + B * C - ( D / E )", engine.Postfix, "A B C * + D E / -"},
		{"right assoc caret", "A ^ B ^ C", engine.Postfix, "A B C ^ ^"},
		{"left assoc minus", "A - B - C", engine.Postfix, "A B - C -"},
		{"nested groups", "( ( A + B ) * ( C - D ) ) ^ E", engine.Postfix, "A B + C D - * E ^"},
		{"no spaces", "a1+b2*3.5", engine.Postfix, "a1 b2 3.5 * +"},
		{"single operand", "X", engine.Postfix, "X"},
		{"prefix precedence and group", "A + B * C - ( D / E )", engine.Prefix, "- + A * B C / D E"},
		{"prefix right assoc caret", "A ^ B ^ C", engine.Prefix, "^ A ^ B C"},
		{"prefix left assoc minus", "A - B - C", engine.Prefix, "- - A B C"},
		{"prefix mixed tie", "A / B * C", engine.Prefix, "* / A B C"},
		{"prefix group", "( A + B ) * C", engine.Prefix, "* + A B C"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.Run(tc.expr, tc.mode)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Notation())
			assert.Equal(t, tc.mode, res.Mode)
			require.NoError(t, testkit.CheckTraceInvariants(res))
		})
	}
}

func TestRunEmptyInput(t *testing.T) {
	for _, expr := range []string{"", "   ", "= ; ,"} {
		res, err := engine.Run(expr, engine.Postfix)
		require.NoError(t, err)
		assert.Empty(t, res.Tokens)
		require.Len(t, res.Steps, 2)
		assert.Equal(t, "Start", res.Steps[0].Title)
		assert.Equal(t, "Finished", res.Steps[1].Title)
		assert.Empty(t, res.Steps[0].ActiveTokenID)
		assert.Equal(t, "", res.Notation())
	}
}

func TestRunStepSequenceForSimpleSum(t *testing.T) {
	res, err := engine.Run("A + B", engine.Postfix)
	require.NoError(t, err)

	titles := make([]string, len(res.Steps))
	for i, st := range res.Steps {
		titles[i] = st.Title
	}
	assert.Equal(t, []string{
		"Start",
		"Read 'A'", "Output 'A'",
		"Read '+'", "Push '+'",
		"Read 'B'", "Output 'B'",
		"Pop '+'",
		"Finished",
	}, titles)

	// the read step leaves the token where it was
	read := res.Steps[1]
	assert.Equal(t, "0-A", read.ActiveTokenID)
	assert.Equal(t, engine.Location{Zone: engine.ZoneInput, Position: 0}, read.Locations["0-A"])
	assert.Equal(t, engine.Location{Zone: engine.ZoneInput, Position: 1}, read.Locations["1-+"])

	// after the move the rest of the input is renumbered
	out := res.Steps[2]
	assert.Equal(t, engine.Location{Zone: engine.ZoneOutput, Position: 0}, out.Locations["0-A"])
	assert.Equal(t, engine.Location{Zone: engine.ZoneInput, Position: 0}, out.Locations["1-+"])
	assert.Equal(t, engine.Location{Zone: engine.ZoneInput, Position: 1}, out.Locations["2-B"])
}

func TestRunParenthesesAreDiscarded(t *testing.T) {
	res, err := engine.Run("( A )", engine.Postfix)
	require.NoError(t, err)

	final := res.Final()
	assert.Equal(t, engine.Location{Zone: engine.ZoneDiscarded}, final.Locations["0-("])
	assert.Equal(t, engine.Location{Zone: engine.ZoneDiscarded}, final.Locations["2-)"])
	assert.Equal(t, engine.Location{Zone: engine.ZoneOutput}, final.Locations["1-A"])

	var discard *engine.Step
	for i := range res.Steps {
		if res.Steps[i].Title == "Discard parentheses" {
			discard = &res.Steps[i]
		}
	}
	require.NotNil(t, discard)
	assert.Equal(t, "2-)", discard.ActiveTokenID)
}

func TestRunMismatchedParentheses(t *testing.T) {
	cases := []struct {
		expr    string
		mode    engine.Mode
		missing engine.Paren
		span    token.Span
	}{
		{"( A + B", engine.Postfix, engine.ParenRight, token.Span{Start: 0, End: 1}},
		{"A + B )", engine.Postfix, engine.ParenLeft, token.Span{Start: 6, End: 7}},
		{")", engine.Postfix, engine.ParenLeft, token.Span{Start: 0, End: 1}},
		{"( ( A )", engine.Postfix, engine.ParenRight, token.Span{Start: 0, End: 1}},
		// reported against the expression as written, not the reversed scan
		{"( A + B", engine.Prefix, engine.ParenRight, token.Span{Start: 0, End: 1}},
		{"A + B )", engine.Prefix, engine.ParenLeft, token.Span{Start: 6, End: 7}},
	}

	for _, tc := range cases {
		t.Run(tc.mode.String()+" "+tc.expr, func(t *testing.T) {
			res, err := engine.Run(tc.expr, tc.mode)
			require.Error(t, err)
			assert.Nil(t, res, "no partial trace may be returned")
			require.ErrorIs(t, err, engine.ErrMismatchedParentheses)

			var mpe *engine.MismatchedParenthesesError
			require.ErrorAs(t, err, &mpe)
			assert.Equal(t, tc.missing, mpe.Missing)
			assert.Equal(t, tc.span, mpe.Span)
			assert.Equal(t, "mismatched parentheses: missing "+tc.missing.String(), err.Error())
		})
	}
}

func TestRunIsIdempotent(t *testing.T) {
	for _, mode := range []engine.Mode{engine.Postfix, engine.Prefix} {
		first, err := engine.Run("A * ( B + C ) ^ D ^ E / F", mode)
		require.NoError(t, err)
		second, err := engine.Run("A * ( B + C ) ^ D ^ E / F", mode)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestStepsAreIndependentCopies(t *testing.T) {
	res, err := engine.Run("A + B", engine.Postfix)
	require.NoError(t, err)

	res.Steps[1].Locations["0-A"] = engine.Location{Zone: engine.ZoneDiscarded}
	assert.Equal(t, engine.ZoneInput, res.Steps[0].Locations["0-A"].Zone)
	assert.Equal(t, engine.ZoneOutput, res.Steps[2].Locations["0-A"].Zone)
}

func TestPrefixTokensFollowReversedOrder(t *testing.T) {
	res, err := engine.Run("A + ( B )", engine.Prefix)
	require.NoError(t, err)

	assert.Equal(t, []string{"(", "B", ")", "+", "A"}, token.Values(res.Tokens))
	assert.Equal(t, "0-(", res.Tokens[0].ID)
	assert.Equal(t, token.LeftParen, res.Tokens[0].Kind)
	// spans keep pointing at the literal the token came from
	assert.Equal(t, token.Span{Start: 8, End: 9}, res.Tokens[0].Span)

	// the engine leaves the output queue unreversed
	assert.Equal(t, []string{"B", "A", "+"}, token.Values(res.Output()))
	assert.Equal(t, "+ A B", res.Notation())
}

func TestRunTokensRejectsForeignSequences(t *testing.T) {
	dup := []token.Token{token.New(0, "A", token.Span{}), token.New(0, "A", token.Span{})}
	_, err := engine.RunTokens(dup, engine.Postfix)
	require.ErrorIs(t, err, engine.ErrInvalidTokens)

	_, err = engine.RunTokens([]token.Token{{ID: "x", Value: "?"}}, engine.Postfix)
	require.ErrorIs(t, err, engine.ErrInvalidTokens)

	_, err = engine.RunTokens(nil, engine.Mode(7))
	require.ErrorIs(t, err, engine.ErrUnknownMode)
}

func TestParseMode(t *testing.T) {
	m, err := engine.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, engine.Postfix, m)

	m, err = engine.ParseMode(" PREFIX ")
	require.NoError(t, err)
	assert.Equal(t, engine.Prefix, m)

	_, err = engine.ParseMode("infix")
	require.ErrorIs(t, err, engine.ErrUnknownMode)
}

func TestZoneAtOrdersByPosition(t *testing.T) {
	res, err := engine.Run("A * B + C", engine.Postfix)
	require.NoError(t, err)

	// find the step right after '+' was pushed: output holds A B *
	for i, st := range res.Steps {
		if st.Title != "Push '+'" {
			continue
		}
		assert.Equal(t, []string{"A", "B", "*"}, token.Values(res.ZoneAt(i, engine.ZoneOutput)))
		assert.Equal(t, []string{"+"}, token.Values(res.ZoneAt(i, engine.ZoneStack)))
		assert.Equal(t, []string{"C"}, token.Values(res.ZoneAt(i, engine.ZoneInput)))
		return
	}
	t.Fatal("no Push '+' step recorded")
}
