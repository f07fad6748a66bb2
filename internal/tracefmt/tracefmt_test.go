package tracefmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"shunt/internal/engine"
	"shunt/internal/tracefmt"
	"shunt/internal/token"
)

func mustRun(t *testing.T, expr string, mode engine.Mode) *engine.Result {
	t.Helper()
	res, err := engine.Run(expr, mode)
	require.NoError(t, err)
	return res
}

func TestParseFormat(t *testing.T) {
	cases := map[string]tracefmt.Format{
		"":         tracefmt.FormatPretty,
		"pretty":   tracefmt.FormatPretty,
		"JSON":     tracefmt.FormatJSON,
		"ndjson":   tracefmt.FormatNDJSON,
		"yml":      tracefmt.FormatYAML,
		"mp":       tracefmt.FormatMsgpack,
		"markdown": tracefmt.FormatMarkdown,
	}
	for in, want := range cases {
		got, err := tracefmt.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := tracefmt.ParseFormat("xml")
	assert.Error(t, err)
	assert.True(t, tracefmt.FormatMsgpack.Binary())
	assert.False(t, tracefmt.FormatJSON.Binary())
}

func TestJSONRoundTrip(t *testing.T) {
	res := mustRun(t, "( A + B ) * C ^ D", engine.Prefix)

	var buf bytes.Buffer
	require.NoError(t, tracefmt.WriteJSON(&buf, res))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "PREFIX", raw["mode"])
	assert.Equal(t, "* + A B ^ C D", raw["notation"])

	back, err := tracefmt.ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, res, back)
}

func TestMsgpackRoundTrip(t *testing.T) {
	res := mustRun(t, "A * ( B + C )", engine.Postfix)

	var buf bytes.Buffer
	require.NoError(t, tracefmt.WriteMsgpack(&buf, res))
	back, err := tracefmt.ReadMsgpack(&buf)
	require.NoError(t, err)
	assert.Equal(t, res.Notation(), back.Notation())
	assert.Equal(t, len(res.Steps), len(back.Steps))
	for i := range res.Steps {
		assert.Equal(t, res.Steps[i].Locations, back.Steps[i].Locations, "step %d", i)
		assert.Equal(t, res.Steps[i].Title, back.Steps[i].Title, "step %d", i)
	}
}

func TestReadRejectsShortTrace(t *testing.T) {
	_, err := tracefmt.ReadJSON(strings.NewReader(`{"mode":"POSTFIX","steps":[]}`))
	assert.Error(t, err)
}

func TestNDJSONOneLinePerStep(t *testing.T) {
	res := mustRun(t, "A + B", engine.Postfix)
	var buf bytes.Buffer
	require.NoError(t, tracefmt.WriteNDJSON(&buf, res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(res.Steps))
	var first engine.Step
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "Start", first.Title)
	assert.Equal(t, engine.Location{Zone: engine.ZoneInput, Position: 2}, first.Locations["2-B"])
}

func TestYAMLUsesZoneNames(t *testing.T) {
	res := mustRun(t, "A + B", engine.Postfix)
	var buf bytes.Buffer
	require.NoError(t, tracefmt.WriteYAML(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "mode: POSTFIX")
	assert.Contains(t, out, "zone: OUTPUT")
	assert.Contains(t, out, "notation: A B +")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc["steps"], len(res.Steps))
}

func TestPrettyWithoutColor(t *testing.T) {
	res := mustRun(t, "A + B", engine.Postfix)
	var buf bytes.Buffer
	require.NoError(t, tracefmt.WritePretty(&buf, res, tracefmt.Options{}))

	out := buf.String()
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "#0  Start")
	assert.Contains(t, out, "Push '+'")
	assert.Contains(t, out, "[+]")
	assert.True(t, strings.HasSuffix(out, "postfix: A B +\n"), out)
}

func TestPrettyShowsDroppedParens(t *testing.T) {
	res := mustRun(t, "( A )", engine.Postfix)
	var buf bytes.Buffer
	require.NoError(t, tracefmt.WritePretty(&buf, res, tracefmt.Options{}))
	assert.Contains(t, buf.String(), "dropped 2")
}

func TestMarkdownTable(t *testing.T) {
	res := mustRun(t, "A ^ B", engine.Postfix)
	md := tracefmt.Markdown(res)

	assert.Contains(t, md, "## postfix conversion")
	assert.Contains(t, md, "| # | Step | Input | Stack | Output | Why |")
	assert.Contains(t, md, `Push '\^'`)
	assert.Contains(t, md, "**Result:** `A B ^`")
	rows := strings.Count(md, "\n| ")
	assert.Equal(t, len(res.Steps)+1, rows)
}

func TestWriteDispatch(t *testing.T) {
	res := mustRun(t, "A", engine.Postfix)
	for _, f := range []tracefmt.Format{
		tracefmt.FormatPretty, tracefmt.FormatJSON, tracefmt.FormatNDJSON,
		tracefmt.FormatYAML, tracefmt.FormatMsgpack, tracefmt.FormatMarkdown,
	} {
		var buf bytes.Buffer
		require.NoError(t, tracefmt.Write(&buf, res, f, tracefmt.Options{}), f.String())
		assert.NotZero(t, buf.Len(), f.String())
	}
	assert.Error(t, tracefmt.Write(&bytes.Buffer{}, res, tracefmt.Format(99), tracefmt.Options{}))
}

func TestFormatTokens(t *testing.T) {
	toks := []token.Token{token.New(0, "A", token.Span{Start: 0, End: 1}), token.New(1, "+", token.Span{Start: 2, End: 3})}

	var pretty bytes.Buffer
	require.NoError(t, tracefmt.FormatTokensPretty(&pretty, toks))
	assert.Contains(t, pretty.String(), "OPERATOR")
	assert.Contains(t, pretty.String(), "id=1-+")

	var js bytes.Buffer
	require.NoError(t, tracefmt.FormatTokensJSON(&js, nil))
	assert.Equal(t, "[]\n", js.String())
}
