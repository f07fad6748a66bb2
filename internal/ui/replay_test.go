package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shunt/internal/advisor"
	"shunt/internal/engine"
)

func newReplay(t *testing.T, expr string, opts ReplayOptions) *replayModel {
	t.Helper()
	res, err := engine.Run(expr, engine.Postfix)
	require.NoError(t, err)
	opts.Expression = expr
	return NewReplayModel(context.Background(), res, opts).(*replayModel)
}

func press(m *replayModel, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

var (
	right = tea.KeyMsg{Type: tea.KeyRight}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	home  = tea.KeyMsg{Type: tea.KeyHome}
	end   = tea.KeyMsg{Type: tea.KeyEnd}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	quit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestReplayNavigationClamps(t *testing.T) {
	m := newReplay(t, "A + B", ReplayOptions{})
	last := len(m.res.Steps) - 1

	press(m, left)
	assert.Equal(t, 0, m.cursor)
	press(m, right)
	press(m, right)
	assert.Equal(t, 2, m.cursor)
	press(m, end)
	assert.Equal(t, last, m.cursor)
	press(m, right)
	assert.Equal(t, last, m.cursor)
	press(m, home)
	assert.Equal(t, 0, m.cursor)
}

func TestReplayPlaybackAdvancesOnOwnTicksOnly(t *testing.T) {
	m := newReplay(t, "A + B", ReplayOptions{})
	cmd := press(m, space)
	require.NotNil(t, cmd)
	assert.True(t, m.playing)

	m.Update(tickMsg{id: m.tickID - 1})
	assert.Equal(t, 0, m.cursor, "stale tick must be ignored")

	for i := 1; i < len(m.res.Steps); i++ {
		m.Update(tickMsg{id: m.tickID})
		assert.Equal(t, i, m.cursor)
	}
	assert.False(t, m.playing, "playback stops on the last step")

	press(m, space)
	assert.Equal(t, 0, m.cursor, "playing from the end restarts")
	assert.True(t, m.playing)
	press(m, space)
	assert.False(t, m.playing)
}

func TestReplayManualStepPausesPlayback(t *testing.T) {
	m := newReplay(t, "A * B", ReplayOptions{Autoplay: true})
	require.NotNil(t, m.Init())
	assert.True(t, m.playing)
	press(m, right)
	assert.False(t, m.playing)
}

func TestReplayQuit(t *testing.T) {
	m := newReplay(t, "A", ReplayOptions{})
	cmd := press(m, quit)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestReplayViewShowsZonesAndResult(t *testing.T) {
	m := newReplay(t, "A + B", ReplayOptions{})
	view := m.View()
	assert.Contains(t, view, "Step 0/8")
	assert.Contains(t, view, "Start")
	assert.Contains(t, view, "input")
	assert.NotContains(t, view, "Result:")

	press(m, end)
	view = m.View()
	assert.Contains(t, view, "Finished")
	assert.Contains(t, view, "Result: A B +")
}

func TestReplayCommentary(t *testing.T) {
	adv := advisor.Func(func(_ context.Context, req advisor.Request) (string, error) {
		return "note for " + req.Title, nil
	})
	m := newReplay(t, "A", ReplayOptions{Advisor: adv})
	assert.Contains(t, m.View(), "asking the advisor")

	cmd := m.fetchComments()
	m.Update(cmd())
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "note for Start")
}

func TestReplayDoesNotTouchSteps(t *testing.T) {
	m := newReplay(t, "( A - B ) ^ C", ReplayOptions{})
	before := strings.Join(func() []string {
		var out []string
		for _, st := range m.res.Steps {
			out = append(out, st.Title)
		}
		return out
	}(), "|")
	for range len(m.res.Steps) {
		press(m, right)
		_ = m.View()
	}
	var after []string
	for _, st := range m.res.Steps {
		after = append(after, st.Title)
	}
	assert.Equal(t, before, strings.Join(after, "|"))
}
