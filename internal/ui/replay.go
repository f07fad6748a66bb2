// Package ui holds the terminal front ends: a step-by-step replay of a
// conversion trace and a progress view for batches.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shunt/internal/advisor"
	"shunt/internal/engine"
	"shunt/internal/token"
)

// DefaultSpeed is the playback interval when none is given.
const DefaultSpeed = 700 * time.Millisecond

// ReplayOptions configure NewReplayModel.
type ReplayOptions struct {
	Expression string
	// Speed is the delay between steps while playing.
	Speed time.Duration
	// Advisor, when set, is asked for commentary in the background.
	Advisor advisor.Advisor
	Annotate advisor.AnnotateOptions
	// Autoplay starts playing immediately.
	Autoplay bool
}

type replayModel struct {
	ctx    context.Context
	res    *engine.Result
	opts   ReplayOptions
	cursor int

	playing bool
	tickID  int

	comments map[int]string
	loading  bool

	keys  replayKeys
	help  help.Model
	prog  progress.Model
	width int
}

type tickMsg struct{ id int }
type commentsMsg map[int]string

// NewReplayModel returns a model that steps through res. It only reads
// the precomputed steps; nothing is converted again.
func NewReplayModel(ctx context.Context, res *engine.Result, opts ReplayOptions) tea.Model {
	if opts.Speed <= 0 {
		opts.Speed = DefaultSpeed
	}
	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 60
	return &replayModel{
		ctx:     ctx,
		res:     res,
		opts:    opts,
		playing: opts.Autoplay,
		loading: opts.Advisor != nil,
		keys:    defaultReplayKeys(),
		help:    help.New(),
		prog:    prog,
		width:   80,
	}
}

func (m *replayModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.opts.Advisor != nil {
		cmds = append(cmds, m.fetchComments())
	}
	if m.playing {
		cmds = append(cmds, m.schedule())
	}
	return tea.Batch(cmds...)
}

func (m *replayModel) fetchComments() tea.Cmd {
	ctx, adv, expr, res, opts := m.ctx, m.opts.Advisor, m.opts.Expression, m.res, m.opts.Annotate
	return func() tea.Msg {
		return commentsMsg(advisor.Annotate(ctx, adv, expr, res, opts))
	}
}

func (m *replayModel) schedule() tea.Cmd {
	m.tickID++
	id := m.tickID
	return tea.Tick(m.opts.Speed, func(time.Time) tea.Msg { return tickMsg{id: id} })
}

func (m *replayModel) last() int { return len(m.res.Steps) - 1 }

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		if !m.playing || msg.id != m.tickID {
			return m, nil
		}
		if m.cursor < m.last() {
			m.cursor++
		}
		if m.cursor >= m.last() {
			m.playing = false
			return m, nil
		}
		return m, m.schedule()
	case commentsMsg:
		m.comments = msg
		m.loading = false
		return m, nil
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
			m.help.Width = msg.Width
		}
		return m, nil
	}
	return m, nil
}

func (m *replayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Prev):
		m.playing = false
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Next):
		m.playing = false
		if m.cursor < m.last() {
			m.cursor++
		}
	case key.Matches(msg, m.keys.First):
		m.playing = false
		m.cursor = 0
	case key.Matches(msg, m.keys.Last):
		m.playing = false
		m.cursor = m.last()
	case key.Matches(msg, m.keys.Play):
		if m.playing {
			m.playing = false
			return m, nil
		}
		if m.cursor >= m.last() {
			m.cursor = 0
		}
		m.playing = true
		return m, m.schedule()
	}
	return m, nil
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle   = lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("8"))
	tokenStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	activeStyle  = tokenStyle.BorderForeground(lipgloss.Color("3")).Foreground(lipgloss.Color("3")).Bold(true)
	commentStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("5"))
	zoneColors   = map[engine.Zone]lipgloss.Color{
		engine.ZoneInput:  lipgloss.Color("7"),
		engine.ZoneStack:  lipgloss.Color("13"),
		engine.ZoneOutput: lipgloss.Color("2"),
	}
)

func (m *replayModel) View() string {
	if len(m.res.Steps) == 0 {
		return ""
	}
	st := m.res.Steps[m.cursor]
	var b strings.Builder

	header := fmt.Sprintf("%s · %s", strings.ToLower(m.res.Mode.String()), truncate(m.opts.Expression, max(m.width-20, 10)))
	state := "paused"
	if m.playing {
		state = "playing"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString(detailStyle.Render(fmt.Sprintf("  [%s]", state)))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render(fmt.Sprintf("Step %d/%d  %s", st.Index, m.last(), st.Title)))
	b.WriteString("\n")
	if st.Detail != "" {
		b.WriteString(detailStyle.Render(truncate(st.Detail, max(m.width-2, 10))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, z := range []engine.Zone{engine.ZoneInput, engine.ZoneStack, engine.ZoneOutput} {
		b.WriteString(m.renderZone(z, st.ActiveTokenID))
		b.WriteString("\n")
	}
	if n := len(m.res.ZoneAt(m.cursor, engine.ZoneDiscarded)); n > 0 {
		b.WriteString(detailStyle.Render(fmt.Sprintf("%d parentheses discarded", n)))
		b.WriteString("\n")
	}

	switch {
	case m.comments[m.cursor] != "":
		b.WriteString("\n")
		b.WriteString(commentStyle.Render(truncate(m.comments[m.cursor], max(m.width-2, 10))))
		b.WriteString("\n")
	case m.loading:
		b.WriteString("\n")
		b.WriteString(detailStyle.Render("asking the advisor..."))
		b.WriteString("\n")
	}

	if m.cursor == m.last() {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Result: " + m.res.Notation()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.prog.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *replayModel) percent() float64 {
	if m.last() <= 0 {
		return 1
	}
	return float64(m.cursor) / float64(m.last())
}

func (m *replayModel) renderZone(z engine.Zone, activeID string) string {
	toks := m.res.ZoneAt(m.cursor, z)
	cells := make([]string, 0, len(toks)+1)
	cells = append(cells, labelStyle.Render(strings.ToLower(z.String())))
	if len(toks) == 0 {
		cells = append(cells, detailStyle.Render("·"))
	}
	for _, t := range toks {
		cells = append(cells, renderToken(t, z, t.ID == activeID))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}

func renderToken(t token.Token, z engine.Zone, active bool) string {
	if active {
		return activeStyle.Render(t.Value)
	}
	return tokenStyle.BorderForeground(zoneColors[z]).Foreground(zoneColors[z]).Render(t.Value)
}
