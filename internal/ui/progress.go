package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"shunt/internal/driver"
)

// batchModel shows one line per expression while a batch converts.
type batchModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []batchItem
	width   int
	done    bool
}

type batchItem struct {
	expr   string
	status driver.Status
}

type eventMsg driver.Event
type doneMsg struct{}

// NewBatchModel returns a Bubble Tea model fed by ConvertBatch events.
// The model quits when events is closed.
func NewBatchModel(title string, exprs []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]batchItem, len(exprs))
	for i, e := range exprs {
		items[i] = batchItem{expr: e, status: driver.StatusQueued}
	}
	return &batchModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		width:   80,
	}
}

func (m *batchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *batchModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	finished := m.finished()
	header := fmt.Sprintf("%s (%d/%d)", m.title, finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	exprWidth := max(m.width-14, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%9s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.expr, exprWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *batchModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *batchModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.items) {
		return nil
	}
	m.items[ev.Index].status = ev.Status
	return m.prog.SetPercent(float64(m.finished()) / float64(len(m.items)))
}

func (m *batchModel) finished() int {
	n := 0
	for _, it := range m.items {
		if it.status == driver.StatusDone || it.status == driver.StatusError {
			n++
		}
	}
	return n
}

func styleStatus(s driver.Status) lipgloss.Style {
	switch s {
	case driver.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case driver.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// the tail counts toward width
	return runewidth.Truncate(value, width, "...")
}
