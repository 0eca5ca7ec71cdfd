// Package tui renders a live project-creation dashboard: a spinner while the
// scaffolding tool runs and a scrollable view of its output.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/guppyhq/guppy/pkg/palette"
	"github.com/guppyhq/guppy/pkg/term"
	"github.com/guppyhq/guppy/scaffold"
)

type eventMsg scaffold.Event

type closedMsg struct{}

// Run drives the dashboard until the creation event stream terminates.
// Returns the process exit code.
func Run(ctx context.Context, info scaffold.ProjectInfo, events <-chan scaffold.Event) (int, error) {
	program := tea.NewProgram(newModel(info, events), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return 1, err
	}
	m := final.(model)
	return m.exitCode(), m.failure
}

type model struct {
	info   scaffold.ProjectInfo
	accent palette.Color
	events <-chan scaffold.Event

	spin     spinner.Model
	viewport viewport.Model

	raw      []string // log lines as received, ANSI codes intact
	status   string
	ready    bool
	done     bool
	failure  error
	manifest *scaffold.Manifest
}

func newModel(info scaffold.ProjectInfo, events <-chan scaffold.Event) model {
	accent := palette.ColorFor(info.Name)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = accent.Style()

	return model{
		info:     info,
		accent:   accent,
		events:   events,
		spin:     spin,
		viewport: viewport.New(0, 0),
		status:   "Starting...",
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.listenEvents())
}

func (m model) listenEvents() tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(evt)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6
		if m.viewport.Height < 3 {
			m.viewport.Height = 3
		}
		m.ready = true
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case eventMsg:
		return m.applyEvent(scaffold.Event(msg))

	case closedMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) applyEvent(evt scaffold.Event) (tea.Model, tea.Cmd) {
	switch evt.Type {
	case scaffold.EventStatus:
		m.status = evt.Line
		m.raw = append(m.raw, statusStyle.Render("▸ "+evt.Line))
	case scaffold.EventToolOutput, scaffold.EventToolError:
		m.raw = append(m.raw, evt.Line)
	case scaffold.EventCompleted:
		m.manifest = evt.Manifest
		m.status = "Project created"
		m.done = true
	case scaffold.EventFailed:
		m.failure = evt.Err
		m.status = "Creation failed"
		m.done = true
	}
	m.refreshViewport()
	return m, m.listenEvents()
}

// refreshViewport re-renders the scrollback at the current width. Height is
// the full log so the viewport owns scrolling.
func (m *model) refreshViewport() {
	if len(m.raw) == 0 {
		return
	}
	r := term.NewRenderer(nil, m.viewport.Width, len(m.raw))
	m.viewport.SetContent(r.Render(m.raw))
	m.viewport.GotoBottom()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if !m.ready {
		return "Preparing dashboard..."
	}

	badge := m.accent.Style().Render("●")
	title := titleStyle.Render(m.info.Name) + "  " + statusStyle.Render(string(m.info.Type))

	var header string
	switch {
	case m.failure != nil:
		header = badge + " " + title + "  " + failStyle.Render("✗ "+m.status)
	case m.done:
		header = badge + " " + title + "  " + okStyle.Render("✓ "+m.status)
	default:
		header = badge + " " + title + "  " + m.spin.View() + statusStyle.Render(m.status)
	}

	help := helpStyle.Render("↑/↓ scroll • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, "", header, "", m.viewport.View(), "", help)
}

func (m model) exitCode() int {
	if m.failure != nil {
		return 1
	}
	return 0
}
