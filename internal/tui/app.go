// Package tui implements a live evaluation pane in the terminal: a source
// textarea beside a read-only result viewport, re-evaluated on idle edits and
// kept line-aligned.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yanaldoshi/codi/internal/interp"
	"github.com/yanaldoshi/codi/internal/pane"
	"github.com/yanaldoshi/codi/internal/session"
	"github.com/yanaldoshi/codi/internal/transcript"
)

var (
	sourceBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	resultBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Options configures a live evaluation pane.
type Options struct {
	Identity string
	Source   string
	Raw      bool
	Registry *interp.Registry
	Config   pane.Config
}

type resultsMsg []string

type runErrMsg struct{ err error }

// Model is the bubbletea model for one evaluation pane.
type Model struct {
	ta    textarea.Model
	vp    viewport.Model
	sched *pane.Scheduler
	src   *sourceView

	updates chan []string
	errs    chan error

	identity string
	lastErr  string
	width    int
	height   int
}

// New builds the model and spawns the evaluation pane. Configuration errors
// (unknown interpreter, missing binary) are returned before any UI starts.
func New(opts Options) (*Model, error) {
	updates := make(chan []string, 1)
	errs := make(chan error, 1)

	cfg := opts.Config
	cfg.Report = func(err error) {
		select {
		case <-errs:
		default:
		}
		errs <- err
	}

	runner := session.NewRunner()
	sched := pane.NewScheduler(&host{updates: updates}, opts.Registry, runner.Run, transcript.NewNormalizer(), cfg)

	src := &sourceView{text: opts.Source}
	if _, err := sched.Spawn(src, opts.Identity, opts.Raw); err != nil {
		return nil, err
	}

	ta := textarea.New()
	ta.SetValue(opts.Source)
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.Focus()

	return &Model{
		ta:       ta,
		vp:       viewport.New(40, 20),
		sched:    sched,
		src:      src,
		updates:  updates,
		errs:     errs,
		identity: opts.Identity,
	}, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitResults(), m.waitErrs())
}

// waitResults hands scheduler output to the update loop.
func (m *Model) waitResults() tea.Cmd {
	return func() tea.Msg {
		return resultsMsg(<-m.updates)
	}
}

func (m *Model) waitErrs() tea.Cmd {
	return func() tea.Msg {
		return runErrMsg{err: <-m.errs}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case resultsMsg:
		m.vp.SetContent(strings.Join(msg, "\n"))
		m.lastErr = ""
		m.followCursor()
		return m, m.waitResults()

	case runErrMsg:
		m.lastErr = msg.err.Error()
		return m, m.waitErrs()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.sched.SourceClosed(m.src)
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)

		// Snapshot the buffer for the scheduler and rearm the debounce.
		line := m.ta.Line()
		col := m.ta.LineInfo().ColumnOffset
		m.src.set(m.ta.Value(), m.vp.YOffset, line, col)
		m.sched.NotifyEdit(m.src)

		m.followCursor()
		return m, cmd
	}

	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// followCursor keeps the result viewport's vertical offset locked to the
// source cursor line.
func (m *Model) followCursor() {
	line := m.ta.Line()
	if line < m.vp.YOffset {
		m.vp.YOffset = line
	}
	if line >= m.vp.YOffset+m.vp.Height {
		m.vp.YOffset = line - m.vp.Height + 1
	}
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	half := (m.width - 4) / 2
	body := m.height - 3
	m.ta.SetWidth(half)
	m.ta.SetHeight(body)
	m.vp.Width = half
	m.vp.Height = body
}

func (m *Model) View() string {
	source := sourceBorderStyle.Render(m.ta.View())
	result := resultBorderStyle.Render(m.vp.View())

	status := statusStyle.Render(fmt.Sprintf(" %s · esc to quit", m.identity))
	if m.lastErr != "" {
		status = statusErrStyle.Render(" " + m.lastErr)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, source, result) + "\n" + status
}
