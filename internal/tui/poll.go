package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/padwan-ai/padwan-cli/internal/render"
	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// jobMsg carries the result of one status fetch
type jobMsg struct {
	job *llmtypes.BatchJob
	err error
}

// pollTickMsg triggers the next status fetch
type pollTickMsg struct{}

// timeoutMsg fires when the poll deadline passes
type timeoutMsg struct{}

// PollModel is the bubbletea model for watching a batch job until it
// reaches a terminal state
type PollModel struct {
	client   llmtypes.BatchClient
	name     string
	interval time.Duration
	timeout  time.Duration
	renderer *render.Renderer

	spinner  spinner.Model
	job      *llmtypes.BatchJob
	history  []string
	start    time.Time
	err      error
	done     bool
	timedOut bool
}

// NewPollModel creates the poll TUI for the named batch job
func NewPollModel(client llmtypes.BatchClient, name string, interval, timeout time.Duration, theme render.TermTheme) PollModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Success)

	return PollModel{
		client:   client,
		name:     name,
		interval: interval,
		timeout:  timeout,
		renderer: render.NewRenderer(theme),
		spinner:  s,
		start:    time.Now(),
	}
}

// Job returns the last observed job state
func (m PollModel) Job() *llmtypes.BatchJob {
	return m.job
}

// Err returns the error that ended polling, if any
func (m PollModel) Err() error {
	return m.err
}

// TimedOut reports whether polling gave up before the job finished.
// The last observed job is still available through Job.
func (m PollModel) TimedOut() bool {
	return m.timedOut
}

// Init implements tea.Model
func (m PollModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetch(),
		tea.Tick(m.timeout, func(time.Time) tea.Msg { return timeoutMsg{} }),
	)
}

func (m PollModel) fetch() tea.Cmd {
	client, name := m.client, m.name
	return func() tea.Msg {
		job, err := client.GetBatch(context.Background(), name)
		return jobMsg{job: job, err: err}
	}
}

// Update implements tea.Model
func (m PollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" || msg.String() == "q" {
			m.err = fmt.Errorf("polling interrupted")
			return m, tea.Quit
		}

	case timeoutMsg:
		if m.done {
			return m, nil
		}
		m.timedOut = true
		return m, tea.Quit

	case jobMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.recordTransition(msg.job)
		m.job = msg.job
		if msg.job.State.IsTerminal() {
			m.done = true
			return m, tea.Quit
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return pollTickMsg{} })

	case pollTickMsg:
		return m, m.fetch()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *PollModel) recordTransition(job *llmtypes.BatchJob) {
	if m.job != nil && m.job.State == job.State {
		return
	}
	elapsed := time.Since(m.start).Round(time.Second)
	m.history = append(m.history, fmt.Sprintf("%6s  %s", elapsed, job.State.Short()))
}

// View implements tea.Model
func (m PollModel) View() string {
	var sb strings.Builder

	if m.job == nil {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" fetching " + m.name + "...\n")
		return sb.String()
	}

	sb.WriteString(m.renderer.Job(m.job))

	if stats := m.job.Stats; stats != nil && stats.RequestCount > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.renderer.ProgressBar(stats.SucceededCount, stats.RequestCount, 30))
		sb.WriteString("\n")
	}

	if len(m.history) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.renderer.Styles().DimTxt.Render(strings.Join(m.history, "\n")))
		sb.WriteString("\n")
	}

	if m.timedOut {
		sb.WriteString("\n")
		sb.WriteString(m.renderer.Styles().WarningTxt.Render(
			fmt.Sprintf("timed out after %s; job is still running", m.timeout)))
		sb.WriteString("\n")
	}

	if !m.done && m.err == nil && !m.timedOut {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.renderer.Styles().DimTxt.Render(
			fmt.Sprintf(" polling every %s (q to stop)", m.interval)))
		sb.WriteString("\n")
	}

	return sb.String()
}
