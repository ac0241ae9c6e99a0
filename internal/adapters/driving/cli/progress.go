package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// isTerminal reports whether fd is an interactive terminal. Replaced in tests.
var isTerminal = func(fd int) bool { return term.IsTerminal(fd) }

// jobDoneMsg is sent when the awaited job reaches a terminal state.
type jobDoneMsg struct {
	job *domain.AnalysisJob
	err error
}

// waitModel shows a spinner until a job finishes or the user cancels.
// Cancelling calls cancel so the pending wait returns.
type waitModel struct {
	spinner spinner.Model
	label   string
	wait    tea.Cmd
	cancel  context.CancelFunc
	quit    key.Binding

	job *domain.AnalysisJob
	err error
}

func newWaitModel(label string, wait func() (*domain.AnalysisJob, error), cancel context.CancelFunc) waitModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	return waitModel{
		spinner: s,
		label:   label,
		wait: func() tea.Msg {
			job, err := wait()
			return jobDoneMsg{job: job, err: err}
		},
		cancel: cancel,
		quit: key.NewBinding(key.WithKeys("ctrl+c", "esc", "q")),
	}
}

func (m waitModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobDoneMsg:
		m.job, m.err = msg.job, msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			if m.cancel != nil {
				m.cancel()
			}
			m.err = context.Canceled
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m waitModel) View() string {
	if m.job != nil || m.err != nil {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.label)
}

// waitForJob blocks until jobID is terminal. On a terminal it shows a
// spinner on out; otherwise it waits silently.
func waitForJob(ctx context.Context, out io.Writer, jobID, label string) (*domain.AnalysisJob, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wait := func() (*domain.AnalysisJob, error) {
		return analysisService.Wait(ctx, jobID)
	}

	f, ok := out.(*os.File)
	if !ok || !isTerminal(int(f.Fd())) {
		return wait()
	}

	final, err := tea.NewProgram(newWaitModel(label, wait, cancel), tea.WithOutput(out), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	m := final.(waitModel)
	return m.job, m.err
}
