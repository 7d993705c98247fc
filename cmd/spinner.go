package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// runFinishedMsg ends a spinner; elapsed is measured by the worker so the
// summary does not depend on tick timing.
type runFinishedMsg struct {
	err     error
	elapsed time.Duration
}

type runProgress struct {
	spinner spinner.Model
	label   string
	started time.Time
	now     func() time.Time
	work    tea.Cmd

	finished *runFinishedMsg
}

func newRunProgress(label string, now func() time.Time, work func() error) runProgress {
	started := now()
	return runProgress{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(spinnerStyle)),
		label:   label,
		started: started,
		now:     now,
		work: func() tea.Msg {
			err := work()
			return runFinishedMsg{err: err, elapsed: now().Sub(started)}
		},
	}
}

func (m runProgress) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m runProgress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runFinishedMsg:
		m.finished = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View keeps a one-line summary on screen once the run is over.
func (m runProgress) View() string {
	if m.finished == nil {
		return fmt.Sprintf("%s %s %s", m.spinner.View(), m.label, elapsedStyle.Render(formatElapsed(m.now().Sub(m.started))))
	}
	if m.finished.err != nil {
		return failedStyle.Render("failed") + " " + m.label + " " + elapsedStyle.Render(formatElapsed(m.finished.elapsed)) + "\n"
	}
	return ""
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func runSpinner(ctx context.Context, output io.Writer, label string, run func(context.Context) error) error {
	model := newRunProgress(label, time.Now, func() error { return run(ctx) })

	p := tea.NewProgram(model, tea.WithInput(nil), tea.WithOutput(output), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}

	progress, ok := final.(runProgress)
	if !ok || progress.finished == nil {
		return fmt.Errorf("spinner stopped before %q finished", label)
	}
	return progress.finished.err
}

// withSpinner shows the spinner only when output is an interactive terminal.
func withSpinner(ctx context.Context, output io.Writer, label string, run func(context.Context) error) error {
	f, ok := output.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return run(ctx)
	}
	return runSpinner(ctx, output, label, run)
}
