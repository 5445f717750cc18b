package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
)

// statusDuration is how long a status message stays up
const statusDuration = 4 * time.Second

// App is the root model. It owns the status bar and routes everything
// else to the jobs screen.
type App struct {
	jobs          *JobsModel
	width         int
	height        int
	statusMsg     string
	statusIsError bool
	statusSeq     int
}

// NewApp creates the root model for a store
func NewApp(ctx context.Context, st *store.Store, settings *models.Settings) *App {
	return &App{
		jobs: NewJobsModel(ctx, st, settings.UI),
	}
}

func (a *App) Init() tea.Cmd {
	return a.jobs.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// leave a line for the status bar
		a.jobs.SetSize(msg.Width, msg.Height-1)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if msg.String() == "q" && !a.jobs.capturingInput() {
			return a, tea.Quit
		}

	case StatusMsg:
		return a, a.setStatus(string(msg), false)

	case ErrorStatusMsg:
		return a, a.setStatus(string(msg), true)

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
			a.statusIsError = false
		}
		return a, nil
	}

	_, cmd := a.jobs.Update(msg)
	return a, cmd
}

// setStatus shows a message and schedules its removal. A newer message
// resets the clock.
func (a *App) setStatus(text string, isError bool) tea.Cmd {
	a.statusMsg = text
	a.statusIsError = isError
	a.statusSeq++
	seq := a.statusSeq
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	content := a.jobs.View()

	if a.statusMsg != "" {
		bg := "62"
		if a.statusIsError {
			bg = ColorError
		}
		statusStyle := lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

		content = lipgloss.JoinVertical(lipgloss.Top, content, statusStyle.Render(a.statusMsg))
	}

	return content
}

// StatusMsg shows a message in the status bar
type StatusMsg string

// ErrorStatusMsg shows a failure in the status bar
type ErrorStatusMsg string

type clearStatusMsg struct {
	seq int
}
