package tui

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobdesk/jobdesk-terminal/pkg/form"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
)

// Completion messages for the network calls started by the jobs screen
type jobsLoadedMsg struct {
	err error
}

type jobSavedMsg struct {
	sub form.Submission
	job models.Job
	err error
}

type jobDeletedMsg struct {
	id    string
	title string
	err   error
}

func loadJobsCmd(ctx context.Context, st *store.Store) tea.Cmd {
	return func() tea.Msg {
		return jobsLoadedMsg{err: st.Load(ctx)}
	}
}

func saveJobCmd(ctx context.Context, st *store.Store, sub form.Submission) tea.Cmd {
	return func() tea.Msg {
		job, err := sub.Execute(ctx, st)
		return jobSavedMsg{sub: sub, job: job, err: err}
	}
}

func deleteJobCmd(ctx context.Context, st *store.Store, id, title string) tea.Cmd {
	return func() tea.Msg {
		return jobDeletedMsg{id: id, title: title, err: st.Delete(ctx, id, true)}
	}
}

// statusCmd reports a message in the app status bar
func statusCmd(format string, args ...interface{}) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return StatusMsg(msg)
	}
}

// errorStatusCmd reports a failure to the status bar and the log
func errorStatusCmd(format string, args ...interface{}) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	log.Printf("tui: %s", msg)
	return func() tea.Msg {
		return ErrorStatusMsg(msg)
	}
}
