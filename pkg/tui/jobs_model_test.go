package tui

import (
	"context"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdesk/jobdesk-terminal/internal/apitest"
	"github.com/jobdesk/jobdesk-terminal/pkg/api"
	"github.com/jobdesk/jobdesk-terminal/pkg/form"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
)

func seedJobs() []models.Job {
	return []models.Job{
		{ID: "1", Title: "Baker", Type: "Full-time", Status: "active", Applications: 4, Description: "Early mornings"},
		{ID: "2", Title: "Clerk", Type: "Part-time", Status: "pending"},
		{ID: "3", Title: "Driver", Type: "Contract", Status: "closed"},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func newUnloadedModel(t *testing.T, seed ...models.Job) (*JobsModel, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(t, seed...)
	st := store.New(api.New(srv.BaseURL()))
	m := NewJobsModel(context.Background(), st, models.DefaultSettings().UI)
	m.SetSize(120, 40)
	return m, srv
}

func newTestModel(t *testing.T) (*JobsModel, *apitest.Server) {
	t.Helper()
	m, srv := newUnloadedModel(t, seedJobs()...)
	msg := m.Init()()
	require.IsType(t, jobsLoadedMsg{}, msg)
	m.Update(msg)
	return m, srv
}

// send feeds a key to the model and returns the command it produced
func send(m *JobsModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

// complete runs a network command and feeds its result back
func complete(t *testing.T, m *JobsModel, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	m.Update(msg)
	return msg
}

func typeText(m *JobsModel, s string) {
	send(m, keyRunes(s))
}

func rowTitles(m *JobsModel) []string {
	var titles []string
	for _, r := range m.data.rendering.Rows {
		titles = append(titles, r.Title)
	}
	return titles
}

func TestJobsModelLoad(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, []string{"Baker", "Clerk", "Driver"}, rowTitles(m))
	assert.Equal(t, 3, m.data.stats.Total)
	assert.Equal(t, 1, m.data.stats.Active)
	assert.Equal(t, 1, m.data.stats.Pending)

	out := m.View()
	assert.Contains(t, out, "Baker")
	assert.Contains(t, out, "Total Jobs  3")
}

func TestJobsModelLoadingPlaceholder(t *testing.T) {
	m, _ := newUnloadedModel(t)
	assert.Equal(t, "No jobs found", m.table.Placeholder)

	cmd := m.Init()
	assert.Equal(t, loadingPlaceholder, m.table.Placeholder)

	complete(t, m, cmd)
	assert.Equal(t, "No jobs found", m.table.Placeholder)
}

func TestJobsModelLoadFailure(t *testing.T) {
	m, srv := newUnloadedModel(t, seedJobs()...)
	srv.FailNext(http.MethodGet, http.StatusInternalServerError, "database offline")

	msg := m.Init()()
	cmd := send(m, msg)

	require.NotNil(t, cmd)
	status, ok := cmd().(ErrorStatusMsg)
	require.True(t, ok)
	assert.Contains(t, string(status), "database offline")
	assert.Equal(t, failedPlaceholder, m.table.Placeholder)
	assert.Empty(t, m.data.rendering.Rows)

	// r retries
	complete(t, m, send(m, keyRunes("r")))
	assert.Len(t, m.data.rendering.Rows, 3)
}

func TestJobsModelFilters(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, keyRunes("t"))
	assert.Equal(t, []string{"Baker"}, rowTitles(m))

	send(m, keyRunes("t"))
	assert.Equal(t, []string{"Clerk"}, rowTitles(m))

	send(m, keyRunes("c"))
	send(m, keyRunes("s"))
	send(m, keyRunes("s"))
	assert.Equal(t, []string{"Clerk"}, rowTitles(m))
	assert.Equal(t, 1, m.data.stats.Total)
	assert.Equal(t, 1, m.data.stats.Pending)

	send(m, keyRunes("c"))
	assert.Len(t, m.data.rendering.Rows, 3)
}

func TestJobsModelSearch(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, keyRunes("/"))
	require.True(t, m.state.IsInSearchPane())

	typeText(m, "  CLE ")
	assert.Equal(t, []string{"Clerk"}, rowTitles(m))

	// shortcuts are plain text while searching
	typeText(m, "q")
	assert.Empty(t, m.data.rendering.Rows)
	assert.Equal(t, "No jobs found", m.table.Placeholder)

	send(m, keyType(tea.KeyEsc))
	assert.False(t, m.state.IsInSearchPane())
	assert.Len(t, m.data.rendering.Rows, 3)

	send(m, keyRunes("/"))
	typeText(m, "status:pending")
	send(m, keyType(tea.KeyEnter))
	assert.False(t, m.state.IsInSearchPane())
	assert.Equal(t, []string{"Clerk"}, rowTitles(m), "query survives leaving search with enter")
}

func TestJobsModelCreate(t *testing.T) {
	m, srv := newTestModel(t)

	send(m, keyRunes("n"))
	require.True(t, m.form.isOpen())
	assert.Equal(t, form.ModeCreate, m.form.ctrl.Mode())
	assert.Equal(t, "0", m.form.inputs[3].Value())

	typeText(m, "  Welder ")
	send(m, keyType(tea.KeyTab))
	typeText(m, "Contract")
	send(m, keyType(tea.KeyTab))
	typeText(m, "active")

	cmd := send(m, keyType(tea.KeyCtrlS))
	assert.True(t, m.form.saving)
	msg := complete(t, m, cmd)

	saved, ok := msg.(jobSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.False(t, m.form.isOpen())
	assert.Equal(t, "Welder", saved.job.Title)
	assert.Equal(t, []string{"Welder", "Baker", "Clerk", "Driver"}, rowTitles(m))
	assert.Equal(t, 2, m.data.stats.Active)
	assert.Contains(t, srv.Calls(), "POST /api/jobs")
}

func TestJobsModelCreateValidation(t *testing.T) {
	m, srv := newTestModel(t)

	send(m, keyRunes("n"))
	typeText(m, "   ")
	cmd := send(m, keyType(tea.KeyCtrlS))

	require.NotNil(t, cmd)
	assert.Equal(t, StatusMsg("Title and Status are required."), cmd())
	assert.True(t, m.form.isOpen())
	assert.False(t, m.form.saving)
	assert.Equal(t, 1, srv.Count(), "only the initial load reached the server")
	assert.Len(t, m.data.rendering.Rows, 3)
}

func TestJobsModelEdit(t *testing.T) {
	m, srv := newTestModel(t)
	srv.SetField("1", "company", "Acme")

	send(m, keyRunes("e"))
	require.True(t, m.form.isOpen())
	assert.Equal(t, form.ModeEdit, m.form.ctrl.Mode())
	assert.Equal(t, "1", m.form.ctrl.EditID())
	assert.Equal(t, "Baker", m.form.inputs[0].Value())
	assert.Equal(t, "active", m.form.inputs[2].Value())

	typeText(m, " II")
	msg := complete(t, m, send(m, keyType(tea.KeyCtrlS)))
	require.NoError(t, msg.(jobSavedMsg).err)

	assert.False(t, m.form.isOpen())
	assert.Equal(t, []string{"Baker II", "Clerk", "Driver"}, rowTitles(m))
	assert.Contains(t, srv.Calls(), "PUT /api/jobs/1")

	stored, ok := srv.Job("1")
	require.True(t, ok)
	assert.Equal(t, "Acme", stored["company"])
}

func TestJobsModelSaveFailureKeepsForm(t *testing.T) {
	m, srv := newTestModel(t)
	srv.FailNext(http.MethodPost, http.StatusUnprocessableEntity, "title taken")

	send(m, keyRunes("n"))
	typeText(m, "Welder")
	send(m, keyType(tea.KeyTab))
	send(m, keyType(tea.KeyTab))
	typeText(m, "active")

	msg := complete(t, m, send(m, keyType(tea.KeyCtrlS)))
	saved := msg.(jobSavedMsg)

	var createErr *store.CreateError
	require.ErrorAs(t, saved.err, &createErr)
	assert.True(t, m.form.isOpen())
	assert.False(t, m.form.saving)
	assert.Contains(t, m.form.err, "title taken")
	assert.Equal(t, "Welder", m.form.inputs[0].Value())
	assert.Len(t, m.data.rendering.Rows, 3)
}

func TestJobsModelEscClosesForm(t *testing.T) {
	m, srv := newTestModel(t)

	send(m, keyRunes("n"))
	typeText(m, "Draft")
	send(m, keyType(tea.KeyEsc))

	assert.False(t, m.form.isOpen())
	assert.Equal(t, 1, srv.Count())

	send(m, keyRunes("n"))
	assert.Empty(t, m.form.inputs[0].Value(), "a reopened form starts clean")
}

func TestJobsModelDelete(t *testing.T) {
	m, srv := newTestModel(t)

	send(m, keyRunes("d"))
	require.True(t, m.confirmation.Active())
	assert.Contains(t, m.View(), "Delete job 'Baker'?")

	send(m, keyRunes("n"))
	assert.False(t, m.confirmation.Active())
	assert.Equal(t, 1, srv.Count(), "declining sends nothing")

	send(m, keyType(tea.KeyDown))
	send(m, keyRunes("d"))
	msg := complete(t, m, send(m, keyRunes("y")))

	deleted, ok := msg.(jobDeletedMsg)
	require.True(t, ok)
	require.NoError(t, deleted.err)
	assert.Equal(t, "2", deleted.id)
	assert.Equal(t, []string{"Baker", "Driver"}, rowTitles(m))
	assert.Contains(t, srv.Calls(), "DELETE /api/jobs/2")
}

func TestJobsModelDeleteFailureKeepsRow(t *testing.T) {
	m, srv := newTestModel(t)
	srv.FailNext(http.MethodDelete, http.StatusConflict, "job has applicants")

	send(m, keyRunes("d"))
	msg := complete(t, m, send(m, keyRunes("y")))

	var deleteErr *store.DeleteError
	require.ErrorAs(t, msg.(jobDeletedMsg).err, &deleteErr)
	assert.Equal(t, http.StatusConflict, deleteErr.Status)
	assert.Len(t, m.data.rendering.Rows, 3)
}

func TestJobsModelDeleteAfterRerender(t *testing.T) {
	m, srv := newTestModel(t)

	send(m, keyRunes("d"))
	// a reload lands while the prompt is up
	m.Update(jobsLoadedMsg{})

	cmd := send(m, keyRunes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, StatusMsg("The list changed; delete cancelled"), cmd())
	assert.NotContains(t, srv.Calls(), "DELETE /api/jobs/1")
	assert.Len(t, m.data.rendering.Rows, 3)
}

func TestJobsModelMouse(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, keyRunes("n"))
	r := m.modalRect()

	send(m, tea.MouseMsg{X: r.x + r.w/2, Y: r.y + r.h/2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.form.isOpen(), "clicks inside the modal keep it open")

	send(m, tea.MouseMsg{X: r.x + 1, Y: r.y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.form.isOpen(), "the modal border is part of the body")

	send(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.True(t, m.form.isOpen(), "only presses count")

	send(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.form.isOpen())
}

func TestJobsModelCopy(t *testing.T) {
	m, _ := newTestModel(t)

	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	cmd := send(m, keyRunes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, StatusMsg("Baker → clipboard"), cmd())
	assert.Contains(t, copied, "title: Baker")
	assert.Contains(t, copied, "applications: 4")
}

func TestJobsModelStripsControlSequences(t *testing.T) {
	m, _ := newUnloadedModel(t, models.Job{ID: "1", Title: "\x1b[2JWiped\x07", Status: "active"})
	complete(t, m, m.Init())

	out := m.View()
	assert.Contains(t, out, "Wiped")
	assert.False(t, strings.Contains(out, "\x1b[2J"))
	assert.False(t, strings.Contains(out, "\x07"))
}

func TestJobsModelPreview(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Contains(t, m.View(), "Early mornings")

	send(m, keyRunes("p"))
	assert.False(t, m.state.ShowPreview)
	assert.NotContains(t, m.View(), "DESCRIPTION (Baker)")
}
