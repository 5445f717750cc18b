package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jobdesk/jobdesk-terminal/pkg/form"
	"github.com/jobdesk/jobdesk-terminal/pkg/format"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
	"github.com/jobdesk/jobdesk-terminal/pkg/view"
)

const previewHeight = 6

// JobsModel is the jobs screen: stats, filters, table, preview and the
// add/edit modal
type JobsModel struct {
	ctx  context.Context
	data *jobData

	searchBar    *SearchBar
	state        *StateManager
	table        *JobsTableRenderer
	preview      viewport.Model
	confirmation *ConfirmationModel
	form         *jobForm

	width  int
	height int
}

// NewJobsModel creates the jobs screen backed by st. ctx bounds every
// network call the screen starts.
func NewJobsModel(ctx context.Context, st *store.Store, ui models.UISettings) *JobsModel {
	m := &JobsModel{
		ctx:          ctx,
		data:         newJobData(st),
		searchBar:    NewSearchBar(),
		state:        NewStateManager(ui.ShowPreview),
		table:        NewJobsTableRenderer(80, 10),
		preview:      viewport.New(76, previewHeight),
		confirmation: NewConfirmation(),
		form:         newJobForm(),
		width:        80,
		height:       24,
	}
	m.syncTable()
	return m
}

// Init starts the first load
func (m *JobsModel) Init() tea.Cmd {
	return m.reload()
}

func (m *JobsModel) reload() tea.Cmd {
	if len(m.data.rendering.Rows) == 0 {
		m.table.SetRows(nil, loadingPlaceholder)
	}
	return loadJobsCmd(m.ctx, m.data.store)
}

// SetSize updates the layout for a new terminal size
func (m *JobsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchBar.SetWidth(width)
	m.preview.Width = max(width-8, 10)
	m.table.SetSize(width, m.tableHeight())
	m.syncTable()
}

// tableHeight is what is left after the fixed chrome
func (m *JobsModel) tableHeight() int {
	// stats (3) + search (3) + filters (1) + header (1) + help (3) + spacing (3)
	used := 14
	if m.state.ShowPreview {
		used += previewHeight + 3
	}
	return max(m.height-used, 3)
}

// syncTable pushes the current rendering into the table and preview
func (m *JobsModel) syncTable() {
	rows := m.data.rendering.Rows
	m.state.UpdateCount(len(rows))
	m.table.SetActive(!m.searchBar.Active())
	m.table.SetRows(rows, m.data.placeholder())
	m.table.SetCursor(m.state.Cursor)
	m.updatePreview()
}

func (m *JobsModel) updatePreview() {
	row, ok := m.selectedRow()
	if !ok {
		m.preview.SetContent(PlaceholderStyle.Render("Nothing selected"))
		return
	}
	text := preprocessContent(format.Fallback(format.Terminal(row.Description), "(no description)"))
	m.preview.SetContent(wordwrap.String(text, max(m.preview.Width-2, 10)))
	m.preview.GotoTop()
}

func (m *JobsModel) selectedRow() (view.Row, bool) {
	i := m.state.CursorRow()
	if i < 0 || i >= len(m.data.rendering.Rows) {
		return view.Row{}, false
	}
	return m.data.rendering.Rows[i], true
}

// Update handles input and completion messages
func (m *JobsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobsLoadedMsg:
		m.data.refresh()
		m.syncTable()
		if msg.err != nil {
			return m, errorStatusCmd("Failed to load jobs: %v", msg.err)
		}
		return m, statusCmd("Loaded %s", pluralJobs(m.data.store.Len()))

	case jobSavedMsg:
		m.form.complete(msg.sub, msg.err)
		m.data.refresh()
		m.syncTable()
		if msg.err != nil {
			return m, errorStatusCmd("Failed to save job: %v", msg.err)
		}
		if msg.sub.Mode == form.ModeEdit {
			return m, statusCmd("✓ Updated %s", format.Terminal(msg.job.Title))
		}
		return m, statusCmd("✓ Created %s", format.Terminal(msg.job.Title))

	case jobDeletedMsg:
		m.data.refresh()
		m.syncTable()
		if msg.err != nil {
			return m, errorStatusCmd("Failed to delete job: %v", msg.err)
		}
		return m, statusCmd("✓ Deleted %s", msg.title)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *JobsModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.form.isOpen() {
		if m.state.IsInPreviewPane() {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return cmd
		}
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	target := form.TargetBackground
	if m.modalRect().contains(msg.X, msg.Y) {
		target = form.TargetBody
	}
	m.form.click(target)
	return nil
}

func (m *JobsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.form.isOpen() {
		return m.handleFormKey(msg)
	}

	if m.confirmation.Active() {
		return m.confirmation.Update(msg)
	}

	if m.state.IsInSearchPane() {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		if m.state.IsInPreviewPane() {
			m.preview.LineUp(1)
			return nil
		}
		if m.state.MoveCursorUp() {
			m.syncTable()
		}
	case "down", "j":
		if m.state.IsInPreviewPane() {
			m.preview.LineDown(1)
			return nil
		}
		if m.state.MoveCursorDown() {
			m.syncTable()
		}
	case "home", "g":
		m.state.MoveCursorTo(false)
		m.syncTable()
	case "end", "G":
		m.state.MoveCursorTo(true)
		m.syncTable()
	case "tab":
		m.state.HandleTabNavigation()
	case "p":
		m.state.TogglePreview()
		m.table.SetSize(m.width, m.tableHeight())
		m.syncTable()
	case "/":
		m.state.SwitchToSearch()
		cmd := m.searchBar.SetActive(true)
		m.syncTable()
		return cmd
	case "t":
		m.data.cycleType()
		m.syncTable()
	case "s":
		m.data.cycleStatus()
		m.syncTable()
	case "c":
		m.searchBar.Reset()
		m.data.clearFilters()
		m.syncTable()
	case "r":
		return m.reload()
	case "n":
		return m.form.openCreate()
	case "e", "enter":
		return m.editSelected()
	case "d":
		return m.confirmDeleteSelected()
	case "y":
		return m.copySelected()
	}
	return nil
}

func (m *JobsModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searchBar.Reset()
		m.data.setQuery("")
		fallthrough
	case "enter", "tab":
		m.searchBar.SetActive(false)
		m.state.ExitSearch()
		m.syncTable()
		return nil
	}

	var cmd tea.Cmd
	m.searchBar, cmd = m.searchBar.Update(msg)
	m.data.setQuery(m.searchBar.Value())
	m.syncTable()
	return cmd
}

func (m *JobsModel) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if m.form.saving {
		// one save at a time per form
		if msg.String() == "esc" {
			m.form.close()
		}
		return nil
	}

	switch msg.String() {
	case "esc":
		m.form.close()
		return nil
	case "ctrl+s":
		return m.submitForm()
	}
	return m.form.update(msg)
}

// submitForm validates locally, then sends the save in the background
func (m *JobsModel) submitForm() tea.Cmd {
	sub, err := m.form.prepare()
	if err != nil {
		return errorStatusCmd("Cannot save: %v", err)
	}

	if err := m.data.store.Validate(sub.Draft); err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			m.form.err = "Title and Status are required."
		} else {
			m.form.err = err.Error()
		}
		return statusCmd("%s", m.form.err)
	}

	m.form.saving = true
	m.form.err = ""
	return saveJobCmd(m.ctx, m.data.store, sub)
}

func (m *JobsModel) editSelected() tea.Cmd {
	id, err := m.data.resolve(m.data.rendering.Generation, m.state.CursorRow(), view.ActionEdit)
	if err != nil {
		return nil
	}
	cmd, err := m.form.openEdit(m.data.store, id)
	if err != nil {
		var nf *store.NotFoundError
		if errors.As(err, &nf) {
			return errorStatusCmd("Job not found")
		}
		return errorStatusCmd("Cannot edit job: %v", err)
	}
	return cmd
}

func (m *JobsModel) confirmDeleteSelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	gen := m.data.rendering.Generation
	index := m.state.CursorRow()

	m.confirmation.ShowInline(
		fmt.Sprintf("Delete job '%s'?", row.Title),
		true,
		func() tea.Cmd {
			// the rendering may have been replaced while the prompt was up
			id, err := m.data.resolve(gen, index, view.ActionDelete)
			if err != nil {
				return statusCmd("The list changed; delete cancelled")
			}
			return deleteJobCmd(m.ctx, m.data.store, id, row.Title)
		},
		nil,
	)
	return nil
}

// View renders the screen, with the modal over a dimmed backdrop when open
func (m *JobsModel) View() string {
	if m.form.isOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.view(),
			lipgloss.WithWhitespaceChars("░"),
			lipgloss.WithWhitespaceForeground(lipgloss.Color(ColorBackdrop)))
	}

	sections := []string{
		m.renderStats(),
		m.searchBar.View(),
		m.renderFilters(),
		ContentPaddingStyle.Render(m.table.RenderHeader()),
		ContentPaddingStyle.Render(m.table.RenderTable()),
	}

	if m.state.ShowPreview {
		sections = append(sections, m.renderPreview())
	}

	if m.confirmation.Active() {
		sections = append(sections, ConfirmDangerStyle.Render(m.confirmation.ViewWithWidth(m.width)))
	} else {
		sections = append(sections, m.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *JobsModel) renderStats() string {
	cardWidth := max((m.width-8)/3-2, 12)
	stats := m.data.stats
	cards := []string{
		GetStatCardStyle(ColorPrimary, cardWidth).Render(fmt.Sprintf("Total Jobs  %d", stats.Total)),
		GetStatCardStyle(ColorSuccess, cardWidth).Render(fmt.Sprintf("Active  %d", stats.Active)),
		GetStatCardStyle(ColorWarning, cardWidth).Render(fmt.Sprintf("Pending  %d", stats.Pending)),
	}
	return ContentPaddingStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cards[0], " ", cards[1], " ", cards[2]))
}

func (m *JobsModel) renderFilters() string {
	c := m.data.criteria()
	typeLabel := "Type: " + format.Fallback(format.Terminal(c.Type), "All")
	statusLabel := "Status: " + format.Fallback(format.Terminal(c.Status), "All")
	chips := lipgloss.JoinHorizontal(lipgloss.Top,
		GetFilterChipStyle(c.Type != "").Render(typeLabel),
		" ",
		GetFilterChipStyle(c.Status != "").Render(statusLabel),
		"  ",
		DescriptionStyle.Render(fmt.Sprintf("showing %d of %d", len(m.data.view), m.data.store.Len())),
	)
	return ContentPaddingStyle.Render(chips)
}

func (m *JobsModel) renderPreview() string {
	style := InactiveBorderStyle
	if m.state.IsInPreviewPane() {
		style = ActiveBorderStyle
	}
	heading := "DESCRIPTION"
	if row, ok := m.selectedRow(); ok {
		heading = fmt.Sprintf("DESCRIPTION (%s)", row.Title)
	}
	body := GetActiveHeaderStyle(m.state.IsInPreviewPane()).Render(heading) + "\n" + m.preview.View()
	return ContentPaddingStyle.Render(style.Width(max(m.width-4, 10)).Render(body))
}

func (m *JobsModel) renderHelp() string {
	var help string
	if m.state.IsInSearchPane() {
		help = "esc clear+exit search • enter done • type:<type> status:<status> <title words>"
	} else {
		help = strings.Join([]string{
			"/ search", "t type", "s status", "c clear", "↑/↓ nav", "n add", "e edit",
			"d delete", "y copy", "r reload", "p preview", "q quit",
		}, " • ")
	}
	return ContentPaddingStyle.Render(HelpBorderStyle.Width(max(m.width-4, 10)).Render(DescriptionStyle.Render(help)))
}

// rect is a screen rectangle in cells
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// modalRect is where lipgloss.Place puts the modal: centered, with any
// odd cell of slack going to the right and bottom
func (m *JobsModel) modalRect() rect {
	box := m.form.view()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	return rect{
		x: max(m.width-w, 0) / 2,
		y: max(m.height-h, 0) / 2,
		w: w,
		h: h,
	}
}

func pluralJobs(n int) string {
	if n == 1 {
		return "1 job"
	}
	return fmt.Sprintf("%d jobs", n)
}

// capturingInput reports whether keys are currently going to a text field
// or a prompt rather than to the screen's shortcuts
func (m *JobsModel) capturingInput() bool {
	return m.form.isOpen() || m.confirmation.Active() || m.state.IsInSearchPane()
}
