package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobdesk/jobdesk-terminal/pkg/form"
)

const (
	formWidth         = 64
	descriptionHeight = 5
)

var fieldLabels = map[string]string{
	form.FieldTitle:        "Title *",
	form.FieldType:         "Type",
	form.FieldStatus:       "Status *",
	form.FieldApplications: "Applications",
	form.FieldDuration:     "Duration",
	form.FieldDescription:  "Description",
}

// jobForm is the modal used for both adding and editing. The widgets hold
// what is typed; the controller holds the form state that gets submitted.
type jobForm struct {
	ctrl        *form.Controller
	inputs      []textinput.Model // title, type, status, applications, duration
	description textarea.Model
	focus       int
	saving      bool
	err         string
}

func newJobForm() *jobForm {
	f := &jobForm{ctrl: form.NewController()}

	for _, name := range form.FieldNames[:5] {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = formWidth - 24
		switch name {
		case form.FieldStatus:
			ti.Placeholder = "active, pending, ..."
		case form.FieldApplications:
			ti.Placeholder = "0"
			ti.CharLimit = 10
		case form.FieldType:
			ti.Placeholder = "Full-time, Contract, ..."
		}
		f.inputs = append(f.inputs, ti)
	}

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetWidth(formWidth - 8)
	ta.SetHeight(descriptionHeight)
	ta.CharLimit = 0
	f.description = ta

	return f
}

func (f *jobForm) isOpen() bool {
	return f.ctrl.IsOpen()
}

func (f *jobForm) openCreate() tea.Cmd {
	f.ctrl.OpenCreate()
	return f.load()
}

func (f *jobForm) openEdit(lookup form.Lookup, id string) (tea.Cmd, error) {
	if err := f.ctrl.OpenEdit(lookup, id); err != nil {
		return nil, err
	}
	return f.load(), nil
}

func (f *jobForm) close() {
	f.ctrl.Close()
	f.saving = false
	f.err = ""
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.description.Blur()
}

// click closes the form when the click landed on the backdrop
func (f *jobForm) click(target form.Target) bool {
	closed := f.ctrl.Click(target)
	if closed {
		f.close()
	}
	return closed
}

// load copies the controller's fields into the widgets
func (f *jobForm) load() tea.Cmd {
	fields := f.ctrl.Fields()
	values := []string{fields.Title, fields.Type, fields.Status, fields.Applications, fields.Duration}
	for i := range f.inputs {
		f.inputs[i].SetValue(values[i])
	}
	f.description.SetValue(fields.Description)
	f.saving = false
	f.err = ""
	f.focus = 0
	return f.applyFocus()
}

// sync copies the widgets into the controller
func (f *jobForm) sync() error {
	return f.ctrl.SetFields(form.Fields{
		Title:        f.inputs[0].Value(),
		Type:         f.inputs[1].Value(),
		Status:       f.inputs[2].Value(),
		Applications: f.inputs[3].Value(),
		Duration:     f.inputs[4].Value(),
		Description:  f.description.Value(),
	})
}

// prepare snapshots the form for saving
func (f *jobForm) prepare() (form.Submission, error) {
	if err := f.sync(); err != nil {
		return form.Submission{}, err
	}
	return f.ctrl.Prepare()
}

// complete applies a save result; failures keep the form open as typed
func (f *jobForm) complete(sub form.Submission, err error) {
	if !f.ctrl.Complete(sub, err) {
		// the form was closed or reopened while saving
		return
	}
	f.saving = false
	if err != nil {
		f.err = err.Error()
		return
	}
	if !f.ctrl.IsOpen() {
		f.close()
	}
}

func (f *jobForm) fieldCount() int {
	return len(f.inputs) + 1
}

func (f *jobForm) nextField(reverse bool) tea.Cmd {
	n := f.fieldCount()
	if reverse {
		f.focus = (f.focus - 1 + n) % n
	} else {
		f.focus = (f.focus + 1) % n
	}
	return f.applyFocus()
}

func (f *jobForm) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	if f.focus == len(f.inputs) {
		cmd = f.description.Focus()
	} else {
		f.description.Blur()
	}
	return cmd
}

// update routes a key to the focused widget
func (f *jobForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		if msg.String() == "down" && f.focus == len(f.inputs) {
			break
		}
		return f.nextField(false)
	case "shift+tab", "up":
		if msg.String() == "up" && f.focus == len(f.inputs) {
			break
		}
		return f.nextField(true)
	case "enter":
		if f.focus < len(f.inputs) {
			return f.nextField(false)
		}
	}

	var cmd tea.Cmd
	if f.focus < len(f.inputs) {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	} else {
		f.description, cmd = f.description.Update(msg)
	}
	_ = f.sync()
	return cmd
}

func (f *jobForm) title() string {
	if f.ctrl.Mode() == form.ModeEdit {
		return "EDIT JOB"
	}
	return "ADD JOB"
}

// view renders the modal box
func (f *jobForm) view() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(f.title()))
	b.WriteString("\n\n")

	for i, name := range form.FieldNames {
		label := LabelStyle
		if i == f.focus {
			label = FocusedLabelStyle
		}
		if i < len(f.inputs) {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[name]), f.inputs[i].View()))
			b.WriteString("\n")
			continue
		}
		b.WriteString(label.Render(fieldLabels[name]))
		b.WriteString("\n")
		b.WriteString(f.description.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case f.saving:
		b.WriteString(PlaceholderStyle.Render("Saving..."))
	case f.err != "":
		b.WriteString(ErrorStyle.Render(f.err))
	default:
		b.WriteString(DescriptionStyle.Render("tab next • ctrl+s save • esc cancel"))
	}

	return ModalStyle.Width(formWidth).Render(b.String())
}
