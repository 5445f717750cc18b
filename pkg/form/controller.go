// Package form holds the state machine behind the single shared
// create/edit form.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jobdesk/jobdesk-terminal/pkg/format"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
)

// ErrClosed is returned when submitting a form that is not open
var ErrClosed = errors.New("form is not open")

// Mode tells whether an open form creates or edits
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Target identifies what a click landed on while the form is open
type Target int

const (
	TargetBody Target = iota
	TargetBackground
)

// Field names accepted by SetField, in form order
const (
	FieldTitle        = "title"
	FieldType         = "type"
	FieldStatus       = "status"
	FieldApplications = "applications"
	FieldDuration     = "duration"
	FieldDescription  = "description"
)

// FieldNames lists the form fields in display order
var FieldNames = []string{FieldTitle, FieldType, FieldStatus, FieldApplications, FieldDuration, FieldDescription}

// Fields holds the raw values as typed. Applications stays a string until
// the draft is built so half-typed input is never lost.
type Fields struct {
	Title        string
	Type         string
	Status       string
	Applications string
	Duration     string
	Description  string
}

// DefaultFields are the values of a fresh create form
func DefaultFields() Fields {
	return Fields{Applications: "0"}
}

// FieldsFrom fills the form from an existing job
func FieldsFrom(job models.Job) Fields {
	return Fields{
		Title:        job.Title,
		Type:         job.Type,
		Status:       job.Status,
		Applications: strconv.Itoa(job.Applications),
		Duration:     job.Duration,
		Description:  job.Description,
	}
}

// Draft converts the typed values into a normalised draft
func (f Fields) Draft() models.Draft {
	return models.Draft{
		Title:        f.Title,
		Type:         f.Type,
		Status:       f.Status,
		Applications: format.Applications(f.Applications),
		Duration:     f.Duration,
		Description:  f.Description,
	}.Normalize()
}

// Get returns a field by name
func (f Fields) Get(name string) (string, error) {
	switch name {
	case FieldTitle:
		return f.Title, nil
	case FieldType:
		return f.Type, nil
	case FieldStatus:
		return f.Status, nil
	case FieldApplications:
		return f.Applications, nil
	case FieldDuration:
		return f.Duration, nil
	case FieldDescription:
		return f.Description, nil
	}
	return "", fmt.Errorf("unknown field %q", name)
}

// Lookup is what the controller needs to open an edit form
type Lookup interface {
	Find(id string) (models.Job, bool)
}

// Saver performs the create or update for a submission
type Saver interface {
	Create(ctx context.Context, draft models.Draft) (models.Job, error)
	Update(ctx context.Context, id string, draft models.Draft) (models.Job, error)
}

// Controller is the closed / open(create) / open(edit id) state machine
type Controller struct {
	open   bool
	mode   Mode
	editID string
	fields Fields

	// session changes whenever the form is opened or closed
	session uint64
}

// NewController returns a closed form
func NewController() *Controller {
	return &Controller{}
}

// IsOpen reports whether the form is shown
func (c *Controller) IsOpen() bool { return c.open }

// Mode returns the mode of an open form
func (c *Controller) Mode() Mode { return c.mode }

// EditID returns the id being edited, or "" in create mode
func (c *Controller) EditID() string { return c.editID }

// Fields returns the current field values
func (c *Controller) Fields() Fields { return c.fields }

// OpenCreate opens an empty form for a new job
func (c *Controller) OpenCreate() {
	c.session++
	c.open = true
	c.mode = ModeCreate
	c.editID = ""
	c.fields = DefaultFields()
}

// OpenEdit opens the form for an existing job. An unknown id closes the
// form and returns a *store.NotFoundError.
func (c *Controller) OpenEdit(lookup Lookup, id string) error {
	job, ok := lookup.Find(id)
	if !ok {
		c.Close()
		return &store.NotFoundError{ID: id}
	}
	c.session++
	c.open = true
	c.mode = ModeEdit
	c.editID = job.ID
	c.fields = FieldsFrom(job)
	return nil
}

// Close hides the form and throws away whatever was typed
func (c *Controller) Close() {
	c.session++
	c.open = false
	c.mode = ModeCreate
	c.editID = ""
	c.fields = Fields{}
}

// Click handles a pointer press while the form is open. Only a press
// whose target is the background itself closes the form.
func (c *Controller) Click(target Target) bool {
	if !c.open || target != TargetBackground {
		return false
	}
	c.Close()
	return true
}

// SetField changes one field of an open form
func (c *Controller) SetField(name, value string) error {
	if !c.open {
		return ErrClosed
	}
	switch name {
	case FieldTitle:
		c.fields.Title = value
	case FieldType:
		c.fields.Type = value
	case FieldStatus:
		c.fields.Status = value
	case FieldApplications:
		c.fields.Applications = value
	case FieldDuration:
		c.fields.Duration = value
	case FieldDescription:
		c.fields.Description = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// SetFields replaces all field values of an open form
func (c *Controller) SetFields(f Fields) error {
	if !c.open {
		return ErrClosed
	}
	c.fields = f
	return nil
}

// Submission is a snapshot of an open form ready to be sent. It does not
// touch the controller, so it can run off the UI goroutine.
type Submission struct {
	Mode  Mode
	ID    string
	Draft models.Draft

	session uint64
}

// Execute sends the submission through the saver
func (s Submission) Execute(ctx context.Context, saver Saver) (models.Job, error) {
	if s.Mode == ModeEdit {
		return saver.Update(ctx, s.ID, s.Draft)
	}
	return saver.Create(ctx, s.Draft)
}

// Prepare snapshots the open form into a submission
func (c *Controller) Prepare() (Submission, error) {
	if !c.open {
		return Submission{}, ErrClosed
	}
	return Submission{Mode: c.mode, ID: c.editID, Draft: c.fields.Draft(), session: c.session}, nil
}

// Current reports whether sub was prepared from the form that is open now.
// Closing or reopening the form, even in the same mode, ends that form.
func (c *Controller) Current(sub Submission) bool {
	return c.open && sub.session == c.session
}

// Complete applies the outcome of a submission: success closes the form,
// failure keeps it open with the same values so the user can retry. It
// returns false, changing nothing, when the submitted form is gone.
func (c *Controller) Complete(sub Submission, err error) bool {
	if !c.Current(sub) {
		return false
	}
	if err == nil {
		c.Close()
	}
	return true
}

// Submit prepares, executes and completes in one blocking call
func (c *Controller) Submit(ctx context.Context, saver Saver) (models.Job, error) {
	sub, err := c.Prepare()
	if err != nil {
		return models.Job{}, err
	}
	job, err := sub.Execute(ctx, saver)
	c.Complete(sub, err)
	return job, err
}
