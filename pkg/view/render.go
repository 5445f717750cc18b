// Package view projects a filtered job view and its stats into rows with
// per-row actions. Every call to Render is a full re-projection: nothing
// from a previous rendering is reused, and actions bound by an older
// rendering are refused.
package view

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jobdesk/jobdesk-terminal/pkg/format"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/search"
)

// Placeholder is shown as the only row when the view is empty
const Placeholder = "No jobs found"

// Action is a row-level command
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// RowActions lists the actions every row exposes, in display order
var RowActions = []Action{ActionEdit, ActionDelete}

var (
	// ErrStaleBinding is returned when an action comes from a rendering
	// that has since been replaced.
	ErrStaleBinding = errors.New("action belongs to an older rendering")
	// ErrNoBinding is returned for a row or action that does not exist
	ErrNoBinding = errors.New("no such action")
)

// Row is one display line. Text fields are sanitised for the terminal but
// not markup-escaped; WriteHTML escapes them on output.
type Row struct {
	Index        int
	ID           string
	Title        string
	Type         string
	Status       string
	Applications int
	Duration     string
	Preview      string
	Description  string
}

// Rendering is the output of one Render call
type Rendering struct {
	Generation  uint64
	Rows        []Row
	Stats       search.Stats
	Placeholder string
	Bindings    *Bindings
}

// Empty reports whether the placeholder is shown instead of rows
func (r *Rendering) Empty() bool {
	return len(r.Rows) == 0
}

var generation atomic.Uint64

// Render builds a fresh rendering of the view
func Render(jobs []models.Job, stats search.Stats) *Rendering {
	gen := generation.Add(1)
	r := &Rendering{
		Generation: gen,
		Rows:       make([]Row, 0, len(jobs)),
		Stats:      stats,
		Bindings:   &Bindings{generation: gen, ids: make([]string, 0, len(jobs))},
	}

	for i, job := range jobs {
		r.Rows = append(r.Rows, Row{
			Index:        i + 1,
			ID:           job.ID,
			Title:        format.Terminal(job.Title),
			Type:         format.Terminal(job.Type),
			Status:       format.Terminal(job.Status),
			Applications: job.Applications,
			Duration:     format.Terminal(job.Duration),
			Preview:      format.Preview(format.Terminal(job.Description), format.PreviewLength),
			Description:  job.Description,
		})
		r.Bindings.ids = append(r.Bindings.ids, job.ID)
	}

	if len(r.Rows) == 0 {
		r.Placeholder = Placeholder
	}
	return r
}

// Bindings maps (row, action) to the id of the record rendered on that row
type Bindings struct {
	generation uint64
	ids        []string
}

// Generation returns the rendering generation the bindings belong to
func (b *Bindings) Generation() uint64 {
	return b.generation
}

// Len returns the number of bound rows
func (b *Bindings) Len() int {
	return len(b.ids)
}

// Resolve returns the id an action on a row refers to. gen is the
// generation the caller saw when the action was bound.
func (b *Bindings) Resolve(gen uint64, row int, action Action) (string, error) {
	if gen != b.generation {
		return "", ErrStaleBinding
	}
	if action != ActionEdit && action != ActionDelete {
		return "", fmt.Errorf("%w: action %q", ErrNoBinding, action)
	}
	if row < 0 || row >= len(b.ids) {
		return "", fmt.Errorf("%w: row %d", ErrNoBinding, row)
	}
	return b.ids[row], nil
}
