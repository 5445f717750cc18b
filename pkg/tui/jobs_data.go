package tui

import (
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/search"
	"github.com/jobdesk/jobdesk-terminal/pkg/store"
	"github.com/jobdesk/jobdesk-terminal/pkg/view"
)

const (
	loadingPlaceholder = "Loading..."
	failedPlaceholder  = "Failed to load jobs. Press 'r' to retry."
)

// jobData is the screen's state: the store, the current filters and
// everything derived from them. refresh recomputes the derived values in
// one pass so they never disagree with each other.
type jobData struct {
	store *store.Store

	query        string
	typeFilter   string
	statusFilter string

	view      []models.Job
	stats     search.Stats
	rendering *view.Rendering
}

func newJobData(st *store.Store) *jobData {
	d := &jobData{store: st}
	d.refresh()
	return d
}

// criteria combines the search text with the selectors. A type: or
// status: token typed into the search bar wins over its selector.
func (d *jobData) criteria() search.Criteria {
	c := search.ParseQuery(d.query)
	if c.Type == "" {
		c.Type = d.typeFilter
	}
	if c.Status == "" {
		c.Status = d.statusFilter
	}
	return c
}

func (d *jobData) refresh() {
	d.view = search.ComputeView(d.store.Jobs(), d.criteria())
	d.stats = search.ComputeStats(d.view)
	d.rendering = view.Render(d.view, d.stats)
}

func (d *jobData) setQuery(q string) {
	if q == d.query {
		return
	}
	d.query = q
	d.refresh()
}

func (d *jobData) cycleType() {
	types, _ := search.Options(d.store.Jobs())
	d.typeFilter = search.Next(types, d.typeFilter)
	d.refresh()
}

func (d *jobData) cycleStatus() {
	_, statuses := search.Options(d.store.Jobs())
	d.statusFilter = search.Next(statuses, d.statusFilter)
	d.refresh()
}

func (d *jobData) clearFilters() {
	d.query = ""
	d.typeFilter = ""
	d.statusFilter = ""
	d.refresh()
}

// placeholder is the text shown when the view has no rows
func (d *jobData) placeholder() string {
	if len(d.rendering.Rows) > 0 {
		return ""
	}
	switch d.store.State() {
	case store.StateLoading:
		return loadingPlaceholder
	case store.StateFailed:
		return failedPlaceholder
	}
	return d.rendering.Placeholder
}

// resolve maps a row and action of the current rendering to a job id
func (d *jobData) resolve(gen uint64, row int, action view.Action) (string, error) {
	return d.rendering.Bindings.Resolve(gen, row, action)
}
