package search

import (
	"strings"

	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

// Criteria holds the current filter controls. An empty field matches
// every record.
type Criteria struct {
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// IsEmpty reports whether the criteria match everything
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == "" && c.Type == "" && c.Status == ""
}

// Matches reports whether a single job satisfies the criteria
func (c Criteria) Matches(job models.Job) bool {
	if q := strings.ToLower(strings.TrimSpace(c.Text)); q != "" {
		if !strings.Contains(strings.ToLower(job.Title), q) {
			return false
		}
	}
	if c.Type != "" && job.Type != c.Type {
		return false
	}
	if c.Status != "" && job.Status != c.Status {
		return false
	}
	return true
}

// ComputeView returns the jobs matching the criteria in collection order.
// The result never shares a backing array with the collection.
func ComputeView(collection []models.Job, criteria Criteria) []models.Job {
	view := make([]models.Job, 0, len(collection))
	for _, job := range collection {
		if criteria.Matches(job) {
			view = append(view, job)
		}
	}
	return view
}

// Options lists the distinct non-empty types and statuses in the order
// they first appear, for cycling through the filter selectors.
func Options(collection []models.Job) (types, statuses []string) {
	seenType := make(map[string]bool)
	seenStatus := make(map[string]bool)
	for _, job := range collection {
		if job.Type != "" && !seenType[job.Type] {
			seenType[job.Type] = true
			types = append(types, job.Type)
		}
		if job.Status != "" && !seenStatus[job.Status] {
			seenStatus[job.Status] = true
			statuses = append(statuses, job.Status)
		}
	}
	return types, statuses
}

// Next returns the option after current, cycling back to "" (all) after the
// last one. An unknown current value restarts at the first option.
func Next(options []string, current string) string {
	if current == "" {
		if len(options) == 0 {
			return ""
		}
		return options[0]
	}
	for i, opt := range options {
		if opt == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return ""
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0]
}
