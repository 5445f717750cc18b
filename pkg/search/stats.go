package search

import (
	"strings"

	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

// Stats summarises a view
type Stats struct {
	Total   int `json:"total" yaml:"total"`
	Active  int `json:"active" yaml:"active"`
	Pending int `json:"pending" yaml:"pending"`
}

// ComputeStats counts the view. Pass the filtered view, not the whole
// collection, so the numbers follow the applied filters.
func ComputeStats(view []models.Job) Stats {
	stats := Stats{Total: len(view)}
	for _, job := range view {
		switch strings.ToLower(job.Status) {
		case models.StatusActive:
			stats.Active++
		case models.StatusPending:
			stats.Pending++
		}
	}
	return stats
}
