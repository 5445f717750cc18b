package view

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jobdesk/jobdesk-terminal/pkg/format"
)

const columnCount = 8

// WriteHTML writes the rendering as the stats block plus a job table.
// Every record-derived value goes through format.Escape.
func WriteHTML(w io.Writer, r *Rendering) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "<section class=\"stats\">\n")
	fmt.Fprintf(bw, "  <div id=\"totalJobs\">%d</div>\n", r.Stats.Total)
	fmt.Fprintf(bw, "  <div id=\"activeJobs\">%d</div>\n", r.Stats.Active)
	fmt.Fprintf(bw, "  <div id=\"pendingJobs\">%d</div>\n", r.Stats.Pending)
	fmt.Fprintf(bw, "</section>\n")

	fmt.Fprintf(bw, "<table id=\"jobTable\" data-generation=\"%d\">\n", r.Generation)
	fmt.Fprintf(bw, "<thead><tr><th>#</th><th>Title</th><th>Type</th><th>Status</th><th>Applications</th><th>Duration</th><th>Description</th><th>Actions</th></tr></thead>\n")
	fmt.Fprintf(bw, "<tbody>\n")

	if r.Empty() {
		fmt.Fprintf(bw, "<tr><td colspan=\"%d\">%s</td></tr>\n", columnCount, format.Escape(r.Placeholder))
	}
	for _, row := range r.Rows {
		id := format.Escape(row.ID)
		fmt.Fprintf(bw, "<tr data-id=\"%s\">", id)
		fmt.Fprintf(bw, "<td>%d</td>", row.Index)
		fmt.Fprintf(bw, "<td>%s</td>", format.Escape(row.Title))
		fmt.Fprintf(bw, "<td>%s</td>", format.Escape(row.Type))
		fmt.Fprintf(bw, "<td>%s</td>", format.Escape(row.Status))
		fmt.Fprintf(bw, "<td>%d</td>", row.Applications)
		fmt.Fprintf(bw, "<td>%s</td>", format.Escape(row.Duration))
		fmt.Fprintf(bw, "<td><small>%s</small></td>", format.Escape(row.Preview))
		fmt.Fprintf(bw, "<td>")
		for _, action := range RowActions {
			class := "inline-btn"
			label := "Edit"
			if action == ActionDelete {
				class += " danger"
				label = "Delete"
			}
			fmt.Fprintf(bw, "<button class=\"%s\" data-action=\"%s\" data-id=\"%s\">%s</button>", class, action, id, label)
		}
		fmt.Fprintf(bw, "</td></tr>\n")
	}

	fmt.Fprintf(bw, "</tbody>\n</table>\n")
	return bw.Flush()
}

// WriteDocument wraps WriteHTML in a minimal standalone page
func WriteDocument(w io.Writer, title string, r *Rendering) error {
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n", format.Escape(title)); err != nil {
		return err
	}
	if err := WriteHTML(w, r); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</body>\n</html>\n")
	return err
}
