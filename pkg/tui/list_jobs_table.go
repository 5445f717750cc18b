package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jobdesk/jobdesk-terminal/pkg/view"
)

// JobsTableRenderer draws the rows of a rendering into a scrolling viewport
type JobsTableRenderer struct {
	Width       int
	Height      int
	Rows        []view.Row
	Placeholder string
	Cursor      int
	IsActive    bool
	Viewport    viewport.Model
}

// NewJobsTableRenderer creates a new table renderer
func NewJobsTableRenderer(width, height int) *JobsTableRenderer {
	return &JobsTableRenderer{
		Width:    width,
		Height:   height,
		IsActive: true,
		Viewport: viewport.New(max(width-4, 1), max(height, 1)),
	}
}

// SetSize updates the dimensions of the table
func (r *JobsTableRenderer) SetSize(width, height int) {
	r.Width = width
	r.Height = height
	r.Viewport.Width = max(width-4, 1)
	r.Viewport.Height = max(height, 1)
	r.updateContent()
}

// SetRows replaces the rows shown. placeholder is used when rows is empty.
func (r *JobsTableRenderer) SetRows(rows []view.Row, placeholder string) {
	r.Rows = rows
	r.Placeholder = placeholder
	r.updateContent()
	r.updateViewportScroll()
}

// SetCursor updates the cursor position
func (r *JobsTableRenderer) SetCursor(cursor int) {
	r.Cursor = cursor
	r.updateContent()
	r.updateViewportScroll()
}

// SetActive updates the active state
func (r *JobsTableRenderer) SetActive(active bool) {
	r.IsActive = active
	r.updateContent()
}

// RenderHeader renders the column headings
func (r *JobsTableRenderer) RenderHeader() string {
	titleWidth, previewWidth := columnWidths(r.Width - 4)
	header := "  " + strings.Join([]string{
		fitCell("#", indexWidth),
		fitCell("Title", titleWidth),
		fitCell("Type", typeWidth),
		fitCell("Status", statusWidth),
		fitCellRight("Apps", appsWidth),
		fitCell("Duration", durationWidth),
		fitCell("Description", previewWidth),
		fitCell("Actions", actionsWidth),
	}, " ")
	return HeaderStyle.Render(header)
}

// RenderTable renders the visible part of the table
func (r *JobsTableRenderer) RenderTable() string {
	return r.Viewport.View()
}

func (r *JobsTableRenderer) updateContent() {
	r.Viewport.SetContent(r.buildTableContent())
}

func (r *JobsTableRenderer) buildTableContent() string {
	if len(r.Rows) == 0 {
		placeholder := r.Placeholder
		if placeholder == "" {
			placeholder = view.Placeholder
		}
		if r.IsActive {
			return EmptyActiveStyle.Render(placeholder) + "\n\n" + DescriptionStyle.Render("Press 'n' to add a job")
		}
		return EmptyInactiveStyle.Render(placeholder)
	}

	titleWidth, previewWidth := columnWidths(r.Width - 4)

	var content strings.Builder
	for i, row := range r.Rows {
		isSelected := r.IsActive && i == r.Cursor

		prefix := "  "
		if isSelected {
			prefix = "▸ "
		}

		titlePart := fitCell(row.Title, titleWidth)
		statusPart := GetStatusBadgeStyle(row.Status).Render(fitCell(row.Status, statusWidth))
		typePart := fitCell(row.Type, typeWidth)
		tail := strings.Join([]string{
			fitCellRight(fmt.Sprintf("%d", row.Applications), appsWidth),
			fitCell(row.Duration, durationWidth),
			fitCell(row.Preview, previewWidth),
		}, " ")

		actions := DescriptionStyle.Render(fitCell("e edit  d del", actionsWidth))
		indexPart := fitCellRight(fmt.Sprintf("%d", row.Index), indexWidth)

		if isSelected {
			content.WriteString(prefix + SelectedStyle.Render(indexPart+" "+titlePart) + " " +
				NormalStyle.Render(typePart) + " " + statusPart + " " + NormalStyle.Render(tail) + " " + actions)
		} else {
			content.WriteString(prefix + NormalStyle.Render(indexPart+" "+titlePart) + " " +
				NormalStyle.Render(typePart) + " " + statusPart + " " + NormalStyle.Render(tail) + " " + actions)
		}

		if i < len(r.Rows)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}

// updateViewportScroll keeps the cursor row visible
func (r *JobsTableRenderer) updateViewportScroll() {
	if len(r.Rows) == 0 {
		r.Viewport.SetYOffset(0)
		return
	}
	if r.Cursor < r.Viewport.YOffset {
		r.Viewport.SetYOffset(r.Cursor)
	} else if r.Cursor >= r.Viewport.YOffset+r.Viewport.Height {
		r.Viewport.SetYOffset(r.Cursor - r.Viewport.Height + 1)
	}
}
