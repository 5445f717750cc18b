package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Fixed column widths for the jobs table
const (
	indexWidth    = 4
	typeWidth     = 12
	statusWidth   = 10
	appsWidth     = 5
	durationWidth = 10
	actionsWidth  = 13
	// one space between each of the eight columns plus the row prefix
	columnGaps = 7 + 2
)

// columnWidths splits what remains after the fixed columns between title
// and description preview
func columnWidths(totalWidth int) (titleWidth, previewWidth int) {
	available := totalWidth - indexWidth - typeWidth - statusWidth - appsWidth - durationWidth - actionsWidth - columnGaps
	titleWidth = available * 40 / 100
	previewWidth = available - titleWidth

	if titleWidth < 12 {
		titleWidth = 12
	}
	if previewWidth < 10 {
		previewWidth = 10
	}
	return
}

// fitCell truncates s to width cells and pads it so columns line up. It
// measures printable width, so wide runes are counted correctly.
func fitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = truncate.StringWithTail(s, uint(width), "…")
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// fitCellRight is fitCell for right-aligned numeric columns
func fitCellRight(s string, width int) string {
	if lipgloss.Width(s) > width {
		return fitCell(s, width)
	}
	return strings.Repeat(" ", width-lipgloss.Width(s)) + s
}

// preprocessContent normalises line endings before wrapping
func preprocessContent(content string) string {
	processed := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(processed, "\r", "\n")
}
