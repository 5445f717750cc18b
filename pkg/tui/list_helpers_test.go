package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestFitCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"pads short text", "abc", 6, "abc   "},
		{"exact width unchanged", "abcdef", 6, "abcdef"},
		{"truncates with tail", "abcdefghij", 6, "abcde…"},
		{"zero width", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fitCell(tt.input, tt.width)
			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.Equal(t, tt.width, lipgloss.Width(got))
			}
		})
	}
}

func TestFitCellRight(t *testing.T) {
	assert.Equal(t, "   42", fitCellRight("42", 5))
	assert.Equal(t, 5, lipgloss.Width(fitCellRight("1234567", 5)))
}

func TestColumnWidths(t *testing.T) {
	t.Run("wide terminal splits the remainder", func(t *testing.T) {
		title, preview := columnWidths(200)
		assert.Greater(t, title, 12)
		assert.Greater(t, preview, title)
	})

	t.Run("narrow terminal keeps minimums", func(t *testing.T) {
		title, preview := columnWidths(40)
		assert.Equal(t, 12, title)
		assert.Equal(t, 10, preview)
	})
}

func TestPreprocessContent(t *testing.T) {
	assert.Equal(t, "a\nb\nc", preprocessContent("a\r\nb\rc"))
}
