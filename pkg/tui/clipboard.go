package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

// clipboardWrite is swapped out in tests
var clipboardWrite = clipboard.WriteAll

// copySelected puts the selected job on the clipboard as YAML
func (m *JobsModel) copySelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	job, found := m.data.store.Find(row.ID)
	if !found {
		return errorStatusCmd("Job not found")
	}

	out, err := jobYAML(job)
	if err != nil {
		return errorStatusCmd("Failed to copy job: %v", err)
	}
	if err := clipboardWrite(out); err != nil {
		return errorStatusCmd("Failed to copy job: %v", err)
	}
	return statusCmd("%s → clipboard", row.Title)
}

func jobYAML(job models.Job) (string, error) {
	data, err := yaml.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("encode job: %w", err)
	}
	return string(data), nil
}
