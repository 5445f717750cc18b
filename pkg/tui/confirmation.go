package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Message     string // Main confirmation message
	Destructive bool   // If true, Yes is red, No is green
	YesLabel    string // Custom label for Yes (default: "Yes")
	NoLabel     string // Custom label for No (default: "No")
}

// ConfirmationModel handles inline y/n prompts. Nothing happens until the
// user answers: onConfirm runs only on an explicit yes.
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
	viewWidth int // Width for centering
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
}

// ShowInline is a shortcut for a one-line prompt
func (m *ConfirmationModel) ShowInline(message string, destructive bool, onConfirm, onCancel func() tea.Cmd) {
	m.Show(ConfirmationConfig{
		Message:     message,
		Destructive: destructive,
	}, onConfirm, onCancel)
}

// Hide deactivates the confirmation without running either callback
func (m *ConfirmationModel) Hide() {
	m.active = false
	m.onConfirm = nil
	m.onCancel = nil
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation. Any key other than
// y/n/esc is swallowed while the prompt is shown.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		confirm := m.onConfirm
		m.Hide()
		if confirm != nil {
			return confirm()
		}
		return nil

	case "n", "N", "esc":
		cancel := m.onCancel
		m.Hide()
		if cancel != nil {
			return cancel()
		}
		return nil
	}

	return nil
}

// View renders the prompt
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	message := fmt.Sprintf("%s %s", m.config.Message, m.formatOptions())
	if m.viewWidth > 0 && lipgloss.Width(message) < m.viewWidth {
		return lipgloss.NewStyle().
			Width(m.viewWidth).
			Align(lipgloss.Center).
			Render(message)
	}
	return message
}

// ViewWithWidth renders the prompt centered in width
func (m *ConfirmationModel) ViewWithWidth(width int) string {
	m.viewWidth = width
	return m.View()
}

func (m *ConfirmationModel) formatOptions() string {
	yesColor, noColor := ColorSuccess, ColorDanger
	if m.config.Destructive {
		yesColor, noColor = ColorDanger, ColorSuccess
	}
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(yesColor)).Bold(true).Render("[y] " + m.config.YesLabel)
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(noColor)).Bold(true).Render("[n] " + m.config.NoLabel)
	return yes + "  " + no
}
