package tui

import "sync"

type pane int

const (
	tablePane pane = iota
	searchPane
	previewPane
)

// StateManager tracks the cursor, the focused pane and preview visibility
// for the jobs screen
type StateManager struct {
	mu sync.RWMutex

	Cursor      int
	ActivePane  pane
	ShowPreview bool

	rowCount int
}

// NewStateManager creates a new state manager instance
func NewStateManager(showPreview bool) *StateManager {
	return &StateManager{
		ActivePane:  tablePane,
		ShowPreview: showPreview,
	}
}

// UpdateCount records how many rows are shown and pulls the cursor back
// inside them
func (sm *StateManager) UpdateCount(count int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.rowCount = count

	if sm.Cursor >= count && count > 0 {
		sm.Cursor = count - 1
	} else if count == 0 {
		sm.Cursor = 0
	}
}

// RowCount returns the number of rows last reported
func (sm *StateManager) RowCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.rowCount
}

// CursorRow returns the selected row, or -1 when there are no rows
func (sm *StateManager) CursorRow() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if sm.rowCount == 0 {
		return -1
	}
	return sm.Cursor
}

// MoveCursorUp moves the selection up one row
func (sm *StateManager) MoveCursorUp() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.Cursor > 0 {
		sm.Cursor--
		return true
	}
	return false
}

// MoveCursorDown moves the selection down one row
func (sm *StateManager) MoveCursorDown() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.Cursor < sm.rowCount-1 {
		sm.Cursor++
		return true
	}
	return false
}

// MoveCursorTo jumps to the first or last row
func (sm *StateManager) MoveCursorTo(last bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if last && sm.rowCount > 0 {
		sm.Cursor = sm.rowCount - 1
	} else {
		sm.Cursor = 0
	}
}

// HandleTabNavigation switches between the table and the preview pane
func (sm *StateManager) HandleTabNavigation() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	switch sm.ActivePane {
	case tablePane:
		if sm.ShowPreview {
			sm.ActivePane = previewPane
		}
	default:
		sm.ActivePane = tablePane
	}
}

// TogglePreview shows or hides the preview pane
func (sm *StateManager) TogglePreview() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.ShowPreview = !sm.ShowPreview
	if !sm.ShowPreview && sm.ActivePane == previewPane {
		sm.ActivePane = tablePane
	}
}

// SwitchToSearch switches to the search pane
func (sm *StateManager) SwitchToSearch() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.ActivePane = searchPane
}

// ExitSearch returns focus to the table
func (sm *StateManager) ExitSearch() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.ActivePane = tablePane
}

// IsInSearchPane returns true if the search pane is active
func (sm *StateManager) IsInSearchPane() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.ActivePane == searchPane
}

// IsInPreviewPane returns true if the preview pane is active
func (sm *StateManager) IsInPreviewPane() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.ActivePane == previewPane
}
