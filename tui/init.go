// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the dispatch pump that carries background results into the update loop.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.waitForDispatch(), b.scheduler.flush())
}
