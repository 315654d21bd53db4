// Package tui provides the primary terminal user interface implementation.
package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipforge-cli/clipforge/internal/ui"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Process Ephemeral UI Notifications
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case frameMsg:
		b.scheduler.fire(msg)
	case dispatchMsg:
		msg()
		cmds = append(cmds, b.waitForDispatch())
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.shutdown()
			return b, tea.Quit
		}

		var cmd tea.Cmd
		switch b.state {
		case editState:
			cmd = b.updateEdit(msg)
		case pickState:
			cmd = b.updatePick(msg)
		case errorState:
			cmd = b.updateError(msg)
		}
		cmds = append(cmds, cmd)
	default:
		if b.state == pickState {
			var cmd tea.Cmd
			b.pickerC, cmd = b.pickerC.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	b.scroll()
	cmds = append(cmds, b.scheduler.flush())
	return b, tea.Batch(cmds...)
}

// scroll keeps the playhead in view.
func (b *statefulBubble) scroll() {
	cols := b.trackColumns()
	if cols <= 0 {
		return
	}
	visible := float64(cols) / columnsPerSecond(b.timeline.Zoom())
	b.viewStart = followPlayhead(b.viewStart, b.timeline.Playhead(), visible)
}

func (b *statefulBubble) updateEdit(msg tea.KeyMsg) tea.Cmd {
	if !bubblesKey.Matches(msg, b.keymap.quit) {
		b.confirmQuit = false
	}

	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		if b.dirty && !b.confirmQuit {
			b.confirmQuit = true
			return ui.Notify("Unsaved changes, press q again to quit")
		}
		b.shutdown()
		return tea.Quit
	case bubblesKey.Matches(msg, b.keymap.playPause):
		b.clock.Toggle()
	case bubblesKey.Matches(msg, b.keymap.seekBack):
		b.seekBy(-1)
	case bubblesKey.Matches(msg, b.keymap.seekForward):
		b.seekBy(1)
	case bubblesKey.Matches(msg, b.keymap.rewind):
		b.clock.Seek(0)
	case bubblesKey.Matches(msg, b.keymap.nextClip):
		b.cycleSelection(1)
	case bubblesKey.Matches(msg, b.keymap.prevClip):
		b.cycleSelection(-1)
	case bubblesKey.Matches(msg, b.keymap.split):
		return b.splitSelected()
	case bubblesKey.Matches(msg, b.keymap.remove):
		return b.removeSelected()
	case bubblesKey.Matches(msg, b.keymap.reorderLeft):
		b.reorderSelected(-1)
	case bubblesKey.Matches(msg, b.keymap.reorderRight):
		b.reorderSelected(1)
	case bubblesKey.Matches(msg, b.keymap.moveTrack):
		return b.moveSelectedToOtherTrack()
	case bubblesKey.Matches(msg, b.keymap.nudgeLeft):
		b.nudgeSelected(-1)
	case bubblesKey.Matches(msg, b.keymap.nudgeRight):
		b.nudgeSelected(1)
	case bubblesKey.Matches(msg, b.keymap.trimStartLeft):
		b.trimSelectedStart(-1)
	case bubblesKey.Matches(msg, b.keymap.trimStartRight):
		b.trimSelectedStart(1)
	case bubblesKey.Matches(msg, b.keymap.trimEndLeft):
		b.trimSelectedEnd(-1)
	case bubblesKey.Matches(msg, b.keymap.trimEndRight):
		b.trimSelectedEnd(1)
	case bubblesKey.Matches(msg, b.keymap.zoomIn):
		b.zoom(1)
	case bubblesKey.Matches(msg, b.keymap.zoomOut):
		b.zoom(-1)
	case bubblesKey.Matches(msg, b.keymap.add):
		return b.openPicker()
	case bubblesKey.Matches(msg, b.keymap.save):
		return b.saveProject()
	case bubblesKey.Matches(msg, b.keymap.undo):
		return b.undoEdit()
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return nil
}

func (b *statefulBubble) updatePick(msg tea.KeyMsg) tea.Cmd {
	filtering := b.pickerC.FilterState() == list.Filtering

	switch {
	case !filtering && bubblesKey.Matches(msg, b.keymap.back):
		if b.pickerC.FilterState() == list.FilterApplied {
			b.pickerC.ResetFilter()
			return nil
		}
		b.previousState()
		return nil
	case !filtering && bubblesKey.Matches(msg, b.keymap.confirm):
		item, ok := b.pickerC.SelectedItem().(*listItem)
		if !ok {
			return nil
		}
		b.previousState()
		return b.addMedia(item.internal)
	case !filtering && bubblesKey.Matches(msg, b.keymap.quit):
		b.previousState()
		return nil
	}

	var cmd tea.Cmd
	b.pickerC, cmd = b.pickerC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.KeyMsg) tea.Cmd {
	switch {
	case bubblesKey.Matches(msg, b.keymap.back):
		b.lastError = nil
		b.previousState()
	case bubblesKey.Matches(msg, b.keymap.quit):
		b.shutdown()
		return tea.Quit
	}
	return nil
}
