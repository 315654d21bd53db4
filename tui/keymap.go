// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	playPause, seekBack, seekForward, rewind,
	nextClip, prevClip,
	split, remove, reorderLeft, reorderRight, moveTrack,
	nudgeLeft, nudgeRight,
	trimStartLeft, trimStartRight, trimEndLeft, trimEndRight,
	zoomIn, zoomOut,
	add, save, undo,
	confirm, back, filter,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("play/pause")),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "seek back"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "seek forward"),
		),
		rewind: key.NewBinding(
			key.WithKeys("home", "0"),
			key.WithHelp("home", "rewind"),
		),
		nextClip: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next clip"),
		),
		prevClip: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous clip"),
		),
		split: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "split"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		reorderLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "move earlier"),
		),
		reorderRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "move later"),
		),
		moveTrack: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "other track"),
		),
		nudgeLeft: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "nudge left"),
		),
		nudgeRight: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "nudge right"),
		),
		trimStartLeft: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "extend start"),
		),
		trimStartRight: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "trim start"),
		),
		trimEndLeft: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "trim end"),
		),
		trimEndRight: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "extend end"),
		),
		zoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		zoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add media"),
		),
		save: key.NewBinding(
			key.WithKeys("w", "ctrl+s"),
			key.WithHelp("w", "save"),
		),
		undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case editState:
		return h(k.playPause, k.nextClip, k.split, k.remove, k.add, k.save, k.showHelp),
			h(
				k.playPause, k.seekBack, k.seekForward, k.rewind,
				k.nextClip, k.prevClip, k.split, k.remove,
				k.reorderLeft, k.reorderRight, k.moveTrack, k.nudgeLeft, k.nudgeRight,
				k.trimStartLeft, k.trimStartRight, k.trimEndLeft, k.trimEndRight,
				k.zoomIn, k.zoomOut, k.add, k.save, k.undo, k.quit,
			)
	case pickState:
		add := withDescription(k.confirm, "add to timeline")
		return to2(h(add, k.filter, k.back))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		Filter:               k.filter,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
