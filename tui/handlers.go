// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipforge-cli/clipforge/internal/ui"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/media"
	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// fallbackClipDuration is used for media whose duration could not be probed.
const fallbackClipDuration = 5.0

// edit runs fn and records an undo step when it changed the timeline.
func (b *statefulBubble) edit(fn func() bool) bool {
	before := b.timeline.Snapshot()
	if !fn() {
		return false
	}

	b.undo.Push(before)
	b.dirty = true
	return true
}

func (b *statefulBubble) undoEdit() tea.Cmd {
	previous, ok := b.undo.Pop()
	if !ok {
		return ui.Notify("Nothing to undo")
	}

	b.timeline.Restore(previous)
	b.dirty = true
	b.ensureSelection()
	return nil
}

func (b *statefulBubble) selectedClip() mo.Option[timeline.Clip] {
	return b.timeline.Clip(b.selected)
}

// ensureSelection keeps the selection on an existing clip.
func (b *statefulBubble) ensureSelection() {
	if b.selectedClip().IsPresent() {
		return
	}

	b.selected = ""
	if first, ok := lo.First(b.timeline.Clips()); ok {
		b.selected = first.ID
	}
}

// cycleSelection moves the selection by delta through the time-ordered clips.
func (b *statefulBubble) cycleSelection(delta int) {
	clips := b.timeline.Clips()
	if len(clips) == 0 {
		b.selected = ""
		return
	}

	_, index, found := lo.FindIndexOf(clips, func(c timeline.Clip) bool {
		return c.ID == b.selected
	})
	if !found {
		b.selected = clips[0].ID
		return
	}

	index = ((index+delta)%len(clips) + len(clips)) % len(clips)
	b.selected = clips[index].ID
}

func (b *statefulBubble) mediaDuration(mediaID string) mo.Option[float64] {
	m, ok := b.library.Resolve(mediaID).Get()
	if !ok {
		return mo.None[float64]()
	}
	return m.Duration()
}

func (b *statefulBubble) splitSelected() tea.Cmd {
	clip, ok := b.selectedClip().Get()
	if !ok {
		return nil
	}

	at := b.timeline.Playhead()
	if !b.timeline.CanSplitAt(clip.ID, at) {
		return ui.Notify("Move the playhead inside the selected clip to split it")
	}

	b.edit(func() bool {
		second, ok := b.timeline.SplitClip(clip.ID, at)
		if ok {
			b.selected = second.ID
		}
		return ok
	})
	return nil
}

func (b *statefulBubble) removeSelected() tea.Cmd {
	clip, ok := b.selectedClip().Get()
	if !ok {
		return nil
	}

	previous, next := b.timeline.Neighbors(clip.ID)
	b.edit(func() bool {
		return b.timeline.RemoveClip(clip.ID)
	})

	if n, ok := next.Get(); ok {
		b.selected = n.ID
	} else if p, ok := previous.Get(); ok {
		b.selected = p.ID
	}
	b.ensureSelection()
	return ui.Notify("Removed " + clipLabel(clip))
}

// reorderSelected shifts the selected clip by delta places within its track.
func (b *statefulBubble) reorderSelected(delta int) {
	clip, ok := b.selectedClip().Get()
	if !ok {
		return
	}

	_, index, found := lo.FindIndexOf(b.timeline.TrackClips(clip.Track), func(c timeline.Clip) bool {
		return c.ID == clip.ID
	})
	if !found || index+delta < 0 {
		return
	}

	b.edit(func() bool {
		return b.timeline.ReorderClip(clip.ID, index+delta)
	})
}

func (b *statefulBubble) moveSelectedToOtherTrack() tea.Cmd {
	clip, ok := b.selectedClip().Get()
	if !ok {
		return nil
	}

	target := clip.Track.Other()
	b.edit(func() bool {
		return b.timeline.MoveClip(clip.ID, target, 0)
	})
	return ui.Notify(fmt.Sprintf("Moved %s to %s", clipLabel(clip), target))
}

func (b *statefulBubble) nudgeSelected(direction float64) {
	clip, ok := b.selectedClip().Get()
	if !ok {
		return
	}

	start := clip.Start + direction*viper.GetFloat64(key.TimelineNudgeStep)
	b.edit(func() bool {
		return b.timeline.PositionClip(clip.ID, clip.Track, start)
	})
}

func (b *statefulBubble) trimSelectedStart(direction float64) {
	clip, ok := b.selectedClip().Get()
	if !ok {
		return
	}

	start := clip.Start + direction*viper.GetFloat64(key.TimelineTrimStep)
	b.edit(func() bool {
		return b.timeline.TrimStart(clip.ID, start, b.mediaDuration(clip.MediaID))
	})
}

func (b *statefulBubble) trimSelectedEnd(direction float64) {
	clip, ok := b.selectedClip().Get()
	if !ok {
		return
	}

	end := clip.End() + direction*viper.GetFloat64(key.TimelineTrimStep)
	b.edit(func() bool {
		return b.timeline.TrimEnd(clip.ID, end, b.mediaDuration(clip.MediaID))
	})
}

func (b *statefulBubble) zoom(direction int) {
	step := viper.GetInt(key.TimelineZoomStep)
	b.timeline.SetZoom(b.timeline.Zoom() + direction*step)
}

func (b *statefulBubble) seekBy(direction float64) {
	b.clock.SeekBy(direction * viper.GetFloat64(key.PlaybackSeekStep))
}

// addMedia appends m to the end of the main track.
func (b *statefulBubble) addMedia(m media.Media) tea.Cmd {
	duration := m.Duration().OrElse(fallbackClipDuration)

	var added timeline.Clip
	ok := b.edit(func() bool {
		var ok bool
		added, ok = b.timeline.AddClip(m.ID, duration, m.Name, timeline.Main)
		return ok
	})
	if !ok {
		return ui.Notify("Could not add " + m.Name)
	}

	b.selected = added.ID
	return ui.Notify(fmt.Sprintf("Added %s (%s)", m.Name, util.FormatDuration(duration)))
}

// openPicker loads the library into the media picker.
func (b *statefulBubble) openPicker() tea.Cmd {
	items, err := b.library.List()
	if err != nil {
		b.raiseError(err)
		return nil
	}
	if len(items) == 0 {
		return ui.Notify("The library is empty, run `clipforge import` first")
	}

	b.pickerC.ResetFilter()
	b.pickerC.ResetSelected()
	cmd := b.pickerC.SetItems(toListItems(items))
	b.newState(pickState)
	return cmd
}
