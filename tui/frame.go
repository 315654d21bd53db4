// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipforge-cli/clipforge/playback"
)

// frameInterval paces frame callbacks at roughly the display refresh rate.
const frameInterval = time.Second / 60

type frameMsg struct {
	id  uint64
	now time.Time
}

// dispatchMsg carries a callback posted from a background goroutine.
type dispatchMsg func()

// frameScheduler delivers playback frames through the bubbletea event loop so
// the clock only ever runs on the update goroutine.
type frameScheduler struct {
	next    uint64
	pending map[uint64]func(now time.Time)
	queued  []tea.Cmd
}

type frameHandle struct {
	scheduler *frameScheduler
	id        uint64
}

func (h frameHandle) Cancel() {
	delete(h.scheduler.pending, h.id)
}

func newFrameScheduler() *frameScheduler {
	return &frameScheduler{pending: make(map[uint64]func(time.Time))}
}

// RequestFrame implements playback.FrameScheduler.
func (s *frameScheduler) RequestFrame(fn func(now time.Time)) playback.FrameHandle {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(frameInterval, func(now time.Time) tea.Msg {
		return frameMsg{id: id, now: now}
	}))
	return frameHandle{scheduler: s, id: id}
}

// fire runs the callback of msg unless it was cancelled.
func (s *frameScheduler) fire(msg frameMsg) {
	fn, ok := s.pending[msg.id]
	if !ok {
		return
	}
	delete(s.pending, msg.id)
	fn(msg.now)
}

// flush hands the ticks requested since the last flush to bubbletea.
func (s *frameScheduler) flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// dispatch posts fn to the update goroutine. It gives up once the editor is closed.
func (b *statefulBubble) dispatch(fn func()) {
	select {
	case b.dispatched <- fn:
	case <-b.done:
	}
}

func (b *statefulBubble) waitForDispatch() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-b.dispatched:
			return dispatchMsg(fn)
		case <-b.done:
			return nil
		}
	}
}
