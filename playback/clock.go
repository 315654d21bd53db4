// Package playback advances the timeline playhead at wall-clock rate while playing.
package playback

import (
	"math"
	"time"

	"github.com/clipforge-cli/clipforge/log"
	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/samber/lo"
)

// DefaultFPS is the playhead update rate used when none is configured.
const DefaultFPS = 30

// State of the clock.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	return lo.Ternary(s == Playing, "playing", "stopped")
}

// FrameHandle is a pending frame request.
type FrameHandle interface {
	Cancel()
}

// FrameScheduler delivers one display-paced callback per request, on the control thread.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
}

// Clock is a two state machine driving timeline.Timeline's playhead.
type Clock struct {
	timeline  *timeline.Timeline
	scheduler FrameScheduler
	budget    time.Duration

	state   State
	pending FrameHandle
	last    time.Time
	// frame is bumped whenever the pending request is dropped so a callback
	// that was already in flight can tell it is stale.
	frame  uint64
	closed bool

	observers    map[int]func(playing bool)
	nextObserver int
}

// Option customizes a Clock.
type Option func(*Clock)

// WithFPS sets the maximum playhead commit rate. Non-positive values are ignored.
func WithFPS(fps int) Option {
	return func(c *Clock) {
		if fps > 0 {
			c.budget = time.Second / time.Duration(fps)
		}
	}
}

// New returns a stopped clock for tl.
func New(tl *timeline.Timeline, scheduler FrameScheduler, options ...Option) *Clock {
	c := &Clock{
		timeline:  tl,
		scheduler: scheduler,
		budget:    time.Second / DefaultFPS,
		observers: make(map[int]func(bool)),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Subscribe registers fn to be called whenever the playing flag flips.
func (c *Clock) Subscribe(fn func(playing bool)) (unsubscribe func()) {
	id := c.nextObserver
	c.nextObserver++
	c.observers[id] = fn
	return func() {
		delete(c.observers, id)
	}
}

// IsPlaying reports whether the clock is advancing the playhead.
func (c *Clock) IsPlaying() bool {
	return c.state == Playing
}

// State returns the current state.
func (c *Clock) State() State {
	return c.state
}

// Playhead returns the timeline playhead.
func (c *Clock) Playhead() float64 {
	return c.timeline.Playhead()
}

// TotalDuration is the latest clip end on the timeline.
func (c *Clock) TotalDuration() float64 {
	return c.timeline.TotalDuration()
}

// FrameBudget is the minimum elapsed time between two committed playhead updates.
func (c *Clock) FrameBudget() time.Duration {
	return c.budget
}

// Play starts advancing the playhead. It does nothing on an empty timeline.
func (c *Clock) Play() bool {
	if c.closed || c.state == Playing || c.timeline.Len() == 0 {
		return false
	}

	c.state = Playing
	c.last = time.Time{}
	c.request()

	log.Debugf("playback started at %.3f", c.Playhead())
	c.emit()
	return true
}

// Pause stops the clock and cancels any pending frame.
func (c *Clock) Pause() bool {
	c.cancel()
	if c.state == Stopped {
		return false
	}

	c.state = Stopped
	log.Debugf("playback paused at %.3f", c.Playhead())
	c.emit()
	return true
}

// Toggle flips between playing and stopped.
func (c *Clock) Toggle() bool {
	if c.state == Playing {
		return c.Pause()
	}
	return c.Play()
}

// Seek moves the playhead to t clamped to [0, TotalDuration] in any state
// and returns the resulting position.
func (c *Clock) Seek(t float64) float64 {
	if math.IsNaN(t) {
		return c.Playhead()
	}

	t = util.Clamp(t, 0, c.TotalDuration())
	c.timeline.SetPlayhead(t)
	return c.Playhead()
}

// SeekBy moves the playhead relative to its current position.
func (c *Clock) SeekBy(delta float64) float64 {
	return c.Seek(c.Playhead() + delta)
}

// Close stops the clock for good. Later Play calls are ignored.
func (c *Clock) Close() {
	c.Pause()
	c.closed = true
}

func (c *Clock) request() {
	c.frame++
	frame := c.frame
	c.pending = c.scheduler.RequestFrame(func(now time.Time) {
		c.step(frame, now)
	})
}

func (c *Clock) cancel() {
	c.frame++
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
	c.last = time.Time{}
}

func (c *Clock) step(frame uint64, now time.Time) {
	if frame != c.frame || c.state != Playing {
		return
	}
	c.pending = nil

	if c.last.IsZero() {
		c.last = now
	}

	if delta := now.Sub(c.last); delta >= c.budget {
		next := c.Playhead() + delta.Seconds()
		if next >= c.TotalDuration() {
			c.timeline.SetPlayhead(0)
			log.Debugf("playback reached the end")
			c.Pause()
			return
		}

		c.timeline.SetPlayhead(next)
		c.last = now
	}

	c.request()
}

func (c *Clock) emit() {
	playing := c.IsPlaying()
	for _, id := range util.SortedKeys(c.observers) {
		if fn, ok := c.observers[id]; ok {
			fn(playing)
		}
	}
}
