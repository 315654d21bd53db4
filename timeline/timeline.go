package timeline

import (
	"math"
	"sort"

	"github.com/clipforge-cli/clipforge/constant"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Event names the part of the timeline a committed mutation touched.
type Event int

const (
	ClipsChanged Event = iota + 1
	PlayheadChanged
	ZoomChanged
)

func (e Event) String() string {
	switch e {
	case ClipsChanged:
		return "clips"
	case PlayheadChanged:
		return "playhead"
	case ZoomChanged:
		return "zoom"
	default:
		return "unknown"
	}
}

// Timeline owns the clip collection, the shared playhead and the presentation zoom.
//
// It is not safe for concurrent use: every method is expected to run on the
// single control thread that also drives the playback clock and preview.
type Timeline struct {
	clips    []Clip
	playhead float64
	zoom     int

	newID func() string

	observers    map[int]func(Event)
	nextObserver int
}

// Option customizes a Timeline at construction.
type Option func(*Timeline)

// WithIDGenerator replaces the UUID generator used for new clip identities.
func WithIDGenerator(gen func() string) Option {
	return func(t *Timeline) {
		t.newID = gen
	}
}

// WithZoom sets the initial zoom, clamped to the supported range.
func WithZoom(zoom int) Option {
	return func(t *Timeline) {
		t.zoom = clampZoom(zoom)
	}
}

// New returns an empty timeline.
func New(options ...Option) *Timeline {
	t := &Timeline{
		zoom:      constant.DefaultZoom,
		newID:     uuid.NewString,
		observers: make(map[int]func(Event)),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Subscribe registers fn to be called synchronously after every committed change.
// The returned function removes the subscription.
func (t *Timeline) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := t.nextObserver
	t.nextObserver++
	t.observers[id] = fn
	return func() {
		delete(t.observers, id)
	}
}

func (t *Timeline) emit(event Event) {
	for _, id := range util.SortedKeys(t.observers) {
		if fn, ok := t.observers[id]; ok {
			fn(event)
		}
	}
}

// commit publishes a clip change; an emptied timeline also rewinds the playhead.
func (t *Timeline) commit() {
	t.emit(ClipsChanged)
	if len(t.clips) == 0 && t.playhead != 0 {
		t.playhead = 0
		t.emit(PlayheadChanged)
	}
}

// Len returns the number of clips across all tracks.
func (t *Timeline) Len() int {
	return len(t.clips)
}

// Clips returns a copy of every clip ordered by start time, ties broken by track priority.
func (t *Timeline) Clips() []Clip {
	var all []Clip
	for _, track := range Tracks {
		all = append(all, t.TrackClips(track)...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start < all[j].Start
	})
	return all
}

// TrackClips returns a copy of the clips on track ordered by start time.
func (t *Timeline) TrackClips(track Track) []Clip {
	clips := lo.Filter(t.clips, func(c Clip, _ int) bool {
		return c.Track == track
	})
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].Start < clips[j].Start
	})
	return clips
}

// Clip looks up a clip by identity.
func (t *Timeline) Clip(id string) mo.Option[Clip] {
	if i := t.indexOf(id); i >= 0 {
		return mo.Some(t.clips[i])
	}
	return mo.None[Clip]()
}

// Neighbors returns the clips immediately before and after id on its own track, by time order.
func (t *Timeline) Neighbors(id string) (previous, next mo.Option[Clip]) {
	previous, next = mo.None[Clip](), mo.None[Clip]()

	clip, ok := t.Clip(id).Get()
	if !ok {
		return
	}

	sorted := t.TrackClips(clip.Track)
	_, index, _ := lo.FindIndexOf(sorted, func(c Clip) bool { return c.ID == id })
	if index > 0 {
		previous = mo.Some(sorted[index-1])
	}
	if index >= 0 && index < len(sorted)-1 {
		next = mo.Some(sorted[index+1])
	}
	return
}

// TrackEnd is the end position of the last clip on track, or 0 when it is empty.
func (t *Timeline) TrackEnd(track Track) float64 {
	clips := t.TrackClips(track)
	if len(clips) == 0 {
		return 0
	}
	return clips[len(clips)-1].End()
}

// TotalDuration is the latest clip end across all tracks.
func (t *Timeline) TotalDuration() float64 {
	return lo.Reduce(t.clips, func(acc float64, c Clip, _ int) float64 {
		return math.Max(acc, c.End())
	}, 0)
}

// Playhead returns the current preview position in seconds.
func (t *Timeline) Playhead() float64 {
	return t.playhead
}

// SetPlayhead moves the playhead, clamped to be non-negative. Non-finite input is ignored.
func (t *Timeline) SetPlayhead(seconds float64) bool {
	if !finite(seconds) {
		return false
	}

	seconds = math.Max(0, seconds)
	if seconds == t.playhead {
		return false
	}
	t.playhead = seconds
	t.emit(PlayheadChanged)
	return true
}

// Zoom returns the timeline scale in pixels per second.
func (t *Timeline) Zoom() int {
	return t.zoom
}

// SetZoom updates the timeline scale, clamped to the supported range.
func (t *Timeline) SetZoom(zoom int) bool {
	zoom = clampZoom(zoom)
	if zoom == t.zoom {
		return false
	}
	t.zoom = zoom
	t.emit(ZoomChanged)
	return true
}

func clampZoom(zoom int) int {
	return util.Clamp(zoom, constant.MinZoom, constant.MaxZoom)
}

func (t *Timeline) indexOf(id string) int {
	_, index, _ := lo.FindIndexOf(t.clips, func(c Clip) bool { return c.ID == id })
	return index
}
