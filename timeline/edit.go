package timeline

import (
	"math"
	"slices"

	"github.com/clipforge-cli/clipforge/log"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/samber/lo"
)

// Every mutation below either commits a fully consistent state and returns
// true, or leaves the timeline untouched and returns false.

// AddClip appends a new clip at the end of track. The duration is floored to MinClipDuration.
func (t *Timeline) AddClip(mediaID string, duration float64, name string, track Track) (Clip, bool) {
	if !track.Valid() || !finite(duration) {
		return Clip{}, false
	}

	clip := Clip{
		ID:       t.newID(),
		MediaID:  mediaID,
		Track:    track,
		Start:    t.TrackEnd(track),
		Duration: math.Max(duration, MinClipDuration),
		Name:     name,
	}
	t.clips = append(t.clips, clip)

	log.WithField("clip", clip.ID).Debugf("added %s", clip)
	t.commit()
	return clip, true
}

// RemoveClip deletes id and repacks its former track without gaps.
func (t *Timeline) RemoveClip(id string) bool {
	index := t.indexOf(id)
	if index < 0 {
		return false
	}

	track := t.clips[index].Track
	t.clips = slices.Delete(t.clips, index, index+1)
	t.reflow(track)

	t.commit()
	return true
}

// MoveClip inserts id into targetTrack at order position targetIndex, clamped to
// the track length, and repacks the target track. The source track is left as is.
func (t *Timeline) MoveClip(id string, targetTrack Track, targetIndex int) bool {
	index := t.indexOf(id)
	if index < 0 || !targetTrack.Valid() {
		return false
	}

	clip := t.clips[index]
	t.clips = slices.Delete(t.clips, index, index+1)

	order := t.TrackClips(targetTrack)
	targetIndex = util.Clamp(targetIndex, 0, len(order))

	clip.Track = targetTrack
	order = slices.Insert(order, targetIndex, clip)

	t.clips = append(t.clips, clip)
	t.pack(order)

	t.commit()
	return true
}

// ReorderClip moves id to position targetIndex within its own track and repacks it.
// Negative indices count from the end, as in slice notation.
func (t *Timeline) ReorderClip(id string, targetIndex int) bool {
	clip, ok := t.Clip(id).Get()
	if !ok {
		return false
	}

	order := t.TrackClips(clip.Track)
	_, current, _ := lo.FindIndexOf(order, func(c Clip) bool { return c.ID == id })
	if current < 0 {
		return false
	}

	last := len(order) - 1
	if targetIndex < 0 {
		targetIndex += last
	}
	targetIndex = util.Clamp(targetIndex, 0, last)
	if targetIndex == current {
		return false
	}

	order = slices.Delete(order, current, current+1)
	order = slices.Insert(order, targetIndex, clip)

	t.pack(order)

	t.commit()
	return true
}

// Trim carries the fields TrimClip replaces.
type Trim struct {
	Start    float64
	Duration float64
	InPoint  float64
}

// TrimClip replaces the placement and trim window of id. Only the duration floor
// and non-negative start/in-point are enforced; neighbour and media bounds are
// the caller's concern (see TrimBounds).
func (t *Timeline) TrimClip(id string, trim Trim) bool {
	index := t.indexOf(id)
	if index < 0 || !finite(trim.Start, trim.Duration, trim.InPoint) {
		return false
	}

	clip := &t.clips[index]
	clip.Duration = math.Max(MinClipDuration, trim.Duration)
	clip.Start = math.Max(0, trim.Start)
	clip.InPoint = math.Max(0, trim.InPoint)

	t.commit()
	return true
}

// CanSplitAt reports whether cutting id at absolute time at would leave both pieces
// at least MinClipDuration long.
func (t *Timeline) CanSplitAt(id string, at float64) bool {
	clip, ok := t.Clip(id).Get()
	if !ok || !finite(at) {
		return false
	}

	local := at - clip.Start
	return local > MinClipDuration && local < clip.Duration-MinClipDuration
}

// SplitClip cuts id at absolute timeline time at. The first piece keeps the
// identity; the second gets a fresh id and continues the source where the first ends.
func (t *Timeline) SplitClip(id string, at float64) (second Clip, ok bool) {
	if !t.CanSplitAt(id, at) {
		return Clip{}, false
	}

	index := t.indexOf(id)
	first := t.clips[index]
	local := at - first.Start

	second = first
	second.ID = t.newID()
	second.Start = first.Start + local
	second.Duration = first.Duration - local
	second.InPoint = first.InPoint + local

	first.Duration = local

	t.clips[index] = first
	t.clips = slices.Insert(t.clips, index+1, second)
	t.reflow(first.Track)

	log.WithField("clip", id).Debugf("split at %.3f into %s", at, second.ID)
	t.commit()
	return t.Clip(second.ID).MustGet(), true
}

// PositionClip drops id onto targetTrack at proposedStart (clamped to >= 0).
// The track is walked once in time order and every clip is pushed forward, when
// needed, to start after its predecessor; no clip is ever pulled backward.
func (t *Timeline) PositionClip(id string, targetTrack Track, proposedStart float64) bool {
	index := t.indexOf(id)
	if index < 0 || !targetTrack.Valid() || !finite(proposedStart) {
		return false
	}

	proposedStart = math.Max(0, proposedStart)

	clip := t.clips[index]
	t.clips = slices.Delete(t.clips, index, index+1)

	clip.Track = targetTrack
	clip.Start = proposedStart

	order := t.TrackClips(targetTrack)
	at := slices.IndexFunc(order, func(c Clip) bool { return c.Start > proposedStart })
	if at < 0 {
		at = len(order)
	}
	order = slices.Insert(order, at, clip)

	t.clips = append(t.clips, clip)
	t.cascade(order)

	t.commit()
	return true
}

// reflow repacks track contiguously from zero in its current time order.
func (t *Timeline) reflow(track Track) {
	t.pack(t.TrackClips(track))
}

// pack assigns back-to-back start positions to order, in sequence, starting at zero.
func (t *Timeline) pack(order []Clip) {
	cursor := 0.0
	for _, c := range order {
		t.setStart(c.ID, cursor)
		cursor += c.Duration
	}
}

// cascade pushes every clip of order to start no earlier than its predecessor's end.
func (t *Timeline) cascade(order []Clip) {
	floor := 0.0
	for _, c := range order {
		start := math.Max(floor, c.Start)
		t.setStart(c.ID, start)
		floor = start + c.Duration
	}
}

func (t *Timeline) setStart(id string, start float64) {
	if i := t.indexOf(id); i >= 0 {
		t.clips[i].Start = start
	}
}
