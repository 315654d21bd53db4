package timeline

import (
	"math"

	"github.com/samber/lo"
)

// State is a detached copy of everything a Timeline owns.
type State struct {
	Clips    []Clip  `json:"clips"`
	Playhead float64 `json:"playhead"`
	Zoom     int     `json:"zoom"`
}

// Snapshot copies the current state.
func (t *Timeline) Snapshot() State {
	return State{
		Clips:    t.Clips(),
		Playhead: t.playhead,
		Zoom:     t.zoom,
	}
}

// Restore replaces the timeline contents with s. Clips with an unknown track,
// non-finite fields or a duplicate id are dropped; the rest are floored like
// TrimClip and each track is cascaded forward so no two clips overlap.
// It returns the number of clips dropped.
func (t *Timeline) Restore(s State) (dropped int) {
	seen := make(map[string]struct{})
	clips := make([]Clip, 0, len(s.Clips))

	for _, c := range s.Clips {
		if _, dup := seen[c.ID]; dup || c.ID == "" || !c.Track.Valid() || !finite(c.Start, c.Duration, c.InPoint) {
			dropped++
			continue
		}
		seen[c.ID] = struct{}{}

		c.Start = math.Max(0, c.Start)
		c.Duration = math.Max(MinClipDuration, c.Duration)
		c.InPoint = math.Max(0, c.InPoint)
		clips = append(clips, c)
	}

	t.clips = clips
	for _, track := range Tracks {
		t.cascade(t.TrackClips(track))
	}

	t.zoom = clampZoom(lo.Ternary(s.Zoom == 0, t.zoom, s.Zoom))
	t.playhead = 0
	if finite(s.Playhead) {
		t.playhead = math.Min(math.Max(0, s.Playhead), t.TotalDuration())
	}

	t.emit(ClipsChanged)
	t.emit(PlayheadChanged)
	t.emit(ZoomChanged)
	return dropped
}

// Clear removes every clip and rewinds the playhead.
func (t *Timeline) Clear() bool {
	if len(t.clips) == 0 {
		return false
	}
	t.clips = nil
	t.commit()
	return true
}

// Overlaps returns, per track, the pairs of consecutive clips that violate the
// non-overlap invariant. A healthy timeline returns an empty map.
func (t *Timeline) Overlaps() map[Track][][2]Clip {
	found := make(map[Track][][2]Clip)
	for _, track := range Tracks {
		clips := t.TrackClips(track)
		for i := 1; i < len(clips); i++ {
			if clips[i].Start < clips[i-1].End()-epsilon {
				found[track] = append(found[track], [2]Clip{clips[i-1], clips[i]})
			}
		}
	}
	return found
}

// epsilon absorbs float accumulation when comparing packed boundaries.
const epsilon = 1e-9
