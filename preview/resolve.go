// Package preview keeps an external player showing whatever the timeline
// playhead points at.
package preview

import (
	"math"

	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ActiveClip is the clip whose span contains playhead. When tracks overlap in
// time the first track in timeline.Tracks wins.
func ActiveClip(tl *timeline.Timeline, playhead float64) mo.Option[timeline.Clip] {
	for _, track := range timeline.Tracks {
		if c, ok := lo.Find(tl.TrackClips(track), func(c timeline.Clip) bool {
			return c.Contains(playhead)
		}); ok {
			return mo.Some(c)
		}
	}
	return mo.None[timeline.Clip]()
}

// NextClip is the clip following active among all clips ordered by start.
func NextClip(tl *timeline.Timeline, active timeline.Clip) mo.Option[timeline.Clip] {
	clips := tl.Clips()
	_, index, found := lo.FindIndexOf(clips, func(c timeline.Clip) bool { return c.ID == active.ID })
	if !found || index+1 >= len(clips) {
		return mo.None[timeline.Clip]()
	}
	return mo.Some(clips[index+1])
}

// LocalTime maps playhead into the source media of clip, clamped to the media
// duration when it is known.
func LocalTime(clip timeline.Clip, playhead float64, mediaDuration mo.Option[float64]) float64 {
	local := clip.InPoint + math.Max(0, playhead-clip.Start)
	if d, ok := mediaDuration.Get(); ok {
		local = math.Min(local, d)
	}
	return local
}
