package timeline

import (
	"math"

	"github.com/clipforge-cli/clipforge/util"
	"github.com/samber/mo"
)

// Bounds is the legal range of each trim handle of a clip, in absolute timeline seconds.
type Bounds struct {
	MinStart, MaxStart float64
	MinEnd, MaxEnd     float64
}

// TrimBounds derives how far the handles of id may be dragged before hitting a
// neighbour on the same track or the edge of the source media. An absent media
// duration leaves the right handle bounded only by the next clip.
func (t *Timeline) TrimBounds(id string, mediaDuration mo.Option[float64]) (Bounds, bool) {
	clip, ok := t.Clip(id).Get()
	if !ok {
		return Bounds{}, false
	}

	previous, next := t.Neighbors(id)

	floor := math.Max(0, clip.Start-clip.InPoint)
	if p, ok := previous.Get(); ok {
		floor = math.Max(floor, p.End())
	}

	ceiling := math.Inf(1)
	if n, ok := next.Get(); ok {
		ceiling = n.Start
	}
	if d, ok := mediaDuration.Get(); ok && finite(d) && d > 0 {
		ceiling = math.Min(ceiling, clip.Start+d-clip.InPoint)
	}

	b := Bounds{
		MinStart: floor,
		MaxStart: clip.End() - MinClipDuration,
		MinEnd:   clip.Start + MinClipDuration,
		MaxEnd:   ceiling,
	}
	b.MinStart = math.Min(b.MinStart, b.MaxStart)
	b.MaxEnd = math.Max(b.MaxEnd, b.MinEnd)
	return b, true
}

// TrimStart drags the left handle of id to start, keeping the clip's end fixed
// and shifting its in-point by the same amount.
func (t *Timeline) TrimStart(id string, start float64, mediaDuration mo.Option[float64]) bool {
	clip, ok := t.Clip(id).Get()
	if !ok || !finite(start) {
		return false
	}
	b, _ := t.TrimBounds(id, mediaDuration)

	start = util.Clamp(start, b.MinStart, b.MaxStart)
	delta := start - clip.Start
	if delta == 0 {
		return false
	}

	return t.TrimClip(id, Trim{
		Start:    start,
		Duration: clip.Duration - delta,
		InPoint:  clip.InPoint + delta,
	})
}

// TrimEnd drags the right handle of id to end.
func (t *Timeline) TrimEnd(id string, end float64, mediaDuration mo.Option[float64]) bool {
	clip, ok := t.Clip(id).Get()
	if !ok || !finite(end) {
		return false
	}
	b, _ := t.TrimBounds(id, mediaDuration)

	end = util.Clamp(end, b.MinEnd, b.MaxEnd)
	if end == clip.End() {
		return false
	}

	return t.TrimClip(id, Trim{
		Start:    clip.Start,
		Duration: end - clip.Start,
		InPoint:  clip.InPoint,
	})
}
