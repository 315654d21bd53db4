package timeline

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("c%d", n)
	})
}

func must(t *Timeline, id string) Clip {
	return t.Clip(id).MustGet()
}

func starts(clips []Clip) []float64 {
	return lo.Map(clips, func(c Clip, _ int) float64 { return c.Start })
}

func TestAddClip(t *testing.T) {
	Convey("Given an empty timeline", t, func() {
		tl := New(sequentialIDs())

		Convey("Adding a clip should place it at zero", func() {
			clip, ok := tl.AddClip("m1", 10, "x", Main)
			So(ok, ShouldBeTrue)
			So(clip.Start, ShouldEqual, 0)
			So(clip.Duration, ShouldEqual, 10)
			So(clip.InPoint, ShouldEqual, 0)
			So(clip.MediaID, ShouldEqual, "m1")
		})

		Convey("Subsequent clips should be appended at the track end", func() {
			tl.AddClip("m1", 4, "a", Main)
			b, _ := tl.AddClip("m2", 2, "b", Main)
			o, _ := tl.AddClip("m3", 1, "o", Overlay)
			So(b.Start, ShouldEqual, 4)
			So(o.Start, ShouldEqual, 0)
			So(tl.TotalDuration(), ShouldEqual, 6)
		})

		Convey("Short durations should be floored", func() {
			clip, _ := tl.AddClip("m1", 0.01, "tiny", Main)
			So(clip.Duration, ShouldEqual, MinClipDuration)
		})

		Convey("Invalid input should be rejected", func() {
			_, ok := tl.AddClip("m1", math.NaN(), "nan", Main)
			So(ok, ShouldBeFalse)
			_, ok = tl.AddClip("m1", 1, "bad", Track("audio"))
			So(ok, ShouldBeFalse)
			So(tl.Len(), ShouldEqual, 0)
		})
	})
}

func TestSplitAndRemove(t *testing.T) {
	Convey("Given clip A [0,5) and clip B [5,8) on main", t, func() {
		tl := New(sequentialIDs())
		a, _ := tl.AddClip("m1", 5, "A", Main)
		b, _ := tl.AddClip("m2", 3, "B", Main)

		Convey("Splitting A at 2 should yield A' and C", func() {
			c, ok := tl.SplitClip(a.ID, 2)
			So(ok, ShouldBeTrue)

			first := must(tl, a.ID)
			So(first.Start, ShouldEqual, 0)
			So(first.Duration, ShouldEqual, 2)

			So(c.Start, ShouldEqual, 2)
			So(c.Duration, ShouldEqual, 3)
			So(c.InPoint, ShouldEqual, 2)
			So(c.MediaID, ShouldEqual, "m1")
			So(c.Name, ShouldEqual, "A")
			So(c.ID, ShouldNotEqual, a.ID)

			So(must(tl, b.ID).Start, ShouldEqual, 5)

			Convey("Removing A' should reflow the track", func() {
				So(tl.RemoveClip(a.ID), ShouldBeTrue)
				So(must(tl, c.ID).Start, ShouldEqual, 0)
				So(must(tl, c.ID).Duration, ShouldEqual, 3)
				So(must(tl, b.ID).Start, ShouldEqual, 3)
				So(must(tl, b.ID).Duration, ShouldEqual, 3)
			})
		})

		Convey("Splitting too close to an edge should be a no-op", func() {
			before := tl.Clips()
			_, ok := tl.SplitClip(a.ID, 0.1)
			So(ok, ShouldBeFalse)
			_, ok = tl.SplitClip(a.ID, 4.9)
			So(ok, ShouldBeFalse)
			_, ok = tl.SplitClip(a.ID, math.Inf(1))
			So(ok, ShouldBeFalse)
			_, ok = tl.SplitClip("missing", 1)
			So(ok, ShouldBeFalse)
			So(tl.Clips(), ShouldResemble, before)
		})

		Convey("Split pieces should conserve duration", func() {
			c, _ := tl.SplitClip(a.ID, 3.3)
			first := must(tl, a.ID)
			So(first.Duration+c.Duration, ShouldAlmostEqual, 5)
			So(c.InPoint, ShouldAlmostEqual, a.InPoint+first.Duration)
		})

		Convey("Removing an unknown clip should be a no-op", func() {
			So(tl.RemoveClip("missing"), ShouldBeFalse)
			So(tl.Len(), ShouldEqual, 2)
		})
	})
}

func TestMoveClip(t *testing.T) {
	Convey("Given two clips on main and an empty overlay", t, func() {
		tl := New(sequentialIDs())
		a, _ := tl.AddClip("m1", 5, "A", Main)
		b, _ := tl.AddClip("m2", 3, "B", Main)

		Convey("Moving A to overlay should leave a gap on main", func() {
			So(tl.MoveClip(a.ID, Overlay, 0), ShouldBeTrue)
			moved := must(tl, a.ID)
			So(moved.Track, ShouldEqual, Overlay)
			So(moved.Start, ShouldEqual, 0)
			So(must(tl, b.ID).Start, ShouldEqual, 5)
		})

		Convey("Out of range indices should be clamped", func() {
			o, _ := tl.AddClip("m3", 2, "O", Overlay)
			So(tl.MoveClip(a.ID, Overlay, 99), ShouldBeTrue)
			So(starts(tl.TrackClips(Overlay)), ShouldResemble, []float64{0, 2})
			So(tl.TrackClips(Overlay)[0].ID, ShouldEqual, o.ID)
		})

		Convey("Moving within the same track should repack it in the new order", func() {
			So(tl.MoveClip(b.ID, Main, 0), ShouldBeTrue)
			So(must(tl, b.ID).Start, ShouldEqual, 0)
			So(must(tl, a.ID).Start, ShouldEqual, 3)
		})

		Convey("Moving to an unknown track should be a no-op", func() {
			So(tl.MoveClip(a.ID, Track("nope"), 0), ShouldBeFalse)
			So(must(tl, a.ID).Track, ShouldEqual, Main)
		})
	})
}

func TestReorderClip(t *testing.T) {
	Convey("Given A, B, C on main", t, func() {
		tl := New(sequentialIDs())
		a, _ := tl.AddClip("m", 1, "A", Main)
		b, _ := tl.AddClip("m", 2, "B", Main)
		c, _ := tl.AddClip("m", 3, "C", Main)

		Convey("Moving C to the front should repack", func() {
			So(tl.ReorderClip(c.ID, 0), ShouldBeTrue)
			So(lo.Map(tl.TrackClips(Main), func(c Clip, _ int) string { return c.Name }), ShouldResemble, []string{"C", "A", "B"})
			So(starts(tl.TrackClips(Main)), ShouldResemble, []float64{0, 3, 4})
		})

		Convey("Negative indices should count from the end", func() {
			So(tl.ReorderClip(a.ID, -1), ShouldBeTrue)
			So(lo.Map(tl.TrackClips(Main), func(c Clip, _ int) string { return c.Name }), ShouldResemble, []string{"B", "A", "C"})
		})

		Convey("The current index should be a no-op", func() {
			So(tl.ReorderClip(b.ID, 1), ShouldBeFalse)
		})

		Convey("An index that lands on the current slot should be a no-op", func() {
			So(tl.PositionClip(c.ID, Main, 10), ShouldBeTrue)
			var events []Event
			unsubscribe := tl.Subscribe(func(e Event) { events = append(events, e) })
			defer unsubscribe()

			So(tl.ReorderClip(c.ID, 99), ShouldBeFalse)
			So(tl.ReorderClip(a.ID, -5), ShouldBeFalse)
			So(events, ShouldBeEmpty)
			So(starts(tl.TrackClips(Main)), ShouldResemble, []float64{0, 1, 10})
		})
	})
}

func TestPositionClip(t *testing.T) {
	Convey("Given A [0,2) and B [2,5) on main", t, func() {
		tl := New(sequentialIDs())
		a, _ := tl.AddClip("m", 2, "A", Main)
		b, _ := tl.AddClip("m", 3, "B", Main)

		Convey("Dropping A into empty time after B should keep the proposed start", func() {
			So(tl.PositionClip(a.ID, Main, 10), ShouldBeTrue)
			So(must(tl, a.ID).Start, ShouldEqual, 10)
			So(must(tl, b.ID).Start, ShouldEqual, 2)
		})

		Convey("Dropping onto a predecessor should push the moved clip forward", func() {
			So(tl.PositionClip(a.ID, Main, 3), ShouldBeTrue)
			So(must(tl, a.ID).Start, ShouldEqual, 5)
		})

		Convey("Dropping between clips should cascade the later ones forward", func() {
			So(tl.PositionClip(b.ID, Main, 1), ShouldBeTrue)
			So(must(tl, b.ID).Start, ShouldEqual, 2)

			o, _ := tl.AddClip("m", 4, "O", Overlay)
			So(tl.PositionClip(o.ID, Main, 0), ShouldBeTrue)
			So(must(tl, a.ID).Start, ShouldEqual, 0)
			So(must(tl, o.ID).Start, ShouldEqual, 2)
			So(must(tl, b.ID).Start, ShouldEqual, 6)
		})

		Convey("Negative starts should be clamped to zero", func() {
			So(tl.PositionClip(b.ID, Overlay, -4), ShouldBeTrue)
			So(must(tl, b.ID).Start, ShouldEqual, 0)
			So(must(tl, b.ID).Track, ShouldEqual, Overlay)
		})
	})
}

func TestTrim(t *testing.T) {
	Convey("Given A [0,4) and B [4,6) with B trimmed in by one second", t, func() {
		tl := New(sequentialIDs())
		a, _ := tl.AddClip("m", 4, "A", Main)
		b, _ := tl.AddClip("m", 2, "B", Main)
		So(tl.TrimClip(b.ID, Trim{Start: 5, Duration: 1, InPoint: 1}), ShouldBeTrue)

		Convey("TrimClip should floor every field", func() {
			So(tl.TrimClip(a.ID, Trim{Start: -1, Duration: 0, InPoint: -3}), ShouldBeTrue)
			clip := must(tl, a.ID)
			So(clip.Start, ShouldEqual, 0)
			So(clip.Duration, ShouldEqual, MinClipDuration)
			So(clip.InPoint, ShouldEqual, 0)
		})

		Convey("TrimClip should reject non-finite input", func() {
			So(tl.TrimClip(a.ID, Trim{Start: math.NaN(), Duration: 1}), ShouldBeFalse)
			So(tl.TrimClip("missing", Trim{Duration: 1}), ShouldBeFalse)
		})

		Convey("Bounds should respect neighbours and media", func() {
			bounds, ok := tl.TrimBounds(b.ID, mo.Some(2.5))
			So(ok, ShouldBeTrue)
			So(bounds.MinStart, ShouldEqual, 4)
			So(bounds.MaxStart, ShouldAlmostEqual, 5.9)
			So(bounds.MinEnd, ShouldAlmostEqual, 5.1)
			So(bounds.MaxEnd, ShouldEqual, 6.5)

			bounds, _ = tl.TrimBounds(a.ID, mo.None[float64]())
			So(bounds.MaxEnd, ShouldEqual, 5)
			So(bounds.MinStart, ShouldEqual, 0)
		})

		Convey("TrimStart should keep the end fixed and shift the in-point", func() {
			So(tl.TrimStart(b.ID, 0, mo.None[float64]()), ShouldBeTrue)
			clip := must(tl, b.ID)
			So(clip.Start, ShouldEqual, 4)
			So(clip.InPoint, ShouldEqual, 0)
			So(clip.End(), ShouldEqual, 6)
		})

		Convey("TrimEnd should stop at the media edge", func() {
			So(tl.TrimEnd(b.ID, 100, mo.Some(2.5)), ShouldBeTrue)
			clip := must(tl, b.ID)
			So(clip.SourceEnd(), ShouldEqual, 2.5)
		})

		Convey("TrimEnd should not run into the next clip", func() {
			So(tl.TrimEnd(a.ID, 100, mo.None[float64]()), ShouldBeTrue)
			So(must(tl, a.ID).End(), ShouldEqual, 5)
		})
	})
}

func TestPlayheadAndZoom(t *testing.T) {
	Convey("Given a timeline", t, func() {
		tl := New()

		Convey("Playhead should be clamped to non-negative", func() {
			So(tl.SetPlayhead(-3), ShouldBeFalse)
			So(tl.Playhead(), ShouldEqual, 0)
			So(tl.SetPlayhead(4), ShouldBeTrue)
			So(tl.SetPlayhead(math.NaN()), ShouldBeFalse)
			So(tl.Playhead(), ShouldEqual, 4)
		})

		Convey("Zoom should default and clamp", func() {
			So(tl.Zoom(), ShouldEqual, 80)
			tl.SetZoom(1000)
			So(tl.Zoom(), ShouldEqual, 240)
			tl.SetZoom(1)
			So(tl.Zoom(), ShouldEqual, 20)
		})

		Convey("Removing the last clip should rewind the playhead", func() {
			clip, _ := tl.AddClip("m", 5, "A", Main)
			tl.SetPlayhead(3)
			tl.RemoveClip(clip.ID)
			So(tl.Playhead(), ShouldEqual, 0)
		})
	})
}

func TestObservers(t *testing.T) {
	Convey("Given a subscribed observer", t, func() {
		tl := New()
		var events []Event
		unsubscribe := tl.Subscribe(func(e Event) { events = append(events, e) })

		Convey("Committed mutations should notify", func() {
			clip, _ := tl.AddClip("m", 5, "A", Main)
			tl.SetPlayhead(1)
			tl.SplitClip(clip.ID, 0.05)
			So(events, ShouldResemble, []Event{ClipsChanged, PlayheadChanged})
		})

		Convey("Unsubscribed observers should not be called", func() {
			unsubscribe()
			tl.AddClip("m", 5, "A", Main)
			So(events, ShouldBeEmpty)
		})
	})
}

func TestNeighbors(t *testing.T) {
	Convey("Neighbors", t, func() {
		tl := New(sequentialIDs())
		a, _ := tl.AddClip("m", 1, "A", Main)
		b, _ := tl.AddClip("m", 1, "B", Main)
		c, _ := tl.AddClip("m", 1, "C", Main)
		tl.AddClip("m", 1, "O", Overlay)

		previous, next := tl.Neighbors(b.ID)
		So(previous.MustGet().ID, ShouldEqual, a.ID)
		So(next.MustGet().ID, ShouldEqual, c.ID)

		previous, next = tl.Neighbors(a.ID)
		So(previous.IsAbsent(), ShouldBeTrue)
		So(next.IsPresent(), ShouldBeTrue)

		_, next = tl.Neighbors(c.ID)
		So(next.IsAbsent(), ShouldBeTrue)
	})
}

func TestSnapshotRestore(t *testing.T) {
	Convey("Restore", t, func() {
		tl := New(sequentialIDs())

		dropped := tl.Restore(State{
			Clips: []Clip{
				{ID: "a", Track: Main, Start: 0, Duration: 4},
				{ID: "b", Track: Main, Start: 2, Duration: 2},
				{ID: "a", Track: Main, Start: 9, Duration: 1},
				{ID: "x", Track: "audio", Start: 0, Duration: 1},
				{ID: "n", Track: Overlay, Start: math.NaN(), Duration: 1},
				{ID: "t", Track: Overlay, Start: -1, Duration: 0},
			},
			Playhead: 50,
			Zoom:     120,
		})

		So(dropped, ShouldEqual, 3)
		So(tl.Len(), ShouldEqual, 3)
		So(must(tl, "b").Start, ShouldEqual, 4)
		So(must(tl, "t").Start, ShouldEqual, 0)
		So(must(tl, "t").Duration, ShouldEqual, MinClipDuration)
		So(tl.Playhead(), ShouldEqual, 6)
		So(tl.Zoom(), ShouldEqual, 120)
		So(tl.Overlaps(), ShouldBeEmpty)

		Convey("Snapshot should round trip", func() {
			other := New()
			other.Restore(tl.Snapshot())
			So(other.Clips(), ShouldResemble, tl.Clips())
		})

		Convey("Clear should empty the timeline", func() {
			So(tl.Clear(), ShouldBeTrue)
			So(tl.Len(), ShouldEqual, 0)
			So(tl.Playhead(), ShouldEqual, 0)
			So(tl.Clear(), ShouldBeFalse)
		})
	})
}

func TestRuler(t *testing.T) {
	Convey("RulerStep", t, func() {
		So(RulerStep(240), ShouldEqual, 1)
		So(RulerStep(120), ShouldEqual, 2)
		So(RulerStep(80), ShouldEqual, 5)
		So(RulerStep(60), ShouldEqual, 10)
		So(RulerStep(40), ShouldEqual, 15)
		So(RulerStep(20), ShouldEqual, 30)
		So(RulerMarkers(12, 80), ShouldResemble, []float64{0, 5, 10})
	})
}

func TestInvariantsUnderRandomEdits(t *testing.T) {
	Convey("Random edit sequences should never overlap or shrink clips", t, func() {
		rng := rand.New(rand.NewSource(42))
		tl := New(sequentialIDs())

		pick := func() string {
			clips := tl.Clips()
			if len(clips) == 0 {
				return ""
			}
			return clips[rng.Intn(len(clips))].ID
		}
		track := func() Track { return Tracks[rng.Intn(len(Tracks))] }

		for i := 0; i < 2000; i++ {
			switch rng.Intn(8) {
			case 0, 1:
				tl.AddClip("m", rng.Float64()*6, "r", track())
			case 2:
				tl.RemoveClip(pick())
			case 3:
				tl.MoveClip(pick(), track(), rng.Intn(5)-1)
			case 4:
				tl.ReorderClip(pick(), rng.Intn(6)-3)
			case 5:
				id := pick()
				if clip, ok := tl.Clip(id).Get(); ok {
					tl.SplitClip(id, clip.Start+rng.Float64()*clip.Duration)
				}
			case 6:
				tl.PositionClip(pick(), track(), rng.Float64()*20-2)
			case 7:
				id := pick()
				if rng.Intn(2) == 0 {
					tl.TrimStart(id, rng.Float64()*20-2, mo.Some(rng.Float64()*10))
				} else {
					tl.TrimEnd(id, rng.Float64()*20, mo.None[float64]())
				}
			}

			So(tl.Overlaps(), ShouldBeEmpty)
			for _, c := range tl.Clips() {
				So(c.Duration, ShouldBeGreaterThanOrEqualTo, MinClipDuration)
				So(c.Start, ShouldBeGreaterThanOrEqualTo, 0)
				So(c.InPoint, ShouldBeGreaterThanOrEqualTo, 0)
			}
		}
	})
}
