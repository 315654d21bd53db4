package playback

import (
	"testing"
	"time"

	"github.com/clipforge-cli/clipforge/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

type manualFrame struct {
	fn        func(time.Time)
	cancelled bool
}

func (f *manualFrame) Cancel() {
	f.cancelled = true
}

type manualScheduler struct {
	now   time.Time
	queue []*manualFrame
}

func (s *manualScheduler) RequestFrame(fn func(time.Time)) FrameHandle {
	f := &manualFrame{fn: fn}
	s.queue = append(s.queue, f)
	return f
}

func (s *manualScheduler) advance(d time.Duration) {
	s.now = s.now.Add(d)
	queue := s.queue
	s.queue = nil
	for _, f := range queue {
		if !f.cancelled {
			f.fn(s.now)
		}
	}
}

func (s *manualScheduler) pending() (n int) {
	for _, f := range s.queue {
		if !f.cancelled {
			n++
		}
	}
	return
}

func newClock(durations ...float64) (*Clock, *timeline.Timeline, *manualScheduler) {
	tl := timeline.New()
	for _, d := range durations {
		tl.AddClip("m", d, "clip", timeline.Main)
	}
	scheduler := &manualScheduler{now: time.Unix(1_700_000_000, 0)}
	return New(tl, scheduler), tl, scheduler
}

func TestPlay(t *testing.T) {
	Convey("Given an empty timeline", t, func() {
		clock, _, scheduler := newClock()

		Convey("Play and Toggle should do nothing", func() {
			So(clock.Play(), ShouldBeFalse)
			So(clock.Toggle(), ShouldBeFalse)
			So(clock.IsPlaying(), ShouldBeFalse)
			So(scheduler.pending(), ShouldEqual, 0)
		})
	})

	Convey("Given a ten second timeline", t, func() {
		clock, tl, scheduler := newClock(10)

		Convey("Play should request a frame", func() {
			So(clock.Play(), ShouldBeTrue)
			So(clock.State(), ShouldEqual, Playing)
			So(scheduler.pending(), ShouldEqual, 1)
			So(clock.Play(), ShouldBeFalse)
		})

		Convey("Updates should be throttled to the frame budget", func() {
			clock.Play()
			scheduler.advance(0)
			for i := 0; i < 3; i++ {
				scheduler.advance(10 * time.Millisecond)
				So(tl.Playhead(), ShouldEqual, 0)
			}
			scheduler.advance(10 * time.Millisecond)
			So(tl.Playhead(), ShouldAlmostEqual, 0.04, 1e-9)
			So(clock.IsPlaying(), ShouldBeTrue)
		})

		Convey("Crossing the end should rewind and stop", func() {
			tl.SetPlayhead(9.98)
			clock.Play()
			scheduler.advance(0)
			scheduler.advance(40 * time.Millisecond)
			So(tl.Playhead(), ShouldEqual, 0)
			So(clock.IsPlaying(), ShouldBeFalse)
			So(scheduler.pending(), ShouldEqual, 0)
		})

		Convey("The playhead should never exceed the total duration", func() {
			clock.Play()
			for clock.IsPlaying() {
				scheduler.advance(50 * time.Millisecond)
				So(tl.Playhead(), ShouldBeLessThanOrEqualTo, clock.TotalDuration())
			}
			So(tl.Playhead(), ShouldEqual, 0)
		})
	})
}

func TestPause(t *testing.T) {
	Convey("Given a playing clock", t, func() {
		clock, tl, scheduler := newClock(5)
		clock.Play()
		scheduler.advance(0)

		Convey("Pause should cancel the pending frame", func() {
			So(clock.Pause(), ShouldBeTrue)
			So(scheduler.pending(), ShouldEqual, 0)
			scheduler.advance(time.Second)
			So(tl.Playhead(), ShouldEqual, 0)
			So(clock.Pause(), ShouldBeFalse)
		})

		Convey("A frame delivered after pause should be ignored", func() {
			late := scheduler.queue[0]
			clock.Pause()
			late.fn(scheduler.now.Add(time.Second))
			So(tl.Playhead(), ShouldEqual, 0)
			So(scheduler.pending(), ShouldEqual, 0)
		})

		Convey("Toggle should stop playback", func() {
			So(clock.Toggle(), ShouldBeTrue)
			So(clock.IsPlaying(), ShouldBeFalse)
		})

		Convey("Close should stop playback for good", func() {
			clock.Close()
			So(clock.IsPlaying(), ShouldBeFalse)
			So(clock.Play(), ShouldBeFalse)
		})
	})
}

func TestSeek(t *testing.T) {
	Convey("Given a six second timeline", t, func() {
		clock, tl, _ := newClock(4, 2)

		Convey("Seek should clamp to the timeline", func() {
			So(clock.Seek(-5), ShouldEqual, 0)
			So(clock.Seek(100), ShouldEqual, 6)
			So(clock.Seek(3.5), ShouldEqual, 3.5)
			So(tl.Playhead(), ShouldEqual, 3.5)
		})

		Convey("SeekBy should be relative", func() {
			clock.Seek(2)
			So(clock.SeekBy(1.5), ShouldEqual, 3.5)
			So(clock.SeekBy(-10), ShouldEqual, 0)
		})

		Convey("Seek should work while playing", func() {
			clock.Play()
			So(clock.Seek(5), ShouldEqual, 5)
			So(clock.IsPlaying(), ShouldBeTrue)
		})
	})
}

func TestSubscribe(t *testing.T) {
	Convey("Observers should see every flip of the playing flag", t, func() {
		clock, _, scheduler := newClock(1)
		var flags []bool
		unsubscribe := clock.Subscribe(func(playing bool) { flags = append(flags, playing) })

		clock.Play()
		clock.Pause()
		clock.Toggle()
		for clock.IsPlaying() {
			scheduler.advance(100 * time.Millisecond)
		}
		So(flags, ShouldResemble, []bool{true, false, true, false})

		unsubscribe()
		clock.Play()
		So(flags, ShouldHaveLength, 4)
	})
}

func TestWithFPS(t *testing.T) {
	Convey("WithFPS", t, func() {
		tl := timeline.New()
		So(New(tl, &manualScheduler{}, WithFPS(60)).FrameBudget(), ShouldEqual, time.Second/60)
		So(New(tl, &manualScheduler{}, WithFPS(0)).FrameBudget(), ShouldEqual, time.Second/DefaultFPS)
	})
}
