package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipforge-cli/clipforge/config"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/media"
	"github.com/clipforge-cli/clipforge/player"
	"github.com/clipforge-cli/clipforge/project"
	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

var fixtures int

type fixture struct {
	bubble *statefulBubble
	player *player.Null
	intro  media.Media
	outro  media.Media
}

func newFixture() *fixture {
	fixtures++
	fs := filesystem.API()
	lo.Must0(afero.WriteFile(fs, "/media/intro.mp4", []byte("intro"), 0o644))
	lo.Must0(afero.WriteFile(fs, "/media/outro.mp4", []byte("outro"), 0o644))

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	intro := media.Media{ID: "m-intro", Path: "/media/intro.mp4", Name: "intro", CreatedAt: created, Metadata: media.Metadata{Duration: 4}}
	outro := media.Media{ID: "m-outro", Path: "/media/outro.mp4", Name: "outro", CreatedAt: created.Add(time.Hour), Metadata: media.Metadata{Duration: 3}}

	library := media.NewLibrary(fmt.Sprintf("/library-%d.json", fixtures))
	lo.Must0(library.Add(intro, outro))

	p := &player.Null{}
	file := project.New(fmt.Sprintf("demo-%d", fixtures))
	b := newBubble(&Options{}, file, "", library, p)
	b.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	return &fixture{bubble: b, player: p, intro: intro, outro: outro}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func (f *fixture) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = f.bubble.Update(keyMsg(k))
	}
	return cmd
}

// drain runs the next callback posted by a background source resolution.
func (f *fixture) drain() {
	select {
	case fn := <-f.bubble.dispatched:
		f.bubble.Update(dispatchMsg(fn))
	case <-time.After(2 * time.Second):
		panic("nothing was dispatched")
	}
}

func (f *fixture) starts(track timeline.Track) []float64 {
	return lo.Map(f.bubble.timeline.TrackClips(track), func(c timeline.Clip, _ int) float64 {
		return c.Start
	})
}

func TestFrameScheduler(t *testing.T) {
	Convey("Given a frame scheduler", t, func() {
		s := newFrameScheduler()
		var fired []string

		first := s.RequestFrame(func(time.Time) { fired = append(fired, "first") })
		s.RequestFrame(func(time.Time) { fired = append(fired, "second") })

		Convey("Requested frames are flushed once as commands", func() {
			So(s.flush(), ShouldNotBeNil)
			So(s.flush(), ShouldBeNil)
		})

		Convey("Cancelled frames never fire", func() {
			first.Cancel()
			s.fire(frameMsg{id: 1})
			s.fire(frameMsg{id: 2})
			s.fire(frameMsg{id: 2})
			So(fired, ShouldResemble, []string{"second"})
		})
	})
}

func TestEditor(t *testing.T) {
	Convey("Given an editor with an empty project", t, func() {
		f := newFixture()
		b := f.bubble
		Reset(b.shutdown)

		So(b.state, ShouldEqual, editState)
		So(b.timeline.Len(), ShouldEqual, 0)

		Convey("Media picked from the library is appended and previewed", func() {
			f.press("a")
			So(b.state, ShouldEqual, pickState)
			So(b.pickerC.Items(), ShouldHaveLength, 2)

			f.press("j", "enter")
			So(b.state, ShouldEqual, editState)
			So(b.timeline.Len(), ShouldEqual, 1)
			So(b.dirty, ShouldBeTrue)

			clip := b.selectedClip().MustGet()
			So(clip.MediaID, ShouldEqual, "m-intro")
			So(clip.Duration, ShouldEqual, 4)

			f.drain()
			So(f.player.Source, ShouldEqual, "file:///media/intro.mp4")
			So(b.sync.Status().Loading, ShouldBeFalse)
		})

		Convey("Leaving the picker adds nothing", func() {
			f.press("a", "esc")
			So(b.state, ShouldEqual, editState)
			So(b.timeline.Len(), ShouldEqual, 0)
		})

		Convey("Media without a known duration gets a default length", func() {
			b.addMedia(media.Media{ID: "m-still", Name: "still"})
			So(b.selectedClip().MustGet().Duration, ShouldEqual, fallbackClipDuration)
		})

		Convey("With a clip on the timeline", func() {
			b.addMedia(f.intro)
			f.drain()

			Convey("Splitting at the playhead selects the second half", func() {
				f.press("right", "right")
				So(b.timeline.Playhead(), ShouldEqual, 2)

				f.press("s")
				So(b.timeline.Len(), ShouldEqual, 2)
				So(f.starts(timeline.Main), ShouldResemble, []float64{0, 2})
				So(b.selectedClip().MustGet().Start, ShouldEqual, 2)

				Convey("And undo restores the unsplit clip", func() {
					f.press("u")
					So(b.timeline.Len(), ShouldEqual, 1)
					So(b.selectedClip().MustGet().Duration, ShouldEqual, 4)

					f.press("u")
					So(b.timeline.Len(), ShouldEqual, 0)
					So(f.press("u"), ShouldNotBeNil)
				})
			})

			Convey("Splitting outside the clip is refused", func() {
				So(f.press("s"), ShouldNotBeNil)
				So(b.timeline.Len(), ShouldEqual, 1)
			})

			Convey("Moving to the other track keeps one clip", func() {
				f.press("m")
				So(b.selectedClip().MustGet().Track, ShouldEqual, timeline.Overlay)
				So(b.timeline.TrackClips(timeline.Main), ShouldBeEmpty)
			})

			Convey("Nudging repositions the clip", func() {
				f.press(".", ".")
				So(b.selectedClip().MustGet().Start, ShouldEqual, 2)
				f.press(",")
				So(b.selectedClip().MustGet().Start, ShouldEqual, 1)
			})

			Convey("Trimming stays inside the media", func() {
				f.press(">")
				So(b.selectedClip().MustGet().Duration, ShouldEqual, 4)

				f.press("<", "}")
				clip := b.selectedClip().MustGet()
				So(clip.End(), ShouldEqual, 3.5)
				So(clip.InPoint, ShouldEqual, 0.5)
			})

			Convey("Removing clears the selection", func() {
				f.press("d")
				So(b.timeline.Len(), ShouldEqual, 0)
				So(b.selected, ShouldBeEmpty)
			})

			Convey("Zoom keys change the zoom by the configured step", func() {
				zoom := b.timeline.Zoom()
				f.press("+")
				So(b.timeline.Zoom(), ShouldEqual, zoom+20)
				f.press("-", "-")
				So(b.timeline.Zoom(), ShouldEqual, zoom-20)
			})

			Convey("Playing advances the playhead on delivered frames", func() {
				f.press("space")
				So(b.clock.IsPlaying(), ShouldBeTrue)
				So(f.player.Playing, ShouldBeTrue)

				start := time.Now()
				b.Update(frameMsg{id: b.scheduler.next, now: start})
				b.Update(frameMsg{id: b.scheduler.next, now: start.Add(100 * time.Millisecond)})
				So(b.timeline.Playhead(), ShouldAlmostEqual, 0.1, 1e-9)

				f.press("space")
				So(b.clock.IsPlaying(), ShouldBeFalse)
				So(f.player.Playing, ShouldBeFalse)
			})

			Convey("Quitting with unsaved changes asks twice", func() {
				So(f.press("q"), ShouldNotBeNil)
				So(b.closed, ShouldBeFalse)

				f.press("tab", "q")
				So(b.closed, ShouldBeFalse)

				f.press("q")
				So(b.closed, ShouldBeTrue)
			})

			Convey("Saving writes the project and records it as recent", func() {
				f.press("w")
				So(b.dirty, ShouldBeFalse)
				So(b.projectPath, ShouldEqual, project.Path(b.project.Name))

				saved, err := project.Load(b.projectPath)
				So(err, ShouldBeNil)
				So(saved.Clips, ShouldHaveLength, 1)
				So(project.Recent()[0], ShouldEqual, b.projectPath)

				f.press("q")
				So(b.closed, ShouldBeTrue)
			})

			Convey("The view shows the clip and the preview", func() {
				view := b.View()
				So(view, ShouldContainSubstring, "intro")
				So(view, ShouldContainSubstring, "Preview")
			})
		})

		Convey("An empty library keeps the editor open", func() {
			lo.Must0(b.library.Clear())
			So(f.press("a"), ShouldNotBeNil)
			So(b.state, ShouldEqual, editState)
		})
	})
}
