package util

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("cut:final?.cfp"), ShouldEqual, "cut_final_.cfp")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("my  project"), ShouldEqual, "my_project")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-reel-"), ShouldEqual, "reel")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "clip", "clips"), ShouldEqual, "1 clip")
		So(Quantify(2, "clip", "clips"), ShouldEqual, "2 clips")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/intro.mp4"), ShouldEqual, "intro")
		So(FileStem("intro"), ShouldEqual, "intro")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("main"), ShouldEqual, "Main")
		So(Capitalize("ébauche"), ShouldEqual, "Ébauche")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(300, 20, 240), ShouldEqual, 240)
		So(Clamp(5, 20, 240), ShouldEqual, 20)
		So(Clamp(1.5, 0.0, 10.0), ShouldEqual, 1.5)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)

		item, ok := s.Pop()
		So(ok, ShouldBeTrue)
		So(item, ShouldEqual, 2)

		item, _ = s.Pop()
		So(item, ShouldEqual, 1)

		_, ok = s.Pop()
		So(ok, ShouldBeFalse)

		Convey("With a limit the oldest entries are discarded", func() {
			bounded := Stack[int]{Limit: 2}
			bounded.Push(1)
			bounded.Push(2)
			bounded.Push(3)
			So(bounded.Len(), ShouldEqual, 2)
			top, _ := bounded.Pop()
			So(top, ShouldEqual, 3)
			next, _ := bounded.Pop()
			So(next, ShouldEqual, 2)
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("FormatDuration", t, func() {
		So(FormatDuration(0), ShouldEqual, "0:00")
		So(FormatDuration(65.4), ShouldEqual, "1:05")
		So(FormatDuration(3725), ShouldEqual, "1:02:05")
		So(FormatDuration(math.NaN()), ShouldEqual, "0:00")
		So(FormatDuration(-4), ShouldEqual, "0:00")
	})

	Convey("FormatTimestamp truncates", t, func() {
		So(FormatTimestamp(59.9), ShouldEqual, "0:59")
		So(FormatTimestamp(61), ShouldEqual, "1:01")
	})

	Convey("FormatBytes", t, func() {
		So(FormatBytes(0), ShouldEqual, "—")
		So(FormatBytes(512), ShouldEqual, "512 bytes")
		So(FormatBytes(1536), ShouldEqual, "1.5 KB")
		So(FormatBytes(20*1024*1024), ShouldEqual, "20 MB")
	})

	Convey("FormatBitrate", t, func() {
		So(FormatBitrate(0), ShouldEqual, "—")
		So(FormatBitrate(2_500_000), ShouldEqual, "2.5 Mbps")
		So(FormatBitrate(12_000_000), ShouldEqual, "12 Mbps")
	})
}
