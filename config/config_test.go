package config_test

import (
	"errors"
	"testing"

	"github.com/clipforge-cli/clipforge/config"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := config.Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = config.Setup()
			for name := range config.Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.PlaybackFPS), ShouldEqual, 30)
			So(viper.GetFloat64(key.PreviewTolerancePlaying), ShouldEqual, 0.25)
			So(viper.GetFloat64(key.PreviewTolerancePaused), ShouldEqual, 0.02)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := config.EnvKeyReplacer.Replace("preview.tolerance_playing")
			So(result, ShouldEqual, "preview_tolerance_playing")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := config.Default[key.TimelineNudgeStep]

		Convey("Env should be prefixed and upper-cased", func() {
			So(field.Env(), ShouldEqual, "CLIPFORGE_TIMELINE_NUDGE_STEP")
		})

		Convey("JSON should report the value type", func() {
			data, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"type":"float64"`)
		})

		Convey("Pretty should mention the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.TimelineNudgeStep)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given raw values from the command line", t, func() {
		Convey("They are converted to the type of the default", func() {
			v, err := config.Parse(key.PlaybackFPS, []string{"60"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 60)

			v, err = config.Parse(key.TimelineTrimStep, []string{"0.25"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.25)

			v, err = config.Parse(key.TUIShowHelp, []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			v, err = config.Parse(key.Player, []string{"none", "ignored"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "none")

			v, err = config.Parse(key.MediaExtensions, []string{"mp4", "mov"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"mp4", "mov"})
		})

		Convey("Malformed values are rejected", func() {
			_, err := config.Parse(key.PlaybackFPS, []string{"fast"})
			So(err, ShouldNotBeNil)

			_, err = config.Parse(key.TUIShowHelp, []string{"maybe"})
			So(err, ShouldNotBeNil)

			_, err = config.Parse(key.TimelineNudgeStep, nil)
			So(err, ShouldNotBeNil)
		})

		Convey("Unknown keys are reported", func() {
			_, err := config.Parse("playback.fsp", []string{"1"})
			So(errors.Is(err, config.ErrUnknownKey), ShouldBeTrue)
		})
	})
}

func TestClosest(t *testing.T) {
	Convey("A misspelled key resolves to the nearest registered one", t, func() {
		So(config.Closest("playback.fsp"), ShouldEqual, key.PlaybackFPS)
		So(config.Closest("timeline.trim_stp"), ShouldEqual, key.TimelineTrimStep)
	})
}

func TestReset(t *testing.T) {
	Convey("Given a changed setting", t, func() {
		So(config.Setup(), ShouldBeNil)
		viper.Set(key.TimelineZoomStep, 5)

		Convey("Reset restores its default", func() {
			So(config.Reset(key.TimelineZoomStep), ShouldBeNil)
			So(viper.GetInt(key.TimelineZoomStep), ShouldEqual, 20)
		})

		Convey("An empty key resets everything", func() {
			viper.Set(key.PlaybackFPS, 12)
			So(config.Reset(""), ShouldBeNil)
			So(viper.GetInt(key.TimelineZoomStep), ShouldEqual, 20)
			So(viper.GetInt(key.PlaybackFPS), ShouldEqual, 30)
		})

		Convey("Unknown keys are rejected", func() {
			So(errors.Is(config.Reset("nope"), config.ErrUnknownKey), ShouldBeTrue)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given the default settings", t, func() {
		So(config.Setup(), ShouldBeNil)
		So(config.Reset(""), ShouldBeNil)

		Convey("They are valid", func() {
			So(config.Validate(), ShouldBeNil)
		})

		Convey("Out of range values are reported together", func() {
			viper.Set(key.PlaybackFPS, 0)
			viper.Set(key.TimelineDefaultZoom, 1000)
			err := config.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.PlaybackFPS)
			So(err.Error(), ShouldContainSubstring, key.TimelineDefaultZoom)
			So(config.Reset(""), ShouldBeNil)
		})
	})
}
