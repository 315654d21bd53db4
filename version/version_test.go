package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Versions compare component by component", t, func() {
		cases := []struct {
			a, b string
			want int
		}{
			{"1.0.0", "1.0.0", 0},
			{"v1.2.0", "1.1.9", 1},
			{"0.1.0", "0.10.0", -1},
			{"2.0.0", "10.0.0", -1},
			{"1.2", "1.2.0", 0},
			{"1.3.0-rc1", "1.3.0", 0},
		}

		for _, c := range cases {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}
	})

	Convey("Malformed versions are rejected", t, func() {
		_, err := Compare("latest", "1.0.0")
		So(err, ShouldNotBeNil)

		_, err = Compare("1.0.0", "1.0.0.1")
		So(err, ShouldNotBeNil)
	})
}

func TestParseRelease(t *testing.T) {
	Convey("The tag name is used without its v prefix", t, func() {
		version, err := parseRelease([]byte(`{"tag_name":"v0.3.1","name":"0.3.1"}`))
		So(err, ShouldBeNil)
		So(version, ShouldEqual, "0.3.1")
	})

	Convey("Releases without a tag are errors", t, func() {
		_, err := parseRelease([]byte(`{"name":"draft"}`))
		So(err, ShouldNotBeNil)

		_, err = parseRelease([]byte(`not json`))
		So(err, ShouldNotBeNil)
	})
}
