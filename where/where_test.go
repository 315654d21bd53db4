package where

import (
	"path/filepath"
	"testing"

	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Projects()", func() {
			path := Projects()
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			So(filepath.Dir(path), ShouldEqual, Config())
		})

		Convey("Library()", func() {
			So(filepath.Base(Library()), ShouldEqual, "library.json")
		})

		Convey("Override via env", func() {
			t.Setenv(EnvConfigPath, "/tmp/clipforge-test-config")
			So(Config(), ShouldEqual, "/tmp/clipforge-test-config")
		})
	})
}
