package ui

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("A notification is shown until its own clear arrives", func() {
			cmd := m.Update(Notify("saved")())
			So(cmd, ShouldNotBeNil)
			So(m.Text(), ShouldEqual, "saved")
			So(m.View("a\nb"), ShouldContainSubstring, "b  \033[90msaved")

			first := m.notifiedAt
			m.Update(NotificationMsg("again"))
			m.Update(ClearNotificationMsg{At: first.Add(-time.Second)})
			So(m.Text(), ShouldEqual, "again")

			m.Update(ClearNotificationMsg{At: m.notifiedAt})
			So(m.Text(), ShouldBeEmpty)
			So(m.View("a"), ShouldEqual, "a")
		})
	})
}
