package open

import (
	"testing"

	"github.com/peek-cli/peek/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("The handler should depend on the platform", t, func() {
		cmd, ok := command(constant.Linux, "https://example.com")
		So(ok, ShouldBeTrue)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", "https://example.com"})

		cmd, ok = command(constant.Darwin, "https://example.com")
		So(ok, ShouldBeTrue)
		So(cmd.Args[0], ShouldEqual, "open")

		_, ok = command("plan9", "https://example.com")
		So(ok, ShouldBeFalse)
	})
}

func TestValidate(t *testing.T) {
	Convey("Only web links should be opened", t, func() {
		So(validate("https://example.com/video.mp4"), ShouldBeNil)
		So(validate("http://example.com"), ShouldBeNil)

		So(validate("file:///etc/passwd"), ShouldNotBeNil)
		So(validate("javascript:alert(1)"), ShouldNotBeNil)
		So(validate("/relative/path"), ShouldNotBeNil)
		So(Start("ftp://example.com"), ShouldNotBeNil)
	})
}
