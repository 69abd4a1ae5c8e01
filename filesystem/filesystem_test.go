package filesystem

import (
	"io"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		fs := GacheFs{}

		Convey("Files written through GacheFs should be visible through API", func() {
			So(fs.MkdirAll("/cache/peek", os.ModePerm), ShouldBeNil)

			file, err := fs.OpenFile("/cache/peek/queries.json", os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
			So(err, ShouldBeNil)
			_, err = io.WriteString(file, `{"bunny":1}`)
			So(err, ShouldBeNil)
			So(file.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/peek/queries.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"bunny":1}`)
		})
	})
}
