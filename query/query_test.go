package query

import (
	"testing"

	"github.com/peek-cli/peek/filesystem"
	"github.com/peek-cli/peek/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given remembered filters", t, func() {
		So(Remember("bunny", 1), ShouldBeNil)
		So(Remember("blender", 10), ShouldBeNil)
		So(Remember("  BLAZES ", 5), ShouldBeNil)

		Convey("Suggestions should be sorted by rank", func() {
			s := SuggestMany("bl")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "blender")
			So(s, ShouldContain, "blazes")
		})

		Convey("Suggest should return the top match", func() {
			So(Suggest("bun").MustGet(), ShouldEqual, "bunny")
			So(Suggest("zzz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Remembering again should raise the rank", func() {
			So(Remember("bunny", 100), ShouldBeNil)
			So(SuggestMany("b")[0], ShouldEqual, "bunny")
		})

		Convey("Blank filters should not be stored", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(SuggestMany(""), ShouldNotContain, "")
		})

		Convey("Disabling suggestions should hide them", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)
			So(SuggestMany("bl"), ShouldBeEmpty)
		})
	})

	Convey("It sanitizes input", t, func() {
		So(sanitize("  BUNNY  "), ShouldEqual, "bunny")
	})
}
