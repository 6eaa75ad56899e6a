package service

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSlugAndExtension(t *testing.T) {
	Convey("Country names become file-safe slugs", t, func() {
		So(slug("United States"), ShouldEqual, "united-states")
		So(slug("Côte d'Ivoire"), ShouldEqual, "côte-d-ivoire")
		So(slug("  Spain!"), ShouldEqual, "spain")
	})

	Convey("Media types map to file extensions", t, func() {
		So(extension("image/svg+xml"), ShouldEqual, ".svg")
		So(extension("image/png"), ShouldEqual, ".png")
		So(extension("text/html; charset=utf-8"), ShouldEqual, ".html")
		So(extension("application/octet-stream"), ShouldEqual, ".bin")
	})
}
