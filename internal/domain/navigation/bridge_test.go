package navigation

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type failingRouter struct{ err error }

func (f failingRouter) Navigate(context.Context, string, string) error { return f.err }

func TestBridge(t *testing.T) {
	Convey("Given a bridge backed by a journal", t, func() {
		ctx := context.Background()
		journal := NewJournal(WithSize(2))
		bridge := NewBridge(journal)

		Convey("When a label is selected", func() {
			intent, err := bridge.OnSelect(ctx, "Côte d'Ivoire")

			Convey("Then the country intent is built and handed to the router", func() {
				So(err, ShouldBeNil)
				So(intent, ShouldResemble, Intent{Route: RouteCountry, Param: "Côte d'Ivoire"})
				So(journal.Recent(), ShouldResemble, []Intent{intent})
			})

			Convey("And the path escapes the parameter", func() {
				So(intent.Path(), ShouldEqual, "/country/C%C3%B4te%20d%27Ivoire")
			})
		})

		Convey("When the label is empty", func() {
			_, err := bridge.OnSelect(ctx, " ")

			Convey("Then nothing is navigated", func() {
				So(errors.Is(err, ErrEmptyLabel), ShouldBeTrue)
				So(journal.Recent(), ShouldBeEmpty)
			})
		})

		Convey("When more intents arrive than the journal holds", func() {
			for _, c := range []string{"France", "Italy", "Spain"} {
				_, _ = bridge.OnSelect(ctx, c)
			}

			Convey("Then only the most recent are kept", func() {
				recent := journal.Recent()
				So(recent, ShouldHaveLength, 2)
				So(recent[0].Param, ShouldEqual, "Italy")
				So(recent[1].Param, ShouldEqual, "Spain")
			})
		})
	})

	Convey("Given a router that fails", t, func() {
		boom := errors.New("router down")
		_, err := NewBridge(failingRouter{err: boom}).OnSelect(context.Background(), "France")

		Convey("Then the error is returned", func() {
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})

	Convey("Given a bridge without a router", t, func() {
		intent, err := NewBridge(nil).OnSelect(context.Background(), "Peru")

		Convey("Then it still translates", func() {
			So(err, ShouldBeNil)
			So(intent.Path(), ShouldEqual, "/country/Peru")
		})
	})
}
