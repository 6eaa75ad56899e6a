package chart

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/navigation"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSurface struct {
	id      string
	content []byte
}

func (s *fakeSurface) ID() string                    { return s.id }
func (s *fakeSurface) Draw(content []byte, _ string) { s.content = content }
func (s *fakeSurface) Clear()                        { s.content = nil }

// fakeRenderer logs every call and tracks live resources per surface.
type fakeRenderer struct {
	calls []string
	live  map[string]int
	fail  error
}

func newFakeRenderer() *fakeRenderer { return &fakeRenderer{live: map[string]int{}} }

func (r *fakeRenderer) Create(_ context.Context, s Surface, kind Kind, d Dataset, _ Style) error {
	r.calls = append(r.calls, "create:"+s.ID())
	if r.fail != nil {
		return r.fail
	}
	r.live[s.ID()]++
	s.Draw([]byte(string(kind)), "text/plain")
	return nil
}

func (r *fakeRenderer) Dispose(_ context.Context, s Surface) {
	r.calls = append(r.calls, "dispose:"+s.ID())
	r.live[s.ID()]--
	s.Clear()
}

func pieData() Dataset {
	return Dataset{Labels: []string{"Italy", "Japan", "France"}, Values: []float64{30, 39, 45}}
}

func TestManagerRender(t *testing.T) {
	Convey("Given a manager and a located surface", t, func() {
		ctx := context.Background()
		renderer := newFakeRenderer()
		m := NewManager(WithRenderer(renderer))
		surface := &fakeSurface{id: "DashboardPieChart"}
		target := RenderTarget{ID: surface.id, Surface: surface}

		Convey("When rendering once", func() {
			h, err := m.Render(ctx, target, pieData(), KindPie, Style{Selectable: true})

			Convey("Then the surface is bound to a new handle", func() {
				So(err, ShouldBeNil)
				So(h.ID, ShouldNotBeEmpty)
				So(h.SurfaceID, ShouldEqual, "DashboardPieChart")
				So(h.Labels, ShouldResemble, pieData().Labels)
				So(m.Live(), ShouldEqual, 1)
				So(string(surface.content), ShouldEqual, "pie")
			})
		})

		Convey("When rendering twice on the same surface", func() {
			first, err1 := m.Render(ctx, target, pieData(), KindPie, Style{})
			second, err2 := m.Render(ctx, target, pieData(), KindLine, Style{})

			Convey("Then exactly one handle is live and the first was disposed before the second was created", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first.ID, ShouldNotEqual, second.ID)
				So(m.Live(), ShouldEqual, 1)
				So(renderer.live["DashboardPieChart"], ShouldEqual, 1)
				So(renderer.calls, ShouldResemble, []string{"create:DashboardPieChart", "dispose:DashboardPieChart", "create:DashboardPieChart"})
				bound, ok := m.Bound("DashboardPieChart")
				So(ok, ShouldBeTrue)
				So(bound.ID, ShouldEqual, second.ID)
				So(bound.Kind, ShouldEqual, KindLine)
			})
		})

		Convey("When the surface cannot be located", func() {
			_, _ = m.Render(ctx, target, pieData(), KindPie, Style{})
			_, err := m.Render(ctx, RenderTarget{ID: "DashboardPieChart"}, pieData(), KindPie, Style{})

			Convey("Then SurfaceNotFound is returned and the surface is left empty", func() {
				So(errors.Is(err, ErrSurfaceNotFound), ShouldBeTrue)
				_, ok := m.Bound("DashboardPieChart")
				So(ok, ShouldBeFalse)
				So(m.Live(), ShouldEqual, 0)
				So(renderer.live["DashboardPieChart"], ShouldEqual, 0)
			})
		})

		Convey("When the renderer fails", func() {
			renderer.fail = errors.New("boom")
			_, err := m.Render(ctx, target, pieData(), KindPie, Style{})

			Convey("Then ErrRender wraps the cause and nothing is bound", func() {
				So(errors.Is(err, ErrRender), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "boom")
				So(m.Live(), ShouldEqual, 0)
			})
		})

		Convey("When the kind is unknown", func() {
			_, err := m.Render(ctx, target, pieData(), Kind("radar"), Style{})

			Convey("Then ErrUnknownKind is returned without touching the renderer", func() {
				So(errors.Is(err, ErrUnknownKind), ShouldBeTrue)
				So(renderer.calls, ShouldBeEmpty)
			})
		})

		Convey("When labels and values differ in length", func() {
			_, err := m.Render(ctx, target, Dataset{Labels: []string{"a"}, Values: []float64{1, 2}}, KindPie, Style{})

			Convey("Then ErrInvalidDataset is returned", func() {
				So(errors.Is(err, ErrInvalidDataset), ShouldBeTrue)
			})
		})

		Convey("When no renderer is configured", func() {
			_, err := NewManager().Render(ctx, target, pieData(), KindPie, Style{})

			Convey("Then ErrRender is returned", func() {
				So(errors.Is(err, ErrRender), ShouldBeTrue)
			})
		})
	})
}

func TestManagerDestroy(t *testing.T) {
	Convey("Given a bound surface", t, func() {
		ctx := context.Background()
		renderer := newFakeRenderer()
		m := NewManager(WithRenderer(renderer))
		surface := &fakeSurface{id: "countryChart"}
		_, err := m.Render(ctx, RenderTarget{ID: surface.id, Surface: surface}, pieData(), KindLine, Style{})
		So(err, ShouldBeNil)

		Convey("When destroying it twice", func() {
			So(func() {
				m.Destroy(ctx, "countryChart")
				m.Destroy(ctx, "countryChart")
			}, ShouldNotPanic)

			Convey("Then the resource was released once and the surface is empty", func() {
				So(renderer.live["countryChart"], ShouldEqual, 0)
				So(renderer.calls, ShouldResemble, []string{"create:countryChart", "dispose:countryChart"})
				So(surface.content, ShouldBeNil)
				So(m.Live(), ShouldEqual, 0)
			})
		})

		Convey("When destroying a surface that never had a chart", func() {
			m.Destroy(ctx, "unknown")

			Convey("Then nothing happens", func() {
				So(m.Live(), ShouldEqual, 1)
			})
		})

		Convey("When closing the manager", func() {
			other := &fakeSurface{id: "DashboardPieChart"}
			_, _ = m.Render(ctx, RenderTarget{ID: other.id, Surface: other}, pieData(), KindPie, Style{})
			m.Close(ctx)

			Convey("Then every chart is released", func() {
				So(m.Live(), ShouldEqual, 0)
				So(renderer.live["countryChart"], ShouldEqual, 0)
				So(renderer.live["DashboardPieChart"], ShouldEqual, 0)
			})
		})
	})
}

func TestManagerSelect(t *testing.T) {
	Convey("Given a selectable pie bound to a surface", t, func() {
		ctx := context.Background()
		journal := navigation.NewJournal()
		m := NewManager(WithRenderer(newFakeRenderer()), WithSelector(navigation.NewBridge(journal)))
		surface := &fakeSurface{id: "DashboardPieChart"}
		_, err := m.Render(ctx, RenderTarget{ID: surface.id, Surface: surface}, pieData(), KindPie, Style{Selectable: true})
		So(err, ShouldBeNil)

		Convey("When segment 2 is clicked", func() {
			intent, err := m.Select(ctx, "DashboardPieChart", 2)

			Convey("Then the label is forwarded as a country intent", func() {
				So(err, ShouldBeNil)
				So(intent, ShouldResemble, navigation.Intent{Route: "country", Param: "France"})
				So(journal.Recent(), ShouldResemble, []navigation.Intent{intent})
			})
		})

		Convey("When index 5 is clicked on a 3-element series", func() {
			_, err := m.Select(ctx, "DashboardPieChart", 5)

			Convey("Then the selection is invalid and no intent is emitted", func() {
				So(errors.Is(err, ErrInvalidSelection), ShouldBeTrue)
				So(journal.Recent(), ShouldBeEmpty)
			})
		})

		Convey("When a negative index is clicked", func() {
			_, err := m.Select(ctx, "DashboardPieChart", -1)
			So(errors.Is(err, ErrInvalidSelection), ShouldBeTrue)
		})

		Convey("When the surface is empty", func() {
			m.Destroy(ctx, "DashboardPieChart")
			_, err := m.Select(ctx, "DashboardPieChart", 0)
			So(errors.Is(err, ErrInvalidSelection), ShouldBeTrue)
		})

		Convey("When the chart is not selectable", func() {
			_, _ = m.Render(ctx, RenderTarget{ID: surface.id, Surface: surface}, pieData(), KindLine, Style{})
			_, err := m.Select(ctx, "DashboardPieChart", 0)
			So(errors.Is(err, ErrInvalidSelection), ShouldBeTrue)
			So(journal.Recent(), ShouldBeEmpty)
		})
	})
}

func TestFromSeries(t *testing.T) {
	Convey("Given a yearly series", t, func() {
		s := aggregate.ChartSeries[int]{Labels: []int{2004, 2000}, Values: []float64{25, 20}}
		d := FromSeries(s)

		Convey("Then labels are formatted and order is kept", func() {
			So(d.Labels, ShouldResemble, []string{"2004", "2000"})
			So(d.Values, ShouldResemble, []float64{25, 20})
			So(d.Total(), ShouldEqual, 45)
			So(d.Len(), ShouldEqual, 2)
		})

		Convey("And the dataset does not alias the series", func() {
			d.Values[0] = 0
			So(s.Values[0], ShouldEqual, 25)
		})
	})

	Convey("Given a style without a palette the default palette cycles", t, func() {
		So(Style{}.Color(0), ShouldEqual, "#0b868f")
		So(Style{}.Color(len(DefaultPalette)), ShouldEqual, "#0b868f")
		So(Style{Palette: []string{"#000000"}}.Color(3), ShouldEqual, "#000000")
	})
}
