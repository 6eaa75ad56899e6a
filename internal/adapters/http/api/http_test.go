package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/podium/internal/adapters/chart/echarts"
	"github.com/okian/podium/internal/adapters/dataset"
	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/surface"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/navigation"
	"github.com/okian/podium/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// downDeps answers every page with a fetch failure.
type downDeps struct{}

func (downDeps) GetStats() map[string]interface{} { return map[string]interface{}{"started": false} }

func (downDeps) Home(context.Context) (service.HomePage, error) {
	return service.HomePage{}, fmt.Errorf("%w: connection refused", dataset.ErrFetch)
}

func (downDeps) Country(context.Context, string) (service.CountryPage, error) {
	return service.CountryPage{}, fmt.Errorf("%w: connection refused", dataset.ErrFetch)
}

func (downDeps) Select(context.Context, string, int) (navigation.Intent, error) {
	return navigation.Intent{}, fmt.Errorf("router down")
}

func (downDeps) Surface(string) (surface.Content, bool) { return surface.Content{}, false }

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPages(t *testing.T) {
	Convey("Given the dashboard routes over the embedded dataset", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		mux := newMux(svc)

		Convey("When the home page is requested", func() {
			rec := get(mux, "/")

			Convey("Then the summary and the pie are shown", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/html")
				body := rec.Body.String()
				So(body, ShouldContainSubstring, "Number of countries<br><strong>5</strong>")
				So(body, ShouldContainSubstring, "Number of JOs<br><strong>3</strong>")
				So(body, ShouldContainSubstring, "data:image/svg+xml;base64,")
				So(body, ShouldContainSubstring, `href="/surfaces/DashboardPieChart/select?index=4"`)
			})

			Convey("And the drawn pie is served raw", func() {
				rec := get(mux, "/surfaces/"+surface.DashboardPie)
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldEqual, "image/svg+xml")
				So(rec.Body.String(), ShouldContainSubstring, "<svg")
			})

			Convey("And clicking a segment redirects to the country", func() {
				rec := get(mux, "/surfaces/"+surface.DashboardPie+"/select?index=2")
				So(rec.Code, ShouldEqual, http.StatusSeeOther)
				So(rec.Header().Get("Location"), ShouldEqual, "/country/United%20States")
			})

			Convey("And clicking outside the segments is ignored", func() {
				So(get(mux, "/surfaces/"+surface.DashboardPie+"/select?index=5").Code, ShouldEqual, http.StatusNoContent)
				So(get(mux, "/surfaces/"+surface.DashboardPie+"/select?index=-1").Code, ShouldEqual, http.StatusNoContent)
			})

			Convey("And a malformed index is rejected", func() {
				So(get(mux, "/surfaces/"+surface.DashboardPie+"/select?index=abc").Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a country page is requested", func() {
			rec := get(mux, "/country/United%20States")

			Convey("Then its totals are shown with separators", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := rec.Body.String()
				So(body, ShouldContainSubstring, "<h1>United States</h1>")
				So(body, ShouldContainSubstring, "<strong>1,677</strong>")
				So(body, ShouldContainSubstring, "<strong>338</strong>")
			})

			Convey("Then the athletes sent each year are listed", func() {
				body := rec.Body.String()
				So(body, ShouldContainSubstring, "<th>Athletes</th>")
				So(body, ShouldContainSubstring, "<tr><td>2016</td><td>555</td></tr>")
			})
		})

		Convey("When the country is unknown", func() {
			rec := get(mux, "/country/Atlantis")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
			So(rec.Body.String(), ShouldContainSubstring, "country not found")
		})

		Convey("When the country name is missing", func() {
			So(get(mux, "/country/").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When nothing is drawn on a surface yet", func() {
			So(get(mux, "/surfaces/"+surface.CountryChart).Code, ShouldEqual, http.StatusNotFound)
			So(get(mux, "/surfaces/nowhere").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given the dashboard rendering interactive charts", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()), service.WithRenderer(echarts.New(0, 0)))
		mux := newMux(svc)

		Convey("Then the chart is embedded as a sandboxed document", func() {
			rec := get(mux, "/")
			So(rec.Code, ShouldEqual, http.StatusOK)
			body := rec.Body.String()
			So(body, ShouldContainSubstring, `<iframe sandbox="allow-scripts allow-top-navigation-by-user-activation"`)
			So(body, ShouldContainSubstring, "select?index=")
		})
	})

	Convey("Given a dataset where no country won a medal", t, func() {
		path := filepath.Join(t.TempDir(), "olympic.json")
		doc := `[{"country":"Andorra","participations":[{"year":2016,"athleteCount":5,"medalsCount":0}]},` +
			`{"country":"San Marino","participations":[{"year":2016,"athleteCount":5,"medalsCount":0}]}]`
		So(os.WriteFile(path, []byte(doc), 0o600), ShouldBeNil)
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithAccessor(dataset.New(dataset.WithPath(path))),
		)
		mux := newMux(svc)

		Convey("When the home page is requested", func() {
			rec := get(mux, "/")

			Convey("Then the pie is reported unavailable", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "chart unavailable")
			})

			Convey("Then every country links straight to its page", func() {
				body := rec.Body.String()
				So(body, ShouldNotContainSubstring, "/select?index=")
				So(body, ShouldContainSubstring, `<a href="/country/San%20Marino">San Marino</a>`)
				So(get(mux, "/country/San%20Marino").Code, ShouldEqual, http.StatusOK)
			})
		})
	})

	Convey("Given a data source that is down", t, func() {
		mux := newMux(downDeps{})

		Convey("Then pages answer with a bad gateway", func() {
			rec := get(mux, "/")
			So(rec.Code, ShouldEqual, http.StatusBadGateway)
			So(rec.Body.String(), ShouldContainSubstring, "unable to load data")
			So(get(mux, "/country/France").Code, ShouldEqual, http.StatusBadGateway)
		})

		Convey("Then a failing router is a server error", func() {
			So(get(mux, "/surfaces/"+surface.DashboardPie+"/select?index=0").Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestOperationalRoutes(t *testing.T) {
	Convey("Given the operational routes", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		mux := newMux(svc)

		Convey("When checking health", func() {
			rec := get(mux, "/healthz")
			var body map[string]string
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(body["status"], ShouldEqual, "ok")
		})

		Convey("When reading stats", func() {
			_ = get(mux, "/")
			rec := get(mux, "/stats")
			var body map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body["liveHandles"], ShouldEqual, float64(1))
			So(body["boundSurfaces"], ShouldResemble, []interface{}{surface.DashboardPie})
		})

		Convey("When scraping metrics", func() {
			_ = get(mux, "/healthz")
			rec := get(mux, "/metrics")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "podium_dashboard_http_requests_total")
		})

		Convey("When using an unsupported method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stats", nil))
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}
