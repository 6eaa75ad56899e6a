package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/okian/podium/internal/adapters/chart"
	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// HomePage is the dashboard: global summary and medals per country.
type HomePage struct {
	Summary aggregate.GlobalSummary
	Medals  aggregate.ChartSeries[string]
	Chart   Chart
}

// HomeView renders the dashboard pie onto the DashboardPieChart surface.
type HomeView struct {
	*lifecycle
	accessor Accessor
	style    chart.Style
}

func newHomeView(lc *lifecycle, accessor Accessor, style chart.Style) *HomeView {
	return &HomeView{lifecycle: lc, accessor: accessor, style: style}
}

// Load fetches the record set and applies it unless the view was torn
// down in the meantime.
func (v *HomeView) Load(ctx context.Context) (HomePage, error) {
	ctx, span := tracer.Start(ctx, "home.Load")
	defer span.End()

	fetchCtx, cancel, token := v.begin(ctx)
	defer cancel()

	records, err := v.accessor.FetchAll(fetchCtx)
	if err != nil {
		recordError(span, err)
		if v.stale(token) {
			return HomePage{}, ErrViewClosed
		}
		return HomePage{}, err
	}

	var page HomePage
	err = v.apply(ctx, token, func() error {
		page = v.onDataChanged(ctx, records)
		return nil
	})
	span.SetAttributes(attribute.Int("home.countries", page.Summary.TotalCountries))
	return page, err
}

// OnDataChanged recomputes the summary and redraws the pie.
func (v *HomeView) OnDataChanged(ctx context.Context, records []model.Record) HomePage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.onDataChanged(ctx, records)
}

func (v *HomeView) onDataChanged(ctx context.Context, records []model.Record) HomePage {
	page := HomePage{
		Summary: aggregate.Summarize(records),
		Medals:  aggregate.MedalsPerCountry(records),
	}
	c, err := v.render(ctx, chart.FromSeries(page.Medals), chart.KindPie, v.style)
	if err != nil {
		v.logger.Warn(ctx, "dashboard chart unavailable", logger.Error(err))
	}
	page.Chart = c
	return page
}

// OnTeardown cancels in-flight loads and releases the pie.
func (v *HomeView) OnTeardown(ctx context.Context) { v.teardown(ctx) }

func homeStyle(base chart.Style) chart.Style {
	base.Title = "Medals per Country"
	base.SeriesName = "Medals"
	base.Selectable = true
	return base
}
