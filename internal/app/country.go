package service

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/okian/podium/internal/adapters/chart"
	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// CountryPage holds one country's statistics and its medals-per-year chart.
type CountryPage struct {
	Country  string
	Stats    aggregate.CountryStats
	Medals   aggregate.ChartSeries[int]
	Athletes aggregate.ChartSeries[int]
	Chart    Chart
}

// YearCount is one row of a per-year table.
type YearCount struct {
	Year  int
	Count int
}

// AthletesPerYear lists the athletes sent to each participation in the
// order the participations were supplied.
func (p CountryPage) AthletesPerYear() []YearCount {
	rows := make([]YearCount, p.Athletes.Len())
	for i, year := range p.Athletes.Labels {
		rows[i] = YearCount{Year: year, Count: int(p.Athletes.Values[i])}
	}
	return rows
}

// CountryView renders a country's line chart onto the countryChart surface.
type CountryView struct {
	*lifecycle
	accessor Accessor
	style    chart.Style
}

func newCountryView(lc *lifecycle, accessor Accessor, style chart.Style) *CountryView {
	return &CountryView{lifecycle: lc, accessor: accessor, style: style}
}

// Load fetches the named country. Names match exactly.
func (v *CountryView) Load(ctx context.Context, name string) (CountryPage, error) {
	ctx, span := tracer.Start(ctx, "country.Load")
	defer span.End()
	span.SetAttributes(attribute.String("country.name", name))

	if strings.TrimSpace(name) == "" {
		return CountryPage{}, ErrEmptyName
	}

	fetchCtx, cancel, token := v.begin(ctx)
	defer cancel()

	record, found, err := v.accessor.FetchByName(fetchCtx, name)
	if err != nil {
		recordError(span, err)
		if v.stale(token) {
			return CountryPage{}, ErrViewClosed
		}
		return CountryPage{}, err
	}

	var page CountryPage
	err = v.apply(ctx, token, func() error {
		if !found {
			// Nothing from a previous country may linger on the surface.
			v.charts.Destroy(ctx, v.surfaceID)
			return fmt.Errorf("%w: %s", ErrCountryNotFound, name)
		}
		page = v.onDataChanged(ctx, record)
		return nil
	})
	return page, err
}

// OnDataChanged recomputes the country's numbers and redraws its chart.
func (v *CountryView) OnDataChanged(ctx context.Context, record model.Record) CountryPage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.onDataChanged(ctx, record)
}

func (v *CountryView) onDataChanged(ctx context.Context, record model.Record) CountryPage {
	page := CountryPage{
		Country:  record.Country,
		Stats:    aggregate.CountryStatsOf(record),
		Medals:   aggregate.YearlyMedalSeries(record),
		Athletes: aggregate.YearlyAthleteSeries(record),
	}
	style := v.style
	style.Title = record.Country
	c, err := v.render(ctx, chart.FromSeries(page.Medals), chart.KindLine, style)
	if err != nil {
		v.logger.Warn(ctx, "country chart unavailable",
			logger.String("country", record.Country),
			logger.Error(err))
	}
	page.Chart = c
	return page
}

// OnTeardown cancels in-flight loads and releases the line chart.
func (v *CountryView) OnTeardown(ctx context.Context) { v.teardown(ctx) }

func countryStyle(base chart.Style) chart.Style {
	base.SeriesName = "Medals per year"
	base.Smooth = true
	base.Selectable = false
	return base
}
