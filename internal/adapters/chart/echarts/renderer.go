// Package echarts renders charts as interactive HTML documents.
package echarts

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/event"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/okian/podium/internal/adapters/chart"
)

// MediaType is the content type of the produced documents.
const MediaType = "text/html; charset=utf-8"

const (
	defaultWidth  = 900
	defaultHeight = 360
)

// Renderer draws pie and line charts as go-echarts pages.
type Renderer struct {
	width  int
	height int
}

// New creates a Renderer with the given default canvas size; zero values
// keep the defaults.
func New(width, height int) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	if width > 0 && height > 0 {
		r.width, r.height = width, height
	}
	return r
}

// Create renders d and draws the page onto s.
func (r *Renderer) Create(_ context.Context, s chart.Surface, kind chart.Kind, d chart.Dataset, style chart.Style) error {
	if d.Len() == 0 {
		return chart.ErrEmptyDataset
	}
	init := r.initialization(s.ID(), style)

	var buf bytes.Buffer
	switch kind {
	case chart.KindPie:
		if err := pie(init, d, style).Render(&buf); err != nil {
			return err
		}
	case chart.KindLine:
		if err := line(init, d, style).Render(&buf); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", chart.ErrUnknownKind, kind)
	}
	s.Draw(buf.Bytes(), MediaType)
	return nil
}

// Dispose clears the page from s.
func (r *Renderer) Dispose(_ context.Context, s chart.Surface) {
	s.Clear()
}

func (r *Renderer) initialization(id string, style chart.Style) opts.Initialization {
	w, h := r.width, r.height
	if style.Width > 0 {
		w = style.Width
	}
	if style.Height > 0 {
		h = style.Height
	}
	return opts.Initialization{
		PageTitle: style.Title,
		ChartID:   id,
		Width:     strconv.Itoa(w) + "px",
		Height:    strconv.Itoa(h) + "px",
	}
}

func pie(init opts.Initialization, d chart.Dataset, style chart.Style) *charts.Pie {
	data := make([]opts.PieData, d.Len())
	for i := range d.Labels {
		data[i] = opts.PieData{
			Name:      d.Labels[i],
			Value:     d.Values[i],
			ItemStyle: &opts.ItemStyle{Color: style.Color(i)},
		}
	}
	p := charts.NewPie()
	p.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: style.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "vertical", Left: "left", Top: "middle"}),
	)
	if style.Selectable {
		p.SetGlobalOptions(charts.WithEventListeners(event.Listener{
			EventName: "click",
			Handler:   opts.FuncOpts(selectHandler(init.ChartID)),
		}))
	}
	p.AddSeries(seriesName(style), data)
	return p
}

// selectHandler sends the clicked segment index to the surface's select
// route, navigating the top-level page the chart is embedded in.
func selectHandler(surfaceID string) string {
	target := strconv.Quote("/surfaces/" + url.PathEscape(surfaceID) + "/select?index=")
	return "function (params) { window.top.location.href = " + target + " + params.dataIndex; }"
}

func line(init opts.Initialization, d chart.Dataset, style chart.Style) *charts.Line {
	data := make([]opts.LineData, d.Len())
	for i, v := range d.Values {
		data[i] = opts.LineData{Value: v}
	}
	l := charts.NewLine()
	l.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: style.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
	)
	l.SetXAxis(d.Labels).AddSeries(seriesName(style), data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(style.Smooth)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: style.Color(0)}),
	)
	return l
}

func seriesName(style chart.Style) string {
	if style.SeriesName != "" {
		return style.SeriesName
	}
	return "Medals"
}
