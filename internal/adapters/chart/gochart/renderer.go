// Package gochart renders charts as SVG or PNG images with go-chart.
package gochart

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/podium/internal/adapters/chart"
)

// Image formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

const (
	defaultWidth  = 900
	defaultHeight = 360
	// headroom above the tallest point on line charts
	yHeadroom = 1.1
)

// Renderer draws pie and line charts as static images.
type Renderer struct {
	format string
	width  int
	height int
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithFormat selects svg or png output. Unknown formats are ignored.
func WithFormat(format string) Option {
	return func(r *Renderer) {
		switch f := strings.ToLower(format); f {
		case FormatSVG, FormatPNG:
			r.format = f
		}
	}
}

// WithSize sets the default canvas size used when a Style has none.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// New creates a Renderer producing SVG by default.
func New(opts ...Option) *Renderer {
	r := &Renderer{format: FormatSVG, width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MediaType is the content type of the produced images.
func (r *Renderer) MediaType() string {
	if r.format == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (r *Renderer) provider() gochart.RendererProvider {
	if r.format == FormatPNG {
		return gochart.PNG
	}
	return gochart.SVG
}

// Create renders d and draws the image onto s.
func (r *Renderer) Create(_ context.Context, s chart.Surface, kind chart.Kind, d chart.Dataset, style chart.Style) error {
	if d.Len() == 0 {
		return chart.ErrEmptyDataset
	}
	w, h := r.size(style)

	var buf bytes.Buffer
	var err error
	switch kind {
	case chart.KindPie:
		err = r.pie(&buf, d, style, w, h)
	case chart.KindLine:
		err = r.line(&buf, d, style, w, h)
	default:
		return fmt.Errorf("%w: %q", chart.ErrUnknownKind, kind)
	}
	if err != nil {
		return err
	}
	s.Draw(buf.Bytes(), r.MediaType())
	return nil
}

// Dispose clears the image from s.
func (r *Renderer) Dispose(_ context.Context, s chart.Surface) {
	s.Clear()
}

func (r *Renderer) size(style chart.Style) (int, int) {
	w, h := r.width, r.height
	if style.Width > 0 {
		w = style.Width
	}
	if style.Height > 0 {
		h = style.Height
	}
	return w, h
}

func (r *Renderer) pie(buf *bytes.Buffer, d chart.Dataset, style chart.Style, w, h int) error {
	if d.Total() <= 0 {
		return chart.ErrEmptyDataset
	}
	values := make([]gochart.Value, d.Len())
	for i := range d.Labels {
		values[i] = gochart.Value{
			Label: d.Labels[i],
			Value: d.Values[i],
			Style: gochart.Style{FillColor: color(style.Color(i)), StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		}
	}
	pie := gochart.PieChart{
		Title:  style.Title,
		Width:  w,
		Height: h,
		Values: values,
	}
	return pie.Render(r.provider(), buf)
}

func (r *Renderer) line(buf *bytes.Buffer, d chart.Dataset, style chart.Style, w, h int) error {
	n := d.Len()
	xs := make([]float64, n)
	// Blank ticks half a step outside the points give the x axis its range;
	// go-chart derives the range from the ticks, so one point alone has none.
	ticks := make([]gochart.Tick, 0, n+2)
	ticks = append(ticks, gochart.Tick{Value: -0.5})
	ymax := 0.0
	for i, label := range d.Labels {
		xs[i] = float64(i)
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: label})
		if d.Values[i] > ymax {
			ymax = d.Values[i]
		}
	}
	ticks = append(ticks, gochart.Tick{Value: float64(n) - 0.5})
	if ymax <= 0 {
		ymax = 1
	}

	col := color(style.Color(0))
	series := gochart.ContinuousSeries{
		Name:    style.SeriesName,
		XValues: xs,
		YValues: append([]float64(nil), d.Values...),
		Style: gochart.Style{
			StrokeColor: col,
			StrokeWidth: 2,
			DotColor:    col,
			DotWidth:    3,
		},
	}
	graph := gochart.Chart{
		Title:      style.Title,
		Width:      w,
		Height:     h,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		// Positions rather than label values keep the supplied order on the axis.
		XAxis:  gochart.XAxis{Ticks: ticks},
		YAxis:  gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: ymax * yHeadroom}},
		Series: []gochart.Series{series},
	}
	if style.SeriesName != "" {
		graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	}
	return graph.Render(r.provider(), buf)
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
