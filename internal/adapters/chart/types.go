// Package chart owns the render handles bound to named surfaces.
package chart

import (
	"context"
	"time"

	"github.com/okian/podium/internal/domain/aggregate"
)

// Kind names a chart type.
type Kind string

// Supported chart kinds.
const (
	KindPie  Kind = "pie"
	KindLine Kind = "line"
)

// Valid reports whether the kind can be rendered.
func (k Kind) Valid() bool { return k == KindPie || k == KindLine }

// DefaultPalette is used when a Style carries no colors.
var DefaultPalette = []string{"#0b868f", "#adc3de", "#7a3c53", "#8f6263", "#ffa500", "#94819d"}

// Dataset is a chart-ready series with display labels.
type Dataset struct {
	Labels []string
	Values []float64
}

// FromSeries converts an aggregated series into a Dataset.
func FromSeries[L any](s aggregate.ChartSeries[L]) Dataset {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return Dataset{Labels: s.LabelStrings(), Values: values}
}

// Len returns the number of points.
func (d Dataset) Len() int { return len(d.Labels) }

// Total sums every value.
func (d Dataset) Total() float64 {
	var t float64
	for _, v := range d.Values {
		t += v
	}
	return t
}

// Style controls the look of a rendered chart.
type Style struct {
	Title      string
	SeriesName string
	Width      int
	Height     int
	Palette    []string
	Smooth     bool
	// Selectable charts map clicks back to their labels.
	Selectable bool
}

// Color returns the palette color for the i-th point.
func (s Style) Color(i int) string {
	p := s.Palette
	if len(p) == 0 {
		p = DefaultPalette
	}
	return p[i%len(p)]
}

// Surface is a drawable region identified by name.
type Surface interface {
	ID() string
	Draw(content []byte, mediaType string)
	Clear()
}

// RenderTarget names the surface a render goes to. A nil Surface means the
// surface could not be located.
type RenderTarget struct {
	ID      string
	Surface Surface
}

// Renderer draws charts onto surfaces and releases them.
type Renderer interface {
	Create(ctx context.Context, s Surface, kind Kind, d Dataset, style Style) error
	Dispose(ctx context.Context, s Surface)
}

// Handle describes a live chart bound to a surface. It is a snapshot; the
// manager keeps the owned resource.
type Handle struct {
	ID         string
	SurfaceID  string
	Kind       Kind
	Labels     []string
	Selectable bool
	CreatedAt  time.Time
}
