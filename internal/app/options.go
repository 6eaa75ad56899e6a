package service

import (
	"github.com/okian/podium/internal/adapters/chart"
	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAccessor sets the data accessor. The embedded dataset is used otherwise.
func WithAccessor(a Accessor) Option {
	return func(s *Service) {
		if a != nil {
			s.accessor = a
		}
	}
}

// WithRenderer sets the chart renderer. SVG via go-chart is used otherwise.
func WithRenderer(r chart.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithPalette overrides the chart colors.
func WithPalette(colors []string) Option {
	return func(s *Service) {
		if len(colors) > 0 {
			s.style.Palette = append([]string(nil), colors...)
		}
	}
}

// WithChartSize sets the rendered chart size in pixels.
func WithChartSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.style.Width, s.style.Height = width, height
		}
	}
}

// WithJournalSize bounds the number of recent navigation intents kept.
func WithJournalSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.journalSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
