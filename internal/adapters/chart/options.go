package chart

import (
	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithRenderer sets the renderer used to create and dispose charts.
func WithRenderer(r Renderer) Option {
	return func(m *Manager) {
		if r != nil {
			m.renderer = r
		}
	}
}

// WithSelector sets where resolved selections are forwarded.
func WithSelector(s Selector) Option {
	return func(m *Manager) {
		if s != nil {
			m.selector = s
		}
	}
}

// WithLogger sets the manager logger.
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}
