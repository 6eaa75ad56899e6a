// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and PODIUM_* env vars.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Chart output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatHTML = "html"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath points at a JSON dataset on disk. Empty uses the embedded one.
	DatasetPath string `koanf:"dataset_path"`

	// DatasetURL fetches the dataset over HTTP. Takes precedence over DatasetPath.
	DatasetURL string `koanf:"dataset_url"`

	// FetchTimeoutMS bounds a single dataset fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// ChartFormat selects the renderer: svg, png or html.
	ChartFormat string `koanf:"chart_format"`

	// ChartWidth and ChartHeight size the rendered charts in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// Palette overrides the chart colors. Empty keeps the built-in palette.
	Palette []string `koanf:"palette"`

	// JournalSize bounds the number of navigation intents kept for /stats.
	JournalSize int `koanf:"journal_size"`

	// Metrics names and labels the exported Prometheus series.
	Metrics MetricsConfig `koanf:"metrics"`
}

// MetricsConfig shapes the /metrics output. Empty fields keep the
// podium_dashboard_* defaults.
type MetricsConfig struct {
	Namespace string            `koanf:"namespace"`
	Subsystem string            `koanf:"subsystem"`
	Prefix    string            `koanf:"prefix"`
	Labels    map[string]string `koanf:"labels"`
	// BucketsMS overrides the latency histogram buckets, in milliseconds.
	BucketsMS []float64 `koanf:"buckets_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		FetchTimeoutMS: 5_000,
		ChartFormat:    FormatSVG,
		ChartWidth:     900,
		ChartHeight:    360,
		JournalSize:    32,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.ChartFormat) {
	case FormatSVG, FormatPNG, FormatHTML:
	default:
		return fmt.Errorf("%w: chart_format %q (want svg, png or html)", ErrInvalidConfig, c.ChartFormat)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q (want text or json)", ErrInvalidConfig, c.LogFormat)
	}
	if c.FetchTimeoutMS <= 0 {
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("%w: chart size %dx%d", ErrInvalidConfig, c.ChartWidth, c.ChartHeight)
	}
	if c.JournalSize <= 0 {
		return fmt.Errorf("%w: journal_size must be positive", ErrInvalidConfig)
	}
	for i := 1; i < len(c.Metrics.BucketsMS); i++ {
		if c.Metrics.BucketsMS[i] <= c.Metrics.BucketsMS[i-1] {
			return fmt.Errorf("%w: metrics.buckets_ms must be strictly increasing", ErrInvalidConfig)
		}
	}
	return nil
}
