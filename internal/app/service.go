// Package service composes the dashboard: it fetches the records, derives
// the numbers, and keeps the charts on the named surfaces up to date.
package service

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/podium/internal/adapters/chart"
	"github.com/okian/podium/internal/adapters/chart/gochart"
	"github.com/okian/podium/internal/adapters/dataset"
	"github.com/okian/podium/internal/adapters/surface"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/navigation"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

var tracer = otel.Tracer("podium.app")

// recordError marks span as failed.
func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Accessor supplies the raw record set.
type Accessor interface {
	FetchAll(ctx context.Context) ([]model.Record, error)
	FetchByName(ctx context.Context, name string) (model.Record, bool, error)
}

// Service implements the dependencies required by the HTTP API and the CLI.
type Service struct {
	mu sync.RWMutex

	accessor Accessor
	renderer chart.Renderer
	board    *surface.Board
	charts   *chart.Manager
	journal  *navigation.Journal

	home    *HomeView
	country *CountryView

	style       chart.Style
	journalSize int

	started bool
	logger  logger.Logger
}

// New constructs a Service. Components are wired immediately; Start only
// warms the dataset.
func New(opts ...Option) *Service {
	s := &Service{
		journalSize: 32,
		style:       chart.Style{Palette: chart.DefaultPalette},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.accessor == nil {
		s.accessor = dataset.New(dataset.WithLogger(s.logger.Named("dataset")))
	}
	if s.renderer == nil {
		s.renderer = gochart.New(gochart.WithSize(s.style.Width, s.style.Height))
	}

	s.board = surface.NewBoard(surface.DashboardPie, surface.CountryChart)
	s.journal = navigation.NewJournal(
		navigation.WithSize(s.journalSize),
		navigation.WithLogger(s.logger.Named("navigation")),
	)
	s.charts = chart.NewManager(
		chart.WithRenderer(s.renderer),
		chart.WithSelector(navigation.NewBridge(s.journal)),
		chart.WithLogger(s.logger.Named("chart")),
	)
	s.home = newHomeView(
		newLifecycle("home", surface.DashboardPie, s.board, s.charts, s.logger),
		s.accessor, homeStyle(s.style))
	s.country = newCountryView(
		newLifecycle("country", surface.CountryChart, s.board, s.charts, s.logger),
		s.accessor, countryStyle(s.style))
	return s
}

// Start warms the dataset. A fetch failure is logged, not returned: pages
// report it to users on every request until the source recovers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting dashboard service...")
	records, err := s.accessor.FetchAll(ctx)
	if err != nil {
		s.logger.Warn(ctx, "dataset unavailable at startup", logger.Error(err))
	} else {
		s.logger.Info(ctx, "dataset loaded", logger.Int("countries", len(records)))
	}

	s.started = true
	s.logger.Info(ctx, "dashboard service started", logger.Any("surfaces", s.board.IDs()))
	return nil
}

// Stop tears the views down, which cancels in-flight fetches and destroys
// every live chart.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping dashboard service...")
	s.home.OnTeardown(ctx)
	s.country.OnTeardown(ctx)
	s.charts.Close(ctx)

	s.started = false
	s.logger.Info(ctx, "dashboard service stopped")
}

// Home loads the dashboard.
func (s *Service) Home(ctx context.Context) (HomePage, error) {
	return s.home.Load(ctx)
}

// Country loads the page of the exactly named country.
func (s *Service) Country(ctx context.Context, name string) (CountryPage, error) {
	return s.country.Load(ctx, name)
}

// HomeView exposes the dashboard view and its lifecycle hooks.
func (s *Service) HomeView() *HomeView { return s.home }

// CountryView exposes the country view and its lifecycle hooks.
func (s *Service) CountryView() *CountryView { return s.country }

// Select maps a click on a surface's chart to a navigation intent.
func (s *Service) Select(ctx context.Context, surfaceID string, index int) (navigation.Intent, error) {
	return s.charts.Select(ctx, surfaceID, index)
}

// Surface returns what is currently drawn on a surface. ok is false when
// the surface is unknown or empty.
func (s *Service) Surface(id string) (surface.Content, bool) {
	sf, ok := s.board.Locate(id)
	if !ok || sf.Empty() {
		return surface.Content{}, false
	}
	return sf.Content(), true
}

// RecentIntents returns the latest navigation intents, oldest first.
func (s *Service) RecentIntents() []navigation.Intent {
	return s.journal.Recent()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bound := make([]string, 0, 2)
	for _, id := range s.board.IDs() {
		if _, ok := s.charts.Bound(id); ok {
			bound = append(bound, id)
		}
	}
	recent := s.journal.Recent()
	paths := make([]string, len(recent))
	for i, in := range recent {
		paths[i] = in.Path()
	}

	live := s.charts.Live()
	metrics.UpdateLiveHandles(live)

	return map[string]interface{}{
		"started":       s.started,
		"surfaces":      s.board.IDs(),
		"boundSurfaces": bound,
		"liveHandles":   live,
		"recentIntents": paths,
	}
}
