package service

import (
	"context"
	"sync"

	"github.com/okian/podium/internal/adapters/chart"
	"github.com/okian/podium/internal/adapters/surface"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// lifecycle owns one surface and the cancellation token of the loads
// feeding it. Teardown bumps the generation, cancels every outstanding
// fetch and destroys the bound chart; a load that started under an older
// generation is discarded.
type lifecycle struct {
	name      string
	surfaceID string
	board     *surface.Board
	charts    *chart.Manager
	logger    logger.Logger

	mu         sync.Mutex
	generation uint64
	life       context.Context
	kill       context.CancelFunc
}

func newLifecycle(name, surfaceID string, board *surface.Board, charts *chart.Manager, l logger.Logger) *lifecycle {
	lc := &lifecycle{
		name:      name,
		surfaceID: surfaceID,
		board:     board,
		charts:    charts,
		logger:    l,
	}
	lc.life, lc.kill = context.WithCancel(context.Background())
	return lc
}

// begin derives a fetch context that is cancelled either by the caller or
// by teardown, and returns the token the result must still match.
func (lc *lifecycle) begin(ctx context.Context) (context.Context, context.CancelFunc, uint64) {
	lc.mu.Lock()
	token, life := lc.generation, lc.life
	lc.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}, token
}

// apply runs fn while the token is current. Teardown cannot interleave
// with fn, so nothing is drawn after a teardown completes.
func (lc *lifecycle) apply(ctx context.Context, token uint64, fn func() error) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if token != lc.generation {
		metrics.RecordStaleResult(lc.name)
		lc.logger.Debug(ctx, "discarding late result", logger.String("view", lc.name))
		return ErrViewClosed
	}
	return fn()
}

// stale reports whether a teardown happened since token was issued.
func (lc *lifecycle) stale(token uint64) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if token == lc.generation {
		return false
	}
	metrics.RecordStaleResult(lc.name)
	return true
}

// teardown cancels outstanding fetches and destroys the surface's chart.
func (lc *lifecycle) teardown(ctx context.Context) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.generation++
	lc.kill()
	lc.life, lc.kill = context.WithCancel(context.Background())
	lc.charts.Destroy(ctx, lc.surfaceID)
	lc.logger.Debug(ctx, "view torn down", logger.String("view", lc.name))
}

// render draws d and captures what ended up on the surface. A chart
// failure is reported through the returned note, never as an error.
func (lc *lifecycle) render(ctx context.Context, d chart.Dataset, kind chart.Kind, style chart.Style) (Chart, error) {
	c := Chart{SurfaceID: lc.surfaceID}
	h, err := lc.charts.Render(ctx, lc.board.Target(lc.surfaceID), d, kind, style)
	if err != nil {
		c.Note = chartUnavailable
		return c, err
	}
	c.Handle = &h
	if s, ok := lc.board.Locate(lc.surfaceID); ok {
		c.Content = s.Content()
	}
	return c, nil
}

const chartUnavailable = "chart unavailable"

// Chart is the outcome of rendering a view's chart.
type Chart struct {
	SurfaceID string
	Handle    *chart.Handle
	Content   surface.Content
	// Note is shown in place of the chart when rendering failed.
	Note string
}

// Available reports whether the chart was drawn.
func (c Chart) Available() bool { return c.Handle != nil && len(c.Content.Bytes) > 0 }
