package chart

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/podium/internal/domain/navigation"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Selector receives the label a selection resolved to.
type Selector interface {
	OnSelect(ctx context.Context, label string) (navigation.Intent, error)
}

// binding is the owned resource behind a Handle.
type binding struct {
	handle  Handle
	surface Surface
}

// Manager keeps at most one live chart per surface. Every operation holds
// the lock, so a replacement is never visible next to the chart it replaces.
type Manager struct {
	mu       sync.Mutex
	bound    map[string]*binding
	renderer Renderer
	selector Selector
	logger   logger.Logger
}

// NewManager creates a Manager. A renderer must be supplied with WithRenderer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		bound:    make(map[string]*binding),
		selector: navigation.NewBridge(nil),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Render draws d onto the target surface, destroying whatever was bound to
// it first. A missing surface leaves the surface empty and returns
// ErrSurfaceNotFound. Kind and dataset shape are checked before anything is
// destroyed.
func (m *Manager) Render(ctx context.Context, target RenderTarget, d Dataset, kind Kind, style Style) (Handle, error) {
	if !kind.Valid() {
		return Handle{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if len(d.Labels) != len(d.Values) {
		return Handle{}, fmt.Errorf("%w: %d labels for %d values", ErrInvalidDataset, len(d.Labels), len(d.Values))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.destroyLocked(ctx, target.ID)

	if target.Surface == nil {
		metrics.RecordSurfaceNotFound(target.ID)
		m.logger.Warn(ctx, "surface not found; render skipped", logger.String("surface", target.ID))
		return Handle{}, fmt.Errorf("%w: %s", ErrSurfaceNotFound, target.ID)
	}
	if m.renderer == nil {
		return Handle{}, fmt.Errorf("%w: no renderer configured", ErrRender)
	}

	start := time.Now()
	if err := m.renderer.Create(ctx, target.Surface, kind, d, style); err != nil {
		metrics.RecordChartRenderError(string(kind))
		metrics.RecordErrorByComponent("chart", "render")
		m.logger.Error(ctx, "chart render failed", logger.String("surface", target.ID), logger.String("kind", string(kind)), logger.Error(err))
		return Handle{}, fmt.Errorf("%w: %w", ErrRender, err)
	}
	metrics.RecordChartRenderLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordChartRender(string(kind))

	labels := make([]string, len(d.Labels))
	copy(labels, d.Labels)
	b := &binding{
		handle: Handle{
			ID:         uuid.NewString(),
			SurfaceID:  target.ID,
			Kind:       kind,
			Labels:     labels,
			Selectable: style.Selectable,
			CreatedAt:  time.Now(),
		},
		surface: target.Surface,
	}
	m.bound[target.ID] = b
	metrics.UpdateLiveHandles(len(m.bound))

	m.logger.Debug(ctx, "chart bound",
		logger.String("surface", target.ID),
		logger.String("handle", b.handle.ID),
		logger.String("kind", string(kind)),
		logger.Int("points", d.Len()),
	)
	return b.snapshot(), nil
}

// Destroy releases the chart bound to surfaceID. Destroying an empty
// surface is a no-op.
func (m *Manager) Destroy(ctx context.Context, surfaceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyLocked(ctx, surfaceID)
}

func (m *Manager) destroyLocked(ctx context.Context, surfaceID string) {
	b, ok := m.bound[surfaceID]
	if !ok {
		return
	}
	delete(m.bound, surfaceID)
	if m.renderer != nil {
		m.renderer.Dispose(ctx, b.surface)
	}
	metrics.RecordChartDestroy()
	metrics.UpdateLiveHandles(len(m.bound))
	m.logger.Debug(ctx, "chart destroyed", logger.String("surface", surfaceID), logger.String("handle", b.handle.ID))
}

// Select maps a clicked element index on surfaceID to its label and forwards
// it to the selector. Out-of-range indexes, empty surfaces and charts that
// are not selectable yield ErrInvalidSelection and no intent.
func (m *Manager) Select(ctx context.Context, surfaceID string, index int) (navigation.Intent, error) {
	m.mu.Lock()
	b, ok := m.bound[surfaceID]
	var label string
	valid := ok && b.handle.Selectable && index >= 0 && index < len(b.handle.Labels)
	if valid {
		label = b.handle.Labels[index]
	}
	m.mu.Unlock()

	if !valid {
		metrics.RecordInvalidSelection(surfaceID)
		m.logger.Debug(ctx, "selection ignored", logger.String("surface", surfaceID), logger.Int("index", index))
		return navigation.Intent{}, fmt.Errorf("%w: index %d on %s", ErrInvalidSelection, index, surfaceID)
	}
	metrics.RecordSelection(surfaceID)
	return m.selector.OnSelect(ctx, label)
}

// Bound returns the handle bound to surfaceID, if any.
func (m *Manager) Bound(surfaceID string) (Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bound[surfaceID]
	if !ok {
		return Handle{}, false
	}
	return b.snapshot(), true
}

// Live returns the number of bound surfaces.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bound)
}

// Close destroys every bound chart.
func (m *Manager) Close(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.bound))
	for id := range m.bound {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		m.destroyLocked(ctx, id)
	}
}

func (b *binding) snapshot() Handle {
	h := b.handle
	h.Labels = append([]string(nil), b.handle.Labels...)
	return h
}
