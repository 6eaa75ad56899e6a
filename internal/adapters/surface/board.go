// Package surface keeps the named regions charts are drawn into.
package surface

import (
	"sort"
	"sync"

	"github.com/okian/podium/internal/adapters/chart"
)

// Well-known surface names.
const (
	DashboardPie = "DashboardPieChart"
	CountryChart = "countryChart"
)

// Content is what was last drawn on a surface.
type Content struct {
	Bytes     []byte
	MediaType string
}

// Surface is a single drawable region.
type Surface struct {
	id      string
	mu      sync.RWMutex
	content Content
}

// ID returns the surface name.
func (s *Surface) ID() string { return s.id }

// Draw replaces the surface content.
func (s *Surface) Draw(content []byte, mediaType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = Content{Bytes: content, MediaType: mediaType}
}

// Clear empties the surface.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = Content{}
}

// Content returns a copy of what is drawn.
func (s *Surface) Content() Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.content
	c.Bytes = append([]byte(nil), s.content.Bytes...)
	return c
}

// Empty reports whether nothing is drawn.
func (s *Surface) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.content.Bytes) == 0
}

// Board is the registry of surfaces available for rendering.
type Board struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
}

// NewBoard creates a board with the given surfaces registered.
func NewBoard(ids ...string) *Board {
	b := &Board{surfaces: make(map[string]*Surface)}
	b.Register(ids...)
	return b
}

// Register adds surfaces; existing ones are kept as they are.
func (b *Board) Register(ids ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range ids {
		if _, ok := b.surfaces[id]; !ok {
			b.surfaces[id] = &Surface{id: id}
		}
	}
}

// Locate finds a registered surface.
func (b *Board) Locate(id string) (*Surface, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.surfaces[id]
	return s, ok
}

// Target resolves id into a render target. The target's Surface is nil
// when the surface is not registered.
func (b *Board) Target(id string) chart.RenderTarget {
	t := chart.RenderTarget{ID: id}
	if s, ok := b.Locate(id); ok {
		t.Surface = s
	}
	return t
}

// IDs lists the registered surfaces in name order.
func (b *Board) IDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]string, 0, len(b.surfaces))
	for id := range b.surfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
