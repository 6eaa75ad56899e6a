package navigation

import (
	"context"
	"sync"

	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

const defaultJournalSize = 32

// Journal is a Router that keeps the most recent intents.
type Journal struct {
	mu      sync.Mutex
	size    int
	entries []Intent
	logger  logger.Logger
}

// Option applies a configuration option to the Journal.
type Option func(*Journal)

// WithSize bounds how many intents are kept.
func WithSize(size int) Option {
	return func(j *Journal) {
		if size > 0 {
			j.size = size
		}
	}
}

// WithLogger sets the journal logger.
func WithLogger(l logger.Logger) Option {
	return func(j *Journal) {
		if l != nil {
			j.logger = l
		}
	}
}

// NewJournal creates an empty journal.
func NewJournal(opts ...Option) *Journal {
	j := &Journal{size: defaultJournalSize}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Navigate records the intent, dropping the oldest entry when full.
func (j *Journal) Navigate(ctx context.Context, route, param string) error {
	j.mu.Lock()
	j.entries = append(j.entries, Intent{Route: route, Param: param})
	if len(j.entries) > j.size {
		j.entries = j.entries[len(j.entries)-j.size:]
	}
	j.mu.Unlock()

	metrics.RecordNavigationIntent(route)
	if j.logger != nil {
		j.logger.Debug(ctx, "navigation intent", logger.String("route", route), logger.String("param", param))
	}
	return nil
}

// Recent returns a copy of the recorded intents, oldest first.
func (j *Journal) Recent() []Intent {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Intent, len(j.entries))
	copy(out, j.entries)
	return out
}
