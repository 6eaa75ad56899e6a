// Package dataset supplies the raw participation records.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

var tracer = otel.Tracer("podium.dataset")

// Accessor loads the record set from its Source on every call.
type Accessor struct {
	source  Source
	timeout time.Duration
	logger  logger.Logger
}

// New creates an Accessor. Without options it serves the embedded dataset.
func New(opts ...Option) *Accessor {
	a := &Accessor{
		source: Embedded{},
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Source returns the configured source.
func (a *Accessor) Source() Source { return a.source }

// FetchAll returns the full record set. Any failure wraps ErrFetch.
func (a *Accessor) FetchAll(ctx context.Context) ([]model.Record, error) {
	ctx, span := tracer.Start(ctx, "dataset.FetchAll")
	defer span.End()
	span.SetAttributes(attribute.String("dataset.source", a.source.Name()))

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	metrics.RecordDatasetFetch()
	records, err := a.load(ctx)
	metrics.RecordDatasetFetchLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordDatasetFetchError()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Warn(ctx, "dataset fetch failed",
			logger.String("source", a.source.Name()),
			logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	metrics.UpdateDatasetCountries(len(records))
	span.SetAttributes(attribute.Int("dataset.countries", len(records)))
	a.logger.Debug(ctx, "dataset fetched",
		logger.String("source", a.source.Name()),
		logger.Int("countries", len(records)),
		logger.Duration("took", time.Since(start)))
	return records, nil
}

// FetchByName returns the record whose country equals name exactly.
func (a *Accessor) FetchByName(ctx context.Context, name string) (model.Record, bool, error) {
	records, err := a.FetchAll(ctx)
	if err != nil {
		return model.Record{}, false, err
	}
	r, ok := aggregate.FindByCountryName(records, name)
	return r, ok, nil
}

func (a *Accessor) load(ctx context.Context) ([]model.Record, error) {
	rc, err := a.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var records []model.Record
	if err := json.NewDecoder(rc).Decode(&records); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := model.Validate(records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}
