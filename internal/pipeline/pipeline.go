package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/hurdat2-etl/internal/domain"
	"github.com/couchcryptid/hurdat2-etl/internal/observability"
)

// Extractor produces the raw observations of one source dataset.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.RawObservation, error)
}

// Transformer normalizes one raw observation into a row.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawObservation) (domain.Observation, error)
}

// Loader writes the complete ordered row buffer to one destination.
type Loader interface {
	Name() string
	LoadBatch(ctx context.Context, rows []domain.Observation) error
}

// RowFilter decides whether a normalized row reaches the sinks.
type RowFilter interface {
	Match(obs domain.Observation) (bool, error)
}

// Pipeline orchestrates the single-pass extract-transform-load run.
// Extractors run in order and their rows are concatenated, so a two-basin
// conversion preserves each dataset's original row order.
type Pipeline struct {
	extractors  []Extractor
	transformer Transformer
	loaders     []Loader
	rowFilter   RowFilter // nil means no filtering
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(extractors []Extractor, t Transformer, loaders []Loader, f RowFilter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractors:  extractors,
		transformer: t,
		loaders:     loaders,
		rowFilter:   f,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once the pipeline has normalized at least one
// row, or an error describing why the run is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not normalized any rows yet")
	}
	return nil
}

// Run executes one conversion: extract every source, normalize and filter
// every row in order, then hand the complete buffer to each loader. Any
// extract, transform, or load failure aborts the run; partial output is not
// attempted.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	rows, err := p.collectRows(ctx)
	if err != nil {
		return err
	}
	p.ready.Store(true)

	for _, loader := range p.loaders {
		if err := loader.LoadBatch(ctx, rows); err != nil {
			return fmt.Errorf("load %s: %w", loader.Name(), err)
		}
		p.metrics.RowsWritten.WithLabelValues(loader.Name()).Add(float64(len(rows)))
		p.logger.Info("rows written", "sink", loader.Name(), "rows", len(rows))
	}

	p.metrics.ConversionDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("conversion complete", "rows", len(rows), "duration", time.Since(start))
	return nil
}

// collectRows extracts and normalizes every source into one ordered buffer.
func (p *Pipeline) collectRows(ctx context.Context) ([]domain.Observation, error) {
	var rows []domain.Observation

	for _, extractor := range p.extractors {
		raws, err := extractor.Extract(ctx)
		if err != nil {
			return nil, fmt.Errorf("extract: %w", err)
		}
		p.metrics.ObservationsExtracted.Add(float64(len(raws)))

		for _, raw := range raws {
			obs, err := p.transformer.Transform(ctx, raw)
			if err != nil {
				p.metrics.TransformErrors.Inc()
				return nil, fmt.Errorf("transform: %w", err)
			}
			p.metrics.ObservationsNormalized.Inc()

			if p.rowFilter != nil {
				ok, err := p.rowFilter.Match(obs)
				if err != nil {
					return nil, fmt.Errorf("filter: %w", err)
				}
				if !ok {
					p.metrics.ObservationsFiltered.Inc()
					continue
				}
			}
			rows = append(rows, obs)
		}
	}

	return rows, nil
}
