package distill

import (
	"context"

	"github.com/google/uuid"

	"github.com/mvp-joe/distill/internal/language"
)

// Distiller ties dispatch and aggregation together: one call takes the
// already-filtered (path, content) list and returns the aggregated Result.
type Distiller struct {
	dispatcher *Dispatcher
	aggregator *Aggregator
}

// NewDistiller creates a distiller with the given pool size (clamped) and
// processing options.
func NewDistiller(workers int, opts language.ProcessingOptions, options ...DispatcherOption) *Distiller {
	return &Distiller{
		dispatcher: NewDispatcher(workers, opts, options...),
		aggregator: NewAggregator(),
	}
}

// Distill runs the full pipeline. On cancellation the records gathered so
// far are still aggregated and returned together with the context error,
// so callers can render partial coverage instead of losing the run.
func (d *Distiller) Distill(ctx context.Context, files []FileInput) (*Result, error) {
	runID := uuid.NewString()

	records, err := d.dispatcher.Run(ctx, runID, files)
	if records == nil && err != nil {
		return nil, err
	}

	result := d.aggregator.Aggregate(records)
	result.RunID = runID
	return result, err
}
