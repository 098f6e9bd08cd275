package distill

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/distill/internal/language"
	"github.com/mvp-joe/distill/internal/logger"
	"github.com/mvp-joe/distill/internal/token"
)

const (
	// MinWorkers is the floor of the pool size.
	MinWorkers = 1
	// MaxWorkers is the hard ceiling; more buys oversubscription, not speed.
	MaxWorkers = 16
)

// ErrDispatcherFatal indicates the worker pool itself could not start.
// This is the only dispatch failure that aborts a run.
var ErrDispatcherFatal = errors.New("dispatcher could not start")

// ClampWorkerCount constrains a configured worker count to [MinWorkers,
// MaxWorkers]. Out-of-range values are clamped, never rejected.
func ClampWorkerCount(n int) int {
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// Dispatcher fans files out across a fixed pool of workers. Each pool
// member is one execution context: it builds its own language registry and
// token counter, initializes the registry once, and amortizes both across
// every file it pulls. Results are correlated by file path, never by
// completion order.
type Dispatcher struct {
	workers     int
	opts        language.ProcessingOptions
	progress    ProgressReporter
	newRegistry func() *language.Registry
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithProgress attaches a progress reporter.
func WithProgress(p ProgressReporter) DispatcherOption {
	return func(d *Dispatcher) {
		if p != nil {
			d.progress = p
		}
	}
}

// WithRegistryFactory overrides how each execution context builds its
// language registry. Mainly for tests.
func WithRegistryFactory(f func() *language.Registry) DispatcherOption {
	return func(d *Dispatcher) {
		if f != nil {
			d.newRegistry = f
		}
	}
}

// NewDispatcher creates a dispatcher with the worker count clamped to the
// allowed range.
func NewDispatcher(workers int, opts language.ProcessingOptions, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		workers:     ClampWorkerCount(workers),
		opts:        opts,
		progress:    NoOpProgressReporter{},
		newRegistry: language.NewRegistry,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// Workers returns the effective pool size.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// Run processes all files and returns records keyed by file path. The
// runID tags logs and progress callbacks for this run.
//
// Backpressure comes from the unbuffered job channel: with K workers, at
// most K files are in flight and the rest wait for a free slot. On
// cancellation, submission stops, in-flight files drain, and the partial
// record set is returned alongside the context error. Partial batches
// remain aggregable.
func (d *Dispatcher) Run(ctx context.Context, runID string, files []FileInput) (map[string]Record, error) {
	if d.newRegistry == nil {
		return nil, fmt.Errorf("%w: no registry factory", ErrDispatcherFatal)
	}

	d.progress.OnStart(runID, len(files))
	logger.Debug("dispatch starting", "run", runID, "files", len(files), "workers", d.workers)

	jobs := make(chan FileInput)
	results := make(chan Record, d.workers)

	var g errgroup.Group
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			registry := d.newRegistry()
			init := registry.InitializeAll()
			for lang, err := range init.Failed {
				logger.Warn("language disabled for this run", "run", runID, "language", lang, "error", err)
			}

			worker := NewWorker(registry, token.NewCounter(), d.opts)
			for file := range jobs {
				rec := d.processOne(ctx, worker, file)
				results <- rec
				d.progress.OnFileProcessed(file.Path)
			}
			return nil
		})
	}

	// Submission: stops early on cancellation; workers drain what they hold.
	submitErr := make(chan error, 1)
	go func() {
		defer close(jobs)
		for _, file := range files {
			select {
			case jobs <- file:
			case <-ctx.Done():
				submitErr <- ctx.Err()
				return
			}
		}
		submitErr <- nil
	}()

	go func() {
		// Workers never return errors; crashes become per-file records.
		_ = g.Wait()
		close(results)
	}()

	records := make(map[string]Record, len(files))
	for rec := range results {
		records[rec.FilePath] = rec
	}

	err := <-submitErr
	d.progress.OnComplete(len(records))
	logger.Debug("dispatch finished", "run", runID, "records", len(records))

	return records, err
}

// processOne guards against a worker crashing outside the extractor
// boundary: the file it held becomes an error record, not a dead pool slot.
func (d *Dispatcher) processOne(ctx context.Context, worker *Worker, file FileInput) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = Record{
				FilePath: file.Path,
				Exports:  []Export{},
				Imports:  []string{},
				Error:    fmt.Sprintf("worker crashed: %v", r),
			}
		}
	}()

	return worker.Process(ctx, file)
}
