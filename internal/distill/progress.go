package distill

// ProgressReporter provides callbacks for reporting distillation progress.
// Implementations can display progress bars, log messages, or stay silent.
// Callbacks may be invoked from multiple worker goroutines.
type ProgressReporter interface {
	// OnStart is called once when dispatch begins.
	OnStart(runID string, totalFiles int)

	// OnFileProcessed is called after each file completes.
	OnFileProcessed(path string)

	// OnComplete is called when the run finishes, with the number of files
	// that produced records (may be short of the total on cancellation).
	OnComplete(processed int)
}

// NoOpProgressReporter is a progress reporter that does nothing. Used when
// progress reporting is disabled.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnStart(runID string, totalFiles int) {}
func (NoOpProgressReporter) OnFileProcessed(path string)          {}
func (NoOpProgressReporter) OnComplete(processed int)             {}
