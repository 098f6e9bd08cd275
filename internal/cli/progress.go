package cli

import (
	"sync"

	"github.com/schollz/progressbar/v3"
)

// barReporter renders dispatch progress as a terminal progress bar.
// Callbacks arrive from multiple worker goroutines, hence the mutex.
type barReporter struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newBarReporter() *barReporter {
	return &barReporter{}
}

func (r *barReporter) OnStart(runID string, totalFiles int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("distilling"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *barReporter) OnFileProcessed(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

func (r *barReporter) OnComplete(processed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
