package batch

import (
	"sync"
	"time"

	"github.com/five82/audioprobe/internal/probe"
)

// Counts is the aggregator state after an Add.
type Counts struct {
	Completed  int
	Successful int
	Failed     int
}

// Aggregator accumulates outcomes from concurrent probes. Add may be called
// from any goroutine; Result is called once after all Adds have returned.
type Aggregator struct {
	mu     sync.Mutex
	result BatchResult
	done   bool
}

// NewAggregator creates an aggregator for a batch of total files.
func NewAggregator(total int) *Aggregator {
	return &Aggregator{
		result: BatchResult{
			TotalFiles:      total,
			SuccessfulFiles: make([]probe.AudioInfo, 0, total),
		},
	}
}

// Add records one outcome and returns the counts including it.
func (a *Aggregator) Add(out probe.Outcome) Counts {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case out.Info != nil:
		a.result.SuccessfulFiles = append(a.result.SuccessfulFiles, *out.Info)
	case out.Failure != nil:
		a.result.Errors = append(a.result.Errors, *out.Failure)
	default:
		a.result.Errors = append(a.result.Errors, probe.ProbeFailure{Message: "empty outcome"})
	}
	return a.countsLocked()
}

// Counts returns the current counts.
func (a *Aggregator) Counts() Counts {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.countsLocked()
}

func (a *Aggregator) countsLocked() Counts {
	s, f := len(a.result.SuccessfulFiles), len(a.result.Errors)
	return Counts{Completed: s + f, Successful: s, Failed: f}
}

// MarkCancelled flags the result as interrupted.
func (a *Aggregator) MarkCancelled() {
	a.mu.Lock()
	a.result.Cancelled = true
	a.mu.Unlock()
}

// Result stamps elapsed and hands out the final result. Later calls return
// the same result without restamping it.
func (a *Aggregator) Result(elapsed time.Duration) *BatchResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.done {
		a.result.ProcessingTime = elapsed
		a.done = true
	}
	return &a.result
}
