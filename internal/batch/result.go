// Package batch runs gated probes over a set of files and aggregates their
// outcomes into a single BatchResult.
package batch

import (
	"slices"
	"strings"
	"time"

	"github.com/five82/audioprobe/internal/probe"
)

// BatchResult is the aggregate of one run. Every dispatched path appears
// exactly once in either SuccessfulFiles or Errors.
type BatchResult struct {
	TotalFiles      int
	SuccessfulFiles []probe.AudioInfo
	Errors          []probe.ProbeFailure
	ProcessingTime  time.Duration
	// Cancelled is set when the run was interrupted before every file was
	// dispatched.
	Cancelled bool
}

// Successful returns the number of files analyzed successfully.
func (r *BatchResult) Successful() int {
	return len(r.SuccessfulFiles)
}

// Failed returns the number of files that could not be analyzed.
func (r *BatchResult) Failed() int {
	return len(r.Errors)
}

// TotalDurationSeconds sums the known durations of successful files.
func (r *BatchResult) TotalDurationSeconds() float64 {
	var total float64
	for i := range r.SuccessfulFiles {
		total += r.SuccessfulFiles[i].Duration()
	}
	return total
}

// TotalSizeBytes sums the sizes of successful files.
func (r *BatchResult) TotalSizeBytes() uint64 {
	var total uint64
	for i := range r.SuccessfulFiles {
		total += r.SuccessfulFiles[i].FileSize
	}
	return total
}

// ErrorMessages returns the failure messages in order.
func (r *BatchResult) ErrorMessages() []string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return msgs
}

// SortByPath orders both sequences by file path. The sort is stable so
// duplicate paths keep their completion order.
func (r *BatchResult) SortByPath() {
	slices.SortStableFunc(r.SuccessfulFiles, func(a, b probe.AudioInfo) int {
		return strings.Compare(a.FilePath, b.FilePath)
	})
	slices.SortStableFunc(r.Errors, func(a, b probe.ProbeFailure) int {
		return strings.Compare(a.FilePath, b.FilePath)
	})
}
