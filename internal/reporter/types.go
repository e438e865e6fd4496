// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	RunID         string
	TotalFiles    int
	FileList      []string
	MaxConcurrent int
	Backend       string
}

// ProgressSnapshot is the state of a batch after some number of outcomes.
type ProgressSnapshot struct {
	Completed   int
	Total       int
	Successful  int
	Failed      int
	Elapsed     time.Duration
	FilesPerSec float64
	LastFile    string
}

// Percent returns the completion percentage.
func (p ProgressSnapshot) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) * 100 / float64(p.Total)
}

// Done reports whether every file has an outcome.
func (p ProgressSnapshot) Done() bool {
	return p.Completed >= p.Total
}

// FailureNotice describes a single file that could not be analyzed.
type FailureNotice struct {
	FilePath string
	Message  string
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	TotalFiles           int
	Successful           int
	Failed               int
	ProcessingTime       time.Duration
	TotalDurationSeconds float64
	TotalSizeBytes       uint64
	Cancelled            bool
}
