package reporter

// Reporter defines the interface for progress reporting. The batch runner
// delivers progress and failure events from a single goroutine.
type Reporter interface {
	BatchStarted(info BatchStartInfo)
	FileProgress(progress ProgressSnapshot)
	FileFailed(notice FailureNotice)
	BatchComplete(summary BatchSummary)
	Warning(message string)
	Error(err ReporterError)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) BatchStarted(BatchStartInfo)   {}
func (NullReporter) FileProgress(ProgressSnapshot) {}
func (NullReporter) FileFailed(FailureNotice)      {}
func (NullReporter) BatchComplete(BatchSummary)    {}
func (NullReporter) Warning(string)                {}
func (NullReporter) Error(ReporterError)           {}
func (NullReporter) Verbose(string)                {}
