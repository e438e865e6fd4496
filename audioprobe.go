// Package audioprobe provides a Go library for batch analysis of media files.
//
// An Analyzer discovers media files under the given paths, probes each one
// with an external metadata tool (ffprobe or MediaInfo) under a bounded
// level of concurrency, and aggregates the outcomes into a BatchResult that
// can be rendered as text or JSON.
//
// Basic usage:
//
//	analyzer, err := audioprobe.New(
//	    audioprobe.WithMaxConcurrent(16),
//	    audioprobe.WithRecursive(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := analyzer.Analyze(ctx, []string{"music/"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, _ := audioprobe.Render(result, audioprobe.FormatJSON)
//	os.Stdout.Write(out)
package audioprobe

import (
	"context"
	"time"

	"github.com/five82/audioprobe/internal/backend"
	"github.com/five82/audioprobe/internal/batch"
	"github.com/five82/audioprobe/internal/config"
	"github.com/five82/audioprobe/internal/discovery"
	coreerrors "github.com/five82/audioprobe/internal/errors"
	"github.com/five82/audioprobe/internal/logging"
	"github.com/five82/audioprobe/internal/probe"
	"github.com/five82/audioprobe/internal/report"
	"github.com/five82/audioprobe/internal/reporter"
)

// Re-exported types.
type (
	AudioInfo    = probe.AudioInfo
	ProbeFailure = probe.ProbeFailure
	Backend      = probe.Backend
	BatchResult  = batch.BatchResult
	Reporter     = reporter.Reporter
	Format       = report.Format
)

const (
	FormatText = report.FormatText
	FormatJSON = report.FormatJSON

	DefaultMaxConcurrent = config.DefaultMaxConcurrent
)

// ParseFormat converts "text" or "json" (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	return report.ParseFormat(s)
}

// Render produces the report for result in the given format.
func Render(result *BatchResult, format Format) ([]byte, error) {
	return report.Render(result, format)
}

// Analyzer is the main entry point for batch analysis.
type Analyzer struct {
	config   *config.Config
	backend  Backend
	reporter Reporter
	logger   *logging.Logger
}

// Option configures the analyzer.
type Option func(*Analyzer)

// New creates a new Analyzer with the given options.
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{config: config.NewConfig()}

	for _, opt := range opts {
		opt(a)
	}

	if err := a.config.Validate(); err != nil {
		return nil, coreerrors.NewConfigError("invalid configuration", err)
	}

	if a.backend == nil {
		b, err := backend.FromConfig(a.config)
		if err != nil {
			return nil, err
		}
		a.backend = b
	}

	return a, nil
}

// WithMaxConcurrent sets how many files are probed at once. Values outside
// [1, 2000] are clamped.
func WithMaxConcurrent(n int) Option {
	return func(a *Analyzer) {
		a.config.MaxConcurrent = n
	}
}

// WithRecursive makes directory inputs include their full subtree.
func WithRecursive(recursive bool) Option {
	return func(a *Analyzer) {
		a.config.Recursive = recursive
	}
}

// WithBackend selects the metadata tool by name ("ffprobe" or "mediainfo")
// and optionally the binary to run.
func WithBackend(name, binary string) Option {
	return func(a *Analyzer) {
		a.config.Backend = name
		if binary == "" {
			return
		}
		if name == config.BackendMediaInfo {
			a.config.MediaInfoPath = binary
		} else {
			a.config.FFprobePath = binary
		}
	}
}

// WithProbeBackend uses a custom Backend instead of an external tool.
func WithProbeBackend(b Backend) Option {
	return func(a *Analyzer) {
		a.backend = b
	}
}

// WithTimeout bounds each individual probe. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		a.config.ProbeTimeout = d
	}
}

// WithReporter receives live progress events.
func WithReporter(r Reporter) Option {
	return func(a *Analyzer) {
		a.reporter = r
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// Collect returns the media files the analyzer would probe for paths,
// along with paths that could not be read.
func (a *Analyzer) Collect(paths []string) ([]string, []ProbeFailure, error) {
	opts := discovery.Options{Recursive: a.config.Recursive}
	if a.logger != nil {
		opts.Logger = a.logger
	}
	res, err := discovery.Collect(paths, opts)
	if err != nil {
		return nil, nil, err
	}
	return res.Files, res.Failures, nil
}

// Analyze discovers and probes every media file under paths. Per-file
// problems are reported inside the result; the only error is a
// no-files-found error when nothing resolves from paths.
func (a *Analyzer) Analyze(ctx context.Context, paths []string) (*BatchResult, error) {
	files, failures, err := a.Collect(paths)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeFiles(ctx, files, failures), nil
}

// AnalyzeFiles probes an already collected file list. preflight failures
// are included in the result as-is.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, files []string, preflight []ProbeFailure) *BatchResult {
	prober := probe.NewProber(a.backend, probe.WithTimeout(a.config.ProbeTimeout))
	return batch.Run(ctx, prober, files, batch.Options{
		MaxConcurrent: a.config.MaxConcurrent,
		Reporter:      a.reporter,
		Logger:        a.logger,
		Failures:      preflight,
	})
}

// AnalyzeFile probes a single file.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*AudioInfo, error) {
	out := probe.NewProber(a.backend, probe.WithTimeout(a.config.ProbeTimeout)).Probe(ctx, path)
	if out.Failure != nil {
		return nil, &FileError{Path: out.Failure.FilePath, Message: out.Failure.Message}
	}
	return out.Info, nil
}

// MaxConcurrent returns the effective concurrency limit.
func (a *Analyzer) MaxConcurrent() int {
	return a.config.MaxConcurrent
}

// BackendName returns the name of the metadata backend in use.
func (a *Analyzer) BackendName() string {
	return a.backend.Name()
}

// CheckBackend reports whether the backend's external tool can be found.
// Backends that cannot tell always return nil.
func (a *Analyzer) CheckBackend() error {
	return backend.Check(a.backend)
}

// FileError is returned by AnalyzeFile when a file cannot be analyzed.
type FileError struct {
	Path    string
	Message string
}

func (e *FileError) Error() string {
	return e.Message
}
