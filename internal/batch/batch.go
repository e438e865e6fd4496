package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/audioprobe/internal/config"
	coreerrors "github.com/five82/audioprobe/internal/errors"
	"github.com/five82/audioprobe/internal/logging"
	"github.com/five82/audioprobe/internal/probe"
	"github.com/five82/audioprobe/internal/reporter"
	"github.com/five82/audioprobe/internal/worker"
)

// Options configures a batch run.
type Options struct {
	// MaxConcurrent is clamped to [config.MinConcurrent, config.MaxConcurrent].
	MaxConcurrent int
	// Reporter receives progress. Nil means no progress output.
	Reporter reporter.Reporter
	// Logger receives diagnostics. Nil means the global logger.
	Logger *logging.Logger
	// RunID tags log lines and reporter events. Generated when empty.
	RunID string
	// Failures are outcomes already known before dispatch, such as paths
	// discovery could not read. They count toward TotalFiles.
	Failures []probe.ProbeFailure
}

// Run probes every file with at most opts.MaxConcurrent probes in flight
// and returns the aggregated result once all of them have finished.
//
// Cancelling ctx stops admission of further probes. Probes already running
// never see the cancellation and finish normally. Every file that was never
// dispatched is recorded as a cancelled failure so the result still
// accounts for all of files.
func Run(ctx context.Context, prober *probe.Prober, files []string, opts Options) *BatchResult {
	start := time.Now()

	rep := opts.Reporter
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	base := opts.Logger
	if base == nil {
		base = logging.Global()
	}
	log := base.With("run_id", runID)

	limit := config.ClampConcurrency(opts.MaxConcurrent)
	total := len(files) + len(opts.Failures)
	agg := NewAggregator(total)
	sem := worker.NewSemaphore(limit)

	log.Info("batch started",
		"files", len(files),
		"preflight_failures", len(opts.Failures),
		"max_concurrent", limit,
		"backend", prober.Backend().Name())

	rep.BatchStarted(reporter.BatchStartInfo{
		RunID:         runID,
		TotalFiles:    total,
		FileList:      files,
		MaxConcurrent: limit,
		Backend:       prober.Backend().Name(),
	})

	tee := newProgressTee(rep, log)
	snapshot := func(c Counts, last string) reporter.ProgressSnapshot {
		elapsed := time.Since(start)
		var rate float64
		if secs := elapsed.Seconds(); secs > 0 {
			rate = float64(c.Completed) / secs
		}
		return reporter.ProgressSnapshot{
			Completed:   c.Completed,
			Total:       total,
			Successful:  c.Successful,
			Failed:      c.Failed,
			Elapsed:     elapsed,
			FilesPerSec: rate,
			LastFile:    last,
		}
	}
	record := func(out probe.Outcome) {
		c := agg.Add(out)
		if out.Failure != nil {
			tee.notify(reporter.FailureNotice{FilePath: out.Failure.FilePath, Message: out.Failure.Message})
		}
		tee.publish(snapshot(c, out.Path()))
	}

	for i := range opts.Failures {
		record(probe.Outcome{Failure: &opts.Failures[i]})
	}

	// Probes already admitted run to completion; only admission stops on
	// cancellation. The per-probe timeout still applies inside the Prober.
	probeCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for i, path := range files {
		err := sem.Go(ctx, &wg, func() {
			out := prober.Probe(probeCtx, path)
			if out.Failure != nil {
				log.Debug("probe failed", "path", path, "error", out.Failure.Message)
			} else {
				log.Debug("probe finished", "path", path, "ms", out.Info.ProcessingTimeMs)
			}
			record(out)
		})
		if err != nil {
			agg.MarkCancelled()
			skipped := files[i:]
			log.Warn("batch cancelled, skipping remaining files", "remaining", len(skipped), "error", err)
			for _, p := range skipped {
				record(probe.Fail(p, coreerrors.NewCancelledError()))
			}
			break
		}
	}
	wg.Wait()
	if ctx.Err() != nil {
		agg.MarkCancelled()
	}

	elapsed := time.Since(start)
	result := agg.Result(elapsed)
	tee.close(snapshot(agg.Counts(), ""))

	log.Info("batch complete",
		"total", result.TotalFiles,
		"successful", result.Successful(),
		"failed", result.Failed(),
		"elapsed", elapsed,
		"cancelled", result.Cancelled)

	rep.BatchComplete(reporter.BatchSummary{
		TotalFiles:           result.TotalFiles,
		Successful:           result.Successful(),
		Failed:               result.Failed(),
		ProcessingTime:       result.ProcessingTime,
		TotalDurationSeconds: result.TotalDurationSeconds(),
		TotalSizeBytes:       result.TotalSizeBytes(),
		Cancelled:            result.Cancelled,
	})

	return result
}
