package reporter

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/five82/audioprobe/internal/util"
)

// maxListedFiles caps how many paths BatchStarted prints.
const maxListedFiles = 5

// TerminalReporter outputs human-friendly text to the terminal. Everything
// goes to its writer (stderr by default) so stdout stays free for the report.
type TerminalReporter struct {
	mu           sync.Mutex
	w            io.Writer
	verbose      bool
	progress     *progressbar.ProgressBar
	maxCompleted int
	cyan         *color.Color
	green        *color.Color
	yellow       *color.Color
	red          *color.Color
	magenta      *color.Color
	bold         *color.Color
}

// NewTerminalReporter creates a new terminal reporter writing to stderr.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return NewTerminalReporterWithWriter(os.Stderr, verbose)
}

// NewTerminalReporterWithWriter creates a terminal reporter with a custom writer.
func NewTerminalReporterWithWriter(w io.Writer, verbose bool) *TerminalReporter {
	return &TerminalReporter{
		w:       w,
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

// finishProgress must be called with r.mu held.
func (r *TerminalReporter) finishProgress() {
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxCompleted = 0
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	_, _ = fmt.Fprintf(r.w, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

// above prints a line without tearing the progress bar.
func (r *TerminalReporter) above(format string, args ...any) {
	if r.progress != nil {
		_ = r.progress.Clear()
	}
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finishProgress()

	_, _ = r.cyan.Fprintln(r.w, "BATCH")
	r.printLabel(12, "Files:", fmt.Sprintf("%d", info.TotalFiles))
	r.printLabel(12, "Concurrency:", fmt.Sprintf("%d", info.MaxConcurrent))
	if info.Backend != "" {
		r.printLabel(12, "Backend:", info.Backend)
	}
	if r.verbose {
		n := min(maxListedFiles, len(info.FileList))
		for i := range n {
			_, _ = fmt.Fprintf(r.w, "  %d. %s\n", i+1, info.FileList[i])
		}
		if len(info.FileList) > n {
			_, _ = fmt.Fprintf(r.w, "  ... and %d more\n", len(info.FileList)-n)
		}
	}

	r.progress = progressbar.NewOptions(
		info.TotalFiles,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Probing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FileProgress(progress ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	// Snapshots may arrive coalesced; never move the bar backwards.
	if progress.Completed >= r.maxCompleted {
		r.maxCompleted = progress.Completed
		_ = r.progress.Set(progress.Completed)
	}

	r.progress.Describe(fmt.Sprintf("%s ok, %s failed, %s",
		r.green.Sprint(progress.Successful),
		r.red.Sprint(progress.Failed),
		util.FormatRate(progress.FilesPerSec)))
}

func (r *TerminalReporter) FileFailed(notice FailureNotice) {
	if !r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.above("  %s %s\n", r.red.Sprint("✗"), notice.Message)
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finishProgress()

	_, _ = r.cyan.Fprintln(r.w, "BATCH SUMMARY")
	status := r.green.Sprintf("%d of %d succeeded", summary.Successful, summary.TotalFiles)
	if summary.Failed > 0 {
		status += ", " + r.red.Sprintf("%d failed", summary.Failed)
	}
	_, _ = fmt.Fprintf(r.w, "  %s\n", r.bold.Sprint(status))
	r.printLabel(9, "Time:", fmt.Sprintf("%.2fs", summary.ProcessingTime.Seconds()))
	r.printLabel(9, "Audio:", util.FormatDuration(summary.TotalDurationSeconds))
	r.printLabel(9, "Size:", util.FormatBytes(summary.TotalSizeBytes))
	if summary.Cancelled {
		_, _ = r.yellow.Fprintln(r.w, "  Interrupted: remaining files were not probed")
	}
}

func (r *TerminalReporter) Warning(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.above("%s\n", r.yellow.Sprintf("WARN: %s", message))
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.above("%s\n", r.red.Sprintf("ERROR %s", err.Title))
	_, _ = fmt.Fprintf(r.w, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(r.w, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(r.w, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.above("  %s %s\n", r.magenta.Sprint("›"), message)
}
