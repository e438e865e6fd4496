package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	coreerrors "github.com/five82/audioprobe/internal/errors"
)

// Prober runs a single backend invocation per file, timing it and turning
// every kind of failure into a ProbeFailure.
type Prober struct {
	backend Backend
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout bounds each backend call. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.timeout = d
	}
}

// NewProber creates a Prober around backend.
func NewProber(backend Backend, opts ...Option) *Prober {
	p := &Prober{
		backend: backend,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Backend returns the wrapped backend.
func (p *Prober) Backend() Backend {
	return p.backend
}

// Probe analyzes path and always returns exactly one outcome. Panics in the
// backend are recovered and reported as a failure for path.
func (p *Prober) Probe(ctx context.Context, path string) (out Outcome) {
	start := p.now()

	defer func() {
		if r := recover(); r != nil {
			out = Fail(path, coreerrors.NewPanicError(r))
		}
	}()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	info, err := p.backend.Probe(ctx, path)
	elapsed := p.now().Sub(start)

	if err != nil {
		if p.timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("probe timed out after %s: %w", p.timeout, err)
		}
		return Fail(path, err)
	}
	if info == nil {
		return Fail(path, coreerrors.NewAudioInfoError(p.backend.Name()+" returned no metadata"))
	}

	if info.FilePath == "" {
		info.FilePath = path
	}
	info.ProcessingTimeMs = uint64(elapsed.Milliseconds())
	return Outcome{Info: info}
}

// Fail builds a failure outcome for path. The cause is kept verbatim and
// prefixed with the path unless it already names it.
func Fail(path string, cause error) Outcome {
	return Outcome{Failure: NewFailure(path, cause)}
}

// NewFailure builds a ProbeFailure for path from cause.
func NewFailure(path string, cause error) *ProbeFailure {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	if !mentionsPath(msg, path) {
		msg = path + ": " + msg
	}
	return &ProbeFailure{FilePath: path, Message: msg}
}

// mentionsPath reports whether msg names path as a whole token: at the start
// or after a space, and followed by a colon or the end of msg.
func mentionsPath(msg, path string) bool {
	if path == "" {
		return false
	}
	for from := 0; from < len(msg); {
		i := strings.Index(msg[from:], path)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(path)
		if (start == 0 || msg[start-1] == ' ') && (end == len(msg) || msg[end] == ':') {
			return true
		}
		from = start + 1
	}
	return false
}
