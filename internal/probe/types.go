// Package probe defines the per-file metadata model and the Prober that
// wraps a metadata backend with timing and error normalization.
package probe

import "context"

// AudioInfo is the metadata extracted from one media file. Optional numeric
// fields are nil when the backend could not determine them.
type AudioInfo struct {
	FilePath         string            `json:"file_path"`
	FileSize         uint64            `json:"file_size"`
	DurationSeconds  *float64          `json:"duration_seconds,omitempty"`
	BitRate          *int64            `json:"bit_rate,omitempty"`
	SampleRate       *int              `json:"sample_rate,omitempty"`
	Channels         *int              `json:"channels,omitempty"`
	CodecName        string            `json:"codec_name,omitempty"`
	CodecLongName    string            `json:"codec_long_name,omitempty"`
	FormatName       string            `json:"format_name,omitempty"`
	FormatLongName   string            `json:"format_long_name,omitempty"`
	HasVideo         bool              `json:"has_video"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	ProcessingTimeMs uint64            `json:"processing_time_ms"`
}

// Duration returns the duration in seconds, or 0 if unknown.
func (a *AudioInfo) Duration() float64 {
	if a.DurationSeconds == nil {
		return 0
	}
	return *a.DurationSeconds
}

// ProbeFailure records a file that could not be analyzed. Message always
// names the file and carries the underlying cause unchanged.
type ProbeFailure struct {
	FilePath string
	Message  string
}

func (f ProbeFailure) String() string {
	return f.Message
}

// Outcome is the result of probing one file. Exactly one of Info and
// Failure is set.
type Outcome struct {
	Info    *AudioInfo
	Failure *ProbeFailure
}

// OK reports whether the probe succeeded.
func (o Outcome) OK() bool {
	return o.Info != nil
}

// Path returns the path of the file this outcome belongs to.
func (o Outcome) Path() string {
	if o.Info != nil {
		return o.Info.FilePath
	}
	if o.Failure != nil {
		return o.Failure.FilePath
	}
	return ""
}

// Backend extracts metadata from a single file. Implementations must be
// safe for concurrent use.
type Backend interface {
	Name() string
	Probe(ctx context.Context, path string) (*AudioInfo, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, path string) (*AudioInfo, error)

// Name returns "func".
func (f BackendFunc) Name() string { return "func" }

// Probe calls f.
func (f BackendFunc) Probe(ctx context.Context, path string) (*AudioInfo, error) {
	return f(ctx, path)
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
