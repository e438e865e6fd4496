package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Default constants
const (
	// DefaultMaxConcurrent is the number of probes allowed in flight at once.
	DefaultMaxConcurrent = 50

	// MinConcurrent is the lower bound for MaxConcurrent.
	MinConcurrent = 1

	// MaxConcurrent is the upper bound for MaxConcurrent.
	MaxConcurrent = 2000

	// FormatText selects the human-readable report.
	FormatText = "text"

	// FormatJSON selects the structured JSON report.
	FormatJSON = "json"

	// BackendFFprobe probes files with ffprobe.
	BackendFFprobe = "ffprobe"

	// BackendMediaInfo probes files with MediaInfo.
	BackendMediaInfo = "mediainfo"

	// DefaultFFprobePath is the ffprobe binary looked up on PATH.
	DefaultFFprobePath = "ffprobe"

	// DefaultMediaInfoPath is the mediainfo binary looked up on PATH.
	DefaultMediaInfoPath = "mediainfo"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "AUDIOPROBE_"
)

// Config holds all configuration for a batch run.
type Config struct {
	// Dispatch
	MaxConcurrent int           `yaml:"max_concurrent" env:"AUDIOPROBE_MAX_CONCURRENT"`
	Recursive     bool          `yaml:"recursive" env:"AUDIOPROBE_RECURSIVE"`
	ProbeTimeout  time.Duration `yaml:"probe_timeout" env:"AUDIOPROBE_PROBE_TIMEOUT"`

	// Backend selection
	Backend       string `yaml:"backend" env:"AUDIOPROBE_BACKEND"`
	FFprobePath   string `yaml:"ffprobe_path" env:"AUDIOPROBE_FFPROBE_PATH"`
	MediaInfoPath string `yaml:"mediainfo_path" env:"AUDIOPROBE_MEDIAINFO_PATH"`

	// Output
	Format     string `yaml:"format" env:"AUDIOPROBE_FORMAT"`
	OutputPath string `yaml:"output" env:"AUDIOPROBE_OUTPUT"`
	Events     bool   `yaml:"events" env:"AUDIOPROBE_EVENTS"`

	// Diagnostics
	Verbose bool   `yaml:"verbose" env:"AUDIOPROBE_VERBOSE"`
	Quiet   bool   `yaml:"quiet" env:"AUDIOPROBE_QUIET"`
	LogDir  string `yaml:"log_dir" env:"AUDIOPROBE_LOG_DIR"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxConcurrent: DefaultMaxConcurrent,
		Backend:       BackendFFprobe,
		FFprobePath:   DefaultFFprobePath,
		MediaInfoPath: DefaultMediaInfoPath,
		Format:        FormatText,
	}
}

// Load overlays a YAML configuration file (when path is non-empty) and
// AUDIOPROBE_* environment variables onto cfg. Fields absent from both keep
// their current values.
func Load(path string, cfg *Config) error {
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		if path == "" {
			path = "environment"
		}
		return fmt.Errorf("%w %s: %v", ErrConfigFile, path, err)
	}
	return nil
}

// ClampConcurrency coerces n into [MinConcurrent, MaxConcurrent].
func ClampConcurrency(n int) int {
	if n < MinConcurrent {
		return MinConcurrent
	}
	if n > MaxConcurrent {
		return MaxConcurrent
	}
	return n
}

// Validate checks the configuration for errors. MaxConcurrent is clamped
// rather than rejected.
func (c *Config) Validate() error {
	c.MaxConcurrent = ClampConcurrency(c.MaxConcurrent)

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: '%s', valid options: text, json", ErrInvalidFormat, c.Format)
	}

	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendFFprobe, BackendMediaInfo:
	default:
		return fmt.Errorf("%w: '%s', valid options: ffprobe, mediainfo", ErrInvalidBackend, c.Backend)
	}

	if c.ProbeTimeout < 0 {
		return fmt.Errorf("%w: must be >= 0, got %s", ErrInvalidTimeout, c.ProbeTimeout)
	}

	if c.Verbose && c.Quiet {
		return ErrConflictingVerbosity
	}

	return nil
}

// JSON reports whether the structured report format is selected.
func (c *Config) JSON() bool {
	return c.Format == FormatJSON
}

// ToolPath returns the binary path for the selected backend.
func (c *Config) ToolPath() string {
	if c.Backend == BackendMediaInfo {
		return c.MediaInfoPath
	}
	return c.FFprobePath
}
