package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.MaxConcurrent != DefaultMaxConcurrent {
		t.Errorf("expected MaxConcurrent=%d, got %d", DefaultMaxConcurrent, cfg.MaxConcurrent)
	}
	if cfg.Format != FormatText {
		t.Errorf("expected Format=%s, got %s", FormatText, cfg.Format)
	}
	if cfg.Backend != BackendFFprobe {
		t.Errorf("expected Backend=%s, got %s", BackendFFprobe, cfg.Backend)
	}
	if cfg.Recursive {
		t.Error("expected Recursive=false by default")
	}
	if cfg.ProbeTimeout != 0 {
		t.Errorf("expected no probe timeout by default, got %s", cfg.ProbeTimeout)
	}
}

func TestClampConcurrency(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{50, 50},
		{2000, 2000},
		{2001, 2000},
		{1 << 20, 2000},
	}

	for _, tt := range tests {
		if got := ClampConcurrency(tt.in); got != tt.want {
			t.Errorf("ClampConcurrency(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(*Config)
		wantErr      bool
		wantSentinel error
	}{
		{
			name:   "default config is valid",
			modify: func(c *Config) {},
		},
		{
			name:   "json format is valid",
			modify: func(c *Config) { c.Format = "JSON" },
		},
		{
			name:         "unknown format is invalid",
			modify:       func(c *Config) { c.Format = "xml" },
			wantErr:      true,
			wantSentinel: ErrInvalidFormat,
		},
		{
			name:   "mediainfo backend is valid",
			modify: func(c *Config) { c.Backend = "mediainfo" },
		},
		{
			name:         "unknown backend is invalid",
			modify:       func(c *Config) { c.Backend = "guess" },
			wantErr:      true,
			wantSentinel: ErrInvalidBackend,
		},
		{
			name:         "negative timeout is invalid",
			modify:       func(c *Config) { c.ProbeTimeout = -time.Second },
			wantErr:      true,
			wantSentinel: ErrInvalidTimeout,
		},
		{
			name:         "verbose and quiet conflict",
			modify:       func(c *Config) { c.Verbose, c.Quiet = true, true },
			wantErr:      true,
			wantSentinel: ErrConflictingVerbosity,
		},
		{
			name:   "out of range concurrency is clamped, not rejected",
			modify: func(c *Config) { c.MaxConcurrent = 100000 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
				t.Errorf("Validate() error = %v, want sentinel %v", err, tt.wantSentinel)
			}
		})
	}
}

func TestValidateClampsConcurrency(t *testing.T) {
	cfg := NewConfig()
	cfg.MaxConcurrent = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.MaxConcurrent != MinConcurrent {
		t.Errorf("MaxConcurrent = %d, want %d", cfg.MaxConcurrent, MinConcurrent)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audioprobe.yaml")
	content := `
max_concurrent: 8
recursive: true
format: json
backend: mediainfo
probe_timeout: 30s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig()
	if err := Load(path, cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MaxConcurrent != 8 {
		t.Errorf("MaxConcurrent = %d, want 8", cfg.MaxConcurrent)
	}
	if !cfg.Recursive {
		t.Error("Recursive = false, want true")
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatJSON)
	}
	if cfg.Backend != BackendMediaInfo {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendMediaInfo)
	}
	if cfg.ProbeTimeout != 30*time.Second {
		t.Errorf("ProbeTimeout = %s, want 30s", cfg.ProbeTimeout)
	}
	// Untouched fields keep their defaults.
	if cfg.FFprobePath != DefaultFFprobePath {
		t.Errorf("FFprobePath = %q, want %q", cfg.FFprobePath, DefaultFFprobePath)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUDIOPROBE_MAX_CONCURRENT", "4")
	t.Setenv("AUDIOPROBE_FORMAT", "json")

	cfg := NewConfig()
	if err := Load("", cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxConcurrent != 4 {
		t.Errorf("MaxConcurrent = %d, want 4", cfg.MaxConcurrent)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg := NewConfig()
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), cfg)
	if !errors.Is(err, ErrConfigFile) {
		t.Errorf("Load() error = %v, want %v", err, ErrConfigFile)
	}
}

func TestToolPath(t *testing.T) {
	cfg := NewConfig()
	if cfg.ToolPath() != DefaultFFprobePath {
		t.Errorf("ToolPath() = %q, want %q", cfg.ToolPath(), DefaultFFprobePath)
	}
	cfg.Backend = BackendMediaInfo
	if cfg.ToolPath() != DefaultMediaInfoPath {
		t.Errorf("ToolPath() = %q, want %q", cfg.ToolPath(), DefaultMediaInfoPath)
	}
}
