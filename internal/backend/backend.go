// Package backend selects a metadata backend by name.
package backend

import (
	"fmt"

	"github.com/five82/audioprobe/internal/config"
	"github.com/five82/audioprobe/internal/ffprobe"
	"github.com/five82/audioprobe/internal/mediainfo"
	"github.com/five82/audioprobe/internal/probe"
)

// Checker is implemented by backends that can report whether their
// external tool is installed.
type Checker interface {
	Available() error
}

// New returns the backend called name, running binary (empty for the
// tool's default).
func New(name, binary string) (probe.Backend, error) {
	switch name {
	case config.BackendFFprobe, "":
		return ffprobe.New(binary), nil
	case config.BackendMediaInfo:
		return mediainfo.New(binary), nil
	default:
		return nil, fmt.Errorf("%w: '%s', valid options: ffprobe, mediainfo", config.ErrInvalidBackend, name)
	}
}

// FromConfig returns the backend selected by cfg.
func FromConfig(cfg *config.Config) (probe.Backend, error) {
	return New(cfg.Backend, cfg.ToolPath())
}

// Check returns the availability error of b, or nil if b cannot tell.
func Check(b probe.Backend) error {
	if c, ok := b.(Checker); ok {
		return c.Available()
	}
	return nil
}
