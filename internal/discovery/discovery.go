// Package discovery expands input paths into the list of media files to probe.
package discovery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	coreerrors "github.com/five82/audioprobe/internal/errors"
	"github.com/five82/audioprobe/internal/probe"
	"github.com/five82/audioprobe/internal/util"
)

// ErrSymlinkNotFollowed is the cause recorded for symbolic links met while
// enumerating a directory.
var ErrSymlinkNotFollowed = errors.New("symbolic link not followed")

// DiscoveryLogger defines the interface for discovery logging.
// *logging.Logger satisfies it.
type DiscoveryLogger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Options controls how roots are expanded.
type Options struct {
	// Recursive walks full subtrees instead of only direct children.
	Recursive bool
	// Logger, if set, receives a short summary of what was found.
	Logger DiscoveryLogger
}

// Result contains the results of file discovery.
type Result struct {
	// Files is the deduplicated list in first-seen order.
	Files []string
	// Failures are paths that could not be enumerated.
	Failures []probe.ProbeFailure
	// SkippedCount is the number of directory entries without a media extension.
	SkippedCount int
}

// Total returns the number of outcomes the batch will contain.
func (r *Result) Total() int {
	return len(r.Files) + len(r.Failures)
}

type collector struct {
	opts   Options
	seen   map[string]struct{} // resolved file identities
	failed map[string]struct{} // absolute paths already recorded as failures
	result *Result
}

// Collect expands roots into candidate files. Regular files named as roots
// are always included. Directories contribute their media files, one level
// deep unless opts.Recursive is set. Unreadable paths are recorded as
// failures and do not stop discovery.
//
// If no file resolves from the whole input set, Collect returns a
// KindNoFilesFound error and a nil result.
func Collect(roots []string, opts Options) (*Result, error) {
	c := &collector{
		opts:   opts,
		seen:   make(map[string]struct{}),
		failed: make(map[string]struct{}),
		result: &Result{},
	}

	for _, root := range roots {
		c.collectRoot(root)
	}

	if len(c.result.Files) == 0 {
		if opts.Logger != nil {
			for _, f := range c.result.Failures {
				opts.Logger.Debug("discovery failure", "error", f.Message)
			}
		}
		return nil, coreerrors.NewNoFilesFoundError(roots)
	}

	if opts.Logger != nil {
		logDiscoveredFiles(c.result, opts.Logger)
	}

	return c.result, nil
}

func (c *collector) collectRoot(root string) {
	info, err := os.Stat(root)
	if err != nil {
		c.fail(root, err)
		return
	}

	if !info.IsDir() {
		c.add(root)
		return
	}

	if c.opts.Recursive {
		c.walk(root)
		return
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		c.fail(root, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		c.visit(filepath.Join(root, entry.Name()), entry)
	}
}

// walk enumerates root's subtree. A root that is itself a symlink to a
// directory is resolved first so its contents are visited; paths reported
// stay relative to root as given.
func (c *collector) walk(root string) {
	base := root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		base = resolved
	}

	_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		display := path
		if base != root {
			if rel, relErr := filepath.Rel(base, path); relErr == nil {
				display = filepath.Join(root, rel)
			}
		}

		if err != nil {
			c.fail(display, err)
			return nil
		}
		if path == base {
			return nil
		}

		if d.IsDir() {
			if util.IsHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		c.visit(display, d)
		return nil
	})
}

// visit applies the per-entry filters to a non-directory entry.
func (c *collector) visit(path string, entry fs.DirEntry) {
	if util.IsHidden(entry.Name()) {
		return
	}
	if entry.Type()&fs.ModeSymlink != 0 {
		c.fail(path, ErrSymlinkNotFollowed)
		return
	}
	if !entry.Type().IsRegular() || !util.HasMediaExtension(path) {
		c.result.SkippedCount++
		return
	}
	c.add(path)
}

// add records path once per resolved file, keeping the first path it was
// reached through.
func (c *collector) add(path string) {
	key := util.CanonicalPath(path)
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.result.Files = append(c.result.Files, path)
}

func (c *collector) fail(path string, err error) {
	key := util.AbsPath(path)
	if _, ok := c.failed[key]; ok {
		return
	}
	c.failed[key] = struct{}{}
	c.result.Failures = append(c.result.Failures, *probe.NewFailure(path, coreerrors.NewDiscoveryError(path, err)))
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(result *Result, logger DiscoveryLogger) {
	files := result.Files
	logger.Info("discovered media files",
		"count", len(files),
		"skipped", result.SkippedCount,
		"failures", len(result.Failures))

	maxToLog := min(5, len(files))
	for i := range maxToLog {
		logger.Debug("discovered", "file", util.GetFilename(files[i]))
	}

	if len(files) > 5 {
		logger.Debug("discovered", "more", len(files)-5)
	}
}
