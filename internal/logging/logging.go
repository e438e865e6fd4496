package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	coreerrors "github.com/five82/audioprobe/internal/errors"
)

// FileSink is a timestamped per-run log file that diagnostics are copied to.
type FileSink struct {
	file     *os.File
	filePath string
}

// OpenFileSink creates logDir if needed and opens a new log file in it.
// Returns nil if logDir is empty.
func OpenFileSink(logDir string, now time.Time) (*FileSink, error) {
	if logDir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, coreerrors.NewIOError("failed to create log directory "+logDir, err)
	}

	filename := fmt.Sprintf("audioprobe_run_%s.log", now.Format("20060102_150405"))
	filePath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, coreerrors.NewIOError("failed to create log file "+filePath, err)
	}

	return &FileSink{file: file, filePath: filePath}, nil
}

// Close closes the log file.
func (s *FileSink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// FilePath returns the path to the log file.
func (s *FileSink) FilePath() string {
	if s == nil {
		return ""
	}
	return s.filePath
}

// Tee returns a writer that copies to both w and the log file.
// A nil sink returns w unchanged.
func (s *FileSink) Tee(w io.Writer) io.Writer {
	if s == nil || s.file == nil {
		return w
	}
	return io.MultiWriter(w, s.file)
}
