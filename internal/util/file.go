package util

import (
	"os"
	"path/filepath"
	"strings"
)

// MediaExtensions is the list of extensions picked up when enumerating a
// directory. Files named explicitly on the command line bypass this filter.
var MediaExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".aac":  true,
	".ogg":  true,
	".m4a":  true,
	".wma":  true,
	".opus": true,
	".mp2":  true,
	".ac3":  true,
	".dts":  true,
	".ape":  true,
	".aiff": true,
	".aif":  true,
	".au":   true,
	".ra":   true,
	".amr":  true,
	".webm": true,
	".mkv":  true,
	".m4b":  true,
	".m4p":  true,
}

// HasMediaExtension reports whether path ends in a known media extension.
func HasMediaExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return MediaExtensions[ext]
}

// IsHidden reports whether a file or directory name is a dotfile.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// AbsPath returns the cleaned absolute form of path, or the cleaned input
// when the working directory cannot be determined.
func AbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// CanonicalPath returns the identity of a file during deduplication: the
// absolute path with every symbolic link resolved. Falls back to AbsPath
// when resolution fails.
func CanonicalPath(path string) string {
	abs := AbsPath(path)
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
