package util

import (
	"os"
	"runtime"
)

// SystemInfo contains information about the host system.
type SystemInfo struct {
	Hostname     string
	NumCPU       int
	OS           string
	Arch         string
	MaxOpenFiles uint64
}

// GetSystemInfo collects system information.
func GetSystemInfo() SystemInfo {
	hostname, _ := os.Hostname()
	return SystemInfo{
		Hostname:     hostname,
		NumCPU:       runtime.NumCPU(),
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		MaxOpenFiles: MaxOpenFiles(),
	}
}

// LogicalCores returns the number of logical CPU cores (includes hyperthreads).
// This is equivalent to runtime.NumCPU().
func LogicalCores() int {
	return runtime.NumCPU()
}

// FileDescriptorHeadroom is the number of descriptors assumed to be in use
// by the process itself (stdio, log files, the report destination).
const FileDescriptorHeadroom = 16

// DescriptorsPerProbe is the number of descriptors a single probe holds
// while its external tool runs (stdout and stderr pipes plus the input file).
const DescriptorsPerProbe = 3

// ExceedsDescriptorLimit reports whether running concurrent probes at once
// could exhaust the soft RLIMIT_NOFILE. Returns false when the limit is
// unknown.
func ExceedsDescriptorLimit(concurrent int) bool {
	limit := MaxOpenFiles()
	if limit == 0 {
		return false
	}
	need := uint64(concurrent)*DescriptorsPerProbe + FileDescriptorHeadroom
	return need > limit
}
