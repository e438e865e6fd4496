//go:build unix

package util

import "golang.org/x/sys/unix"

// MaxOpenFiles returns the soft limit on open file descriptors.
// Returns 0 if the limit cannot be determined or is unlimited.
func MaxOpenFiles() uint64 {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0
	}
	if rl.Cur == unix.RLIM_INFINITY {
		return 0
	}
	return uint64(rl.Cur)
}
