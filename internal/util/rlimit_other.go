//go:build !unix

package util

// MaxOpenFiles returns 0 on platforms without RLIMIT_NOFILE.
func MaxOpenFiles() uint64 {
	return 0
}
