// Package util provides utility functions for formatting and common operations.
package util

import (
	"fmt"
)

const (
	KiB = 1024
	MiB = KiB * 1024
	GiB = MiB * 1024
)

// FormatBytes formats bytes with appropriate binary units (B, KiB, MiB, GiB).
func FormatBytes(bytes uint64) string {
	bf := float64(bytes)
	switch {
	case bf >= GiB:
		return fmt.Sprintf("%.2f GiB", bf/GiB)
	case bf >= MiB:
		return fmt.Sprintf("%.2f MiB", bf/MiB)
	case bf >= KiB:
		return fmt.Sprintf("%.2f KiB", bf/KiB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatDuration formats seconds as HH:MM:SS.
func FormatDuration(seconds float64) string {
	if seconds < 0 || seconds != seconds { // NaN check
		return "??:??:??"
	}

	totalSecs := int64(seconds)
	hours := totalSecs / 3600
	minutes := (totalSecs % 3600) / 60
	secs := totalSecs % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatBitrate formats a bit rate in bits per second.
func FormatBitrate(bitsPerSec int64) string {
	switch {
	case bitsPerSec >= 1_000_000:
		return fmt.Sprintf("%.1f Mbps", float64(bitsPerSec)/1_000_000)
	case bitsPerSec >= 1_000:
		return fmt.Sprintf("%d kbps", bitsPerSec/1_000)
	case bitsPerSec > 0:
		return fmt.Sprintf("%d bps", bitsPerSec)
	default:
		return "N/A"
	}
}

// FormatRate formats a throughput in files per second.
func FormatRate(filesPerSec float64) string {
	if filesPerSec <= 0 || filesPerSec != filesPerSec {
		return "0.0 files/s"
	}
	return fmt.Sprintf("%.1f files/s", filesPerSec)
}
