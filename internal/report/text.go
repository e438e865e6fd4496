package report

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/five82/audioprobe/internal/batch"
	"github.com/five82/audioprobe/internal/probe"
	"github.com/five82/audioprobe/internal/util"
)

const unknown = "unknown"

func renderText(result *batch.BatchResult) []byte {
	var b bytes.Buffer

	b.WriteString("=== Audio File Analysis ===\n")
	fmt.Fprintf(&b, "Processing time: %.2fs\n", result.ProcessingTime.Seconds())
	fmt.Fprintf(&b, "Total files: %d\n", result.TotalFiles)
	fmt.Fprintf(&b, "Successful: %d, Failed: %d\n", result.Successful(), result.Failed())
	fmt.Fprintf(&b, "Total duration: %s\n", util.FormatDuration(result.TotalDurationSeconds()))
	fmt.Fprintf(&b, "Total size: %s\n", util.FormatBytes(result.TotalSizeBytes()))
	if result.Cancelled {
		b.WriteString("Run was interrupted before all files were probed\n")
	}
	b.WriteString("\n")

	for i := range result.SuccessfulFiles {
		writeFile(&b, &result.SuccessfulFiles[i])
	}

	if len(result.Errors) > 0 {
		b.WriteString("=== Errors ===\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "  %s\n", e.Message)
		}
	}

	return b.Bytes()
}

func writeFile(b *bytes.Buffer, info *probe.AudioInfo) {
	fmt.Fprintf(b, "File: %s\n", info.FilePath)
	field(b, "Size", util.FormatBytes(info.FileSize))

	duration := unknown
	if info.DurationSeconds != nil {
		duration = fmt.Sprintf("%s (%.3fs)", util.FormatDuration(*info.DurationSeconds), *info.DurationSeconds)
	}
	field(b, "Duration", duration)

	bitrate := unknown
	if info.BitRate != nil {
		bitrate = util.FormatBitrate(*info.BitRate)
	}
	field(b, "Bitrate", bitrate)

	sampleRate := unknown
	if info.SampleRate != nil {
		sampleRate = fmt.Sprintf("%d Hz", *info.SampleRate)
	}
	field(b, "Sample rate", sampleRate)

	channels := unknown
	if info.Channels != nil {
		channels = fmt.Sprintf("%d", *info.Channels)
	}
	field(b, "Channels", channels)

	field(b, "Codec", nameWithLong(info.CodecName, info.CodecLongName))
	field(b, "Format", nameWithLong(info.FormatName, info.FormatLongName))
	field(b, "Has video", yesNo(info.HasVideo))
	field(b, "Processing time", fmt.Sprintf("%dms", info.ProcessingTimeMs))

	if len(info.Metadata) > 0 {
		keys := make([]string, 0, len(info.Metadata))
		for k := range info.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b.WriteString("   Metadata:\n")
		for _, k := range keys {
			fmt.Fprintf(b, "     %s: %s\n", k, info.Metadata[k])
		}
	}
	b.WriteString("\n")
}

func field(b *bytes.Buffer, label, value string) {
	fmt.Fprintf(b, "   %-16s %s\n", label+":", value)
}

func nameWithLong(name, long string) string {
	switch {
	case name == "" && long == "":
		return unknown
	case long == "" || strings.EqualFold(name, long):
		return name
	case name == "":
		return long
	default:
		return fmt.Sprintf("%s (%s)", name, long)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
