// Package ffprobe provides a metadata backend that shells out to ffprobe.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	coreerrors "github.com/five82/audioprobe/internal/errors"
	"github.com/five82/audioprobe/internal/probe"
	"github.com/five82/audioprobe/internal/util"
)

// DefaultBinary is the ffprobe executable looked up on PATH.
const DefaultBinary = "ffprobe"

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  *ffprobeFormat  `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName     string            `json:"format_name"`
	FormatLongName string            `json:"format_long_name"`
	Duration       string            `json:"duration"`
	BitRate        string            `json:"bit_rate"`
	Tags           map[string]string `json:"tags"`
}

type ffprobeStream struct {
	CodecType     string `json:"codec_type"`
	CodecName     string `json:"codec_name"`
	CodecLongName string `json:"codec_long_name"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	BitRate       string `json:"bit_rate"`
}

// Backend probes files by running ffprobe. It is safe for concurrent use.
type Backend struct {
	binary string
}

// New returns a Backend that runs binary. An empty binary means DefaultBinary.
func New(binary string) *Backend {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Backend{binary: binary}
}

// Name returns "ffprobe".
func (b *Backend) Name() string {
	return "ffprobe"
}

// Available reports an error if the ffprobe binary cannot be found.
func (b *Backend) Available() error {
	if _, err := exec.LookPath(b.binary); err != nil {
		return coreerrors.NewBackendUnavailableError(b.binary, err)
	}
	return nil
}

// Probe runs ffprobe on path and converts its output to AudioInfo.
func (b *Backend) Probe(ctx context.Context, path string) (*probe.AudioInfo, error) {
	data, err := b.run(ctx, path)
	if err != nil {
		return nil, err
	}

	out, err := parseFFprobeOutput(data)
	if err != nil {
		return nil, err
	}

	info, err := extractAudioInfo(out, path)
	if err != nil {
		return nil, err
	}

	if size, statErr := util.GetFileSize(path); statErr == nil {
		info.FileSize = size
	}
	return info, nil
}

// run executes ffprobe and returns its stdout.
func (b *Backend) run(ctx context.Context, inputPath string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, b.binary,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, coreerrors.WrapExecError(b.binary, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// parseFFprobeOutput parses ffprobe JSON output.
func parseFFprobeOutput(data []byte) (*ffprobeOutput, error) {
	var result ffprobeOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, coreerrors.NewJSONParseError("failed to parse ffprobe output", err)
	}
	return &result, nil
}

// extractAudioInfo maps parsed ffprobe output onto AudioInfo. The first
// audio stream supplies codec details; any video stream sets HasVideo.
func extractAudioInfo(out *ffprobeOutput, path string) (*probe.AudioInfo, error) {
	if out.Format == nil && len(out.Streams) == 0 {
		return nil, coreerrors.NewNoStreamsFoundError(path)
	}

	info := &probe.AudioInfo{FilePath: path}

	if f := out.Format; f != nil {
		info.FormatName = f.FormatName
		info.FormatLongName = f.FormatLongName
		if d, ok := parseFloat(f.Duration); ok {
			info.DurationSeconds = &d
		}
		if br, ok := parseInt(f.BitRate); ok && br > 0 {
			info.BitRate = &br
		}
		if len(f.Tags) > 0 {
			info.Metadata = make(map[string]string, len(f.Tags))
			for k, v := range f.Tags {
				info.Metadata[strings.ToLower(k)] = v
			}
		}
	}

	var audio *ffprobeStream
	for i := range out.Streams {
		switch out.Streams[i].CodecType {
		case "audio":
			if audio == nil {
				audio = &out.Streams[i]
			}
		case "video":
			info.HasVideo = true
		}
	}

	if audio != nil {
		info.CodecName = audio.CodecName
		info.CodecLongName = audio.CodecLongName
		if sr, ok := parseInt(audio.SampleRate); ok && sr > 0 {
			info.SampleRate = probe.Int(int(sr))
		}
		if audio.Channels > 0 {
			info.Channels = probe.Int(audio.Channels)
		}
		// Stream bitrate only fills in when the container has none.
		if info.BitRate == nil {
			if br, ok := parseInt(audio.BitRate); ok && br > 0 {
				info.BitRate = &br
			}
		}
	}

	return info, nil
}

func parseFloat(s string) (float64, bool) {
	if s == "" || s == "N/A" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int64, bool) {
	if s == "" || s == "N/A" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
