// Package mediainfo provides a metadata backend built on the MediaInfo CLI.
package mediainfo

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

// DefaultBinary is the mediainfo executable looked up on PATH.
const DefaultBinary = "mediainfo"

// GeneralTrack contains container-level information from MediaInfo.
type GeneralTrack struct {
	Format           string            `json:"Format"`
	FormatCommercial string            `json:"Format_Commercial_IfAny"`
	FileSize         string            `json:"FileSize"`
	Duration         string            `json:"Duration"`
	OverallBitRate   string            `json:"OverallBitRate"`
	Title            string            `json:"Title"`
	Album            string            `json:"Album"`
	Performer        string            `json:"Performer"`
	Genre            string            `json:"Genre"`
	TrackPosition    string            `json:"Track_Position"`
	RecordedDate     string            `json:"Recorded_Date"`
	Comment          string            `json:"Comment"`
	Extra            map[string]string `json:"extra"`
}

// AudioTrack contains audio track information from MediaInfo.
type AudioTrack struct {
	Format           string `json:"Format"`
	FormatCommercial string `json:"Format_Commercial_IfAny"`
	FormatProfile    string `json:"Format_Profile"`
	Channels         string `json:"Channels"`
	SamplingRate     string `json:"SamplingRate"`
	BitRate          string `json:"BitRate"`
	Duration         string `json:"Duration"`
}

// Track represents a MediaInfo track with type information.
type Track struct {
	Type    string `json:"@type"`
	General GeneralTrack
	Audio   AudioTrack
}

// UnmarshalJSON implements custom JSON unmarshaling for Track.
func (t *Track) UnmarshalJSON(data []byte) error {
	// First, get the track type
	var typeOnly struct {
		Type string `json:"@type"`
	}
	if err := json.Unmarshal(data, &typeOnly); err != nil {
		return err
	}
	t.Type = typeOnly.Type

	// Then unmarshal based on type
	switch t.Type {
	case "General":
		return json.Unmarshal(data, &t.General)
	case "Audio":
		return json.Unmarshal(data, &t.Audio)
	}
	return nil
}

// Media contains the track array.
type Media struct {
	Ref   string  `json:"@ref"`
	Track []Track `json:"track"`
}

// Response is the root MediaInfo response structure.
type Response struct {
	Media *Media `json:"media"`
}

// Backend probes files by running mediainfo. It is safe for concurrent use.
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

// Name returns "mediainfo".
func (b *Backend) Name() string {
	return "mediainfo"
}

// Available checks if MediaInfo is available on the system.
func (b *Backend) Available() error {
	if _, err := exec.LookPath(b.binary); err != nil {
		return coreerrors.NewBackendUnavailableError(b.binary, err)
	}
	return nil
}

// Probe runs MediaInfo on path and converts its output to AudioInfo.
func (b *Backend) Probe(ctx context.Context, path string) (*probe.AudioInfo, error) {
	cmd := exec.CommandContext(ctx, b.binary, "--Output=JSON", path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, coreerrors.WrapExecError(b.binary, err, strings.TrimSpace(stderr.String()))
	}

	resp, err := parseMediaInfoOutput(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	info, err := extractAudioInfo(resp, path)
	if err != nil {
		return nil, err
	}
	if info.FileSize == 0 {
		if size, statErr := util.GetFileSize(path); statErr == nil {
			info.FileSize = size
		}
	}
	return info, nil
}

// parseMediaInfoOutput parses MediaInfo JSON output into the Response structure.
func parseMediaInfoOutput(data []byte) (*Response, error) {
	var result Response
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, coreerrors.NewJSONParseError("failed to parse mediainfo output", err)
	}

	return &result, nil
}

// extractAudioInfo maps MediaInfo tracks onto AudioInfo. MediaInfo prints
// a media object with no tracks for files it cannot read.
func extractAudioInfo(resp *Response, path string) (*probe.AudioInfo, error) {
	if resp.Media == nil || len(resp.Media.Track) == 0 {
		return nil, coreerrors.NewNoStreamsFoundError(path)
	}

	info := &probe.AudioInfo{FilePath: path}

	var general *GeneralTrack
	var audio *AudioTrack
	for i := range resp.Media.Track {
		track := &resp.Media.Track[i]
		switch track.Type {
		case "General":
			if general == nil {
				general = &track.General
			}
		case "Audio":
			if audio == nil {
				audio = &track.Audio
			}
		case "Video":
			info.HasVideo = true
		}
	}

	if general != nil {
		info.FormatName = strings.ToLower(general.Format)
		info.FormatLongName = firstNonEmpty(general.FormatCommercial, general.Format)
		if size, ok := parseUint(general.FileSize); ok {
			info.FileSize = size
		}
		if d, ok := parseFloat(general.Duration); ok {
			info.DurationSeconds = &d
		}
		if br, ok := parseFloat(general.OverallBitRate); ok && br > 0 {
			info.BitRate = probe.Int64(int64(br))
		}
		info.Metadata = generalTags(general)
	}

	if audio != nil {
		info.CodecName = strings.ToLower(audio.Format)
		info.CodecLongName = firstNonEmpty(audio.FormatCommercial, joinNonEmpty(audio.Format, audio.FormatProfile))
		if sr, ok := parseFloat(audio.SamplingRate); ok && sr > 0 {
			info.SampleRate = probe.Int(int(sr))
		}
		if ch, ok := parseUint(audio.Channels); ok && ch > 0 {
			info.Channels = probe.Int(int(ch))
		}
		if info.BitRate == nil {
			if br, ok := parseFloat(audio.BitRate); ok && br > 0 {
				info.BitRate = probe.Int64(int64(br))
			}
		}
		if info.DurationSeconds == nil {
			if d, ok := parseFloat(audio.Duration); ok {
				info.DurationSeconds = &d
			}
		}
	}

	return info, nil
}

// generalTags collects the tag fields of the General track, lowercasing keys.
func generalTags(g *GeneralTrack) map[string]string {
	tags := make(map[string]string)
	set := func(k, v string) {
		if v != "" {
			tags[k] = v
		}
	}
	set("title", g.Title)
	set("album", g.Album)
	set("artist", g.Performer)
	set("genre", g.Genre)
	set("track", g.TrackPosition)
	set("date", g.RecordedDate)
	set("comment", g.Comment)
	for k, v := range g.Extra {
		set(strings.ToLower(k), v)
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(a, b string) string {
	if a == "" || b == "" {
		return a + b
	}
	return a + " " + b
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseUint(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
