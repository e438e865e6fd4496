package audioprobe

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	coreerrors "github.com/five82/audioprobe/internal/errors"
	"github.com/five82/audioprobe/internal/logging"
	"github.com/five82/audioprobe/internal/probe"
)

func stubBackend() Backend {
	return probe.BackendFunc(func(ctx context.Context, path string) (*AudioInfo, error) {
		if strings.HasSuffix(path, ".wav") {
			return nil, errors.New("unreadable")
		}
		return &AudioInfo{FilePath: path, SampleRate: probe.Int(48000)}, nil
	})
}

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestNewDefaults(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.MaxConcurrent() != DefaultMaxConcurrent {
		t.Errorf("MaxConcurrent() = %d, want %d", a.MaxConcurrent(), DefaultMaxConcurrent)
	}
	if a.BackendName() != "ffprobe" {
		t.Errorf("BackendName() = %q, want ffprobe", a.BackendName())
	}
}

func TestNewClampsAndSelectsBackend(t *testing.T) {
	a, err := New(WithMaxConcurrent(5000), WithBackend("mediainfo", "/opt/bin/mediainfo"))
	if err != nil {
		t.Fatal(err)
	}
	if a.MaxConcurrent() != 2000 {
		t.Errorf("MaxConcurrent() = %d, want 2000", a.MaxConcurrent())
	}
	if a.BackendName() != "mediainfo" {
		t.Errorf("BackendName() = %q, want mediainfo", a.BackendName())
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(WithBackend("sox", ""))
	if !coreerrors.IsKind(err, coreerrors.KindConfig) {
		t.Errorf("New() with unknown backend error = %v, want configuration error", err)
	}
}

func TestAnalyze(t *testing.T) {
	dir := writeFiles(t, "a.mp3", "b.wav", "notes.txt")

	a, err := New(WithProbeBackend(stubBackend()), WithLogger(logging.Nop()))
	if err != nil {
		t.Fatal(err)
	}

	result, err := a.Analyze(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.TotalFiles != 2 || result.Successful() != 1 || result.Failed() != 1 {
		t.Fatalf("got total=%d ok=%d failed=%d, want 2/1/1",
			result.TotalFiles, result.Successful(), result.Failed())
	}

	out, err := Render(result, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("rendered JSON invalid: %v", err)
	}
}

func TestAnalyzeNoFiles(t *testing.T) {
	dir := writeFiles(t, "readme.md")

	a, err := New(WithProbeBackend(stubBackend()), WithLogger(logging.Nop()))
	if err != nil {
		t.Fatal(err)
	}

	result, err := a.Analyze(context.Background(), []string{dir})
	if result != nil {
		t.Error("Analyze() should not return a result when no files resolve")
	}
	if !coreerrors.IsNoFilesFound(err) {
		t.Errorf("Analyze() error = %v, want no files found", err)
	}
}

func TestAnalyzeFile(t *testing.T) {
	a, err := New(WithProbeBackend(stubBackend()))
	if err != nil {
		t.Fatal(err)
	}

	info, err := a.AnalyzeFile(context.Background(), "song.flac")
	if err != nil {
		t.Fatalf("AnalyzeFile() error = %v", err)
	}
	if info.SampleRate == nil || *info.SampleRate != 48000 {
		t.Errorf("SampleRate = %v, want 48000", info.SampleRate)
	}

	_, err = a.AnalyzeFile(context.Background(), "take.wav")
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("AnalyzeFile() error = %v, want *FileError", err)
	}
	if fe.Path != "take.wav" || !strings.Contains(fe.Message, "unreadable") {
		t.Errorf("FileError = %+v", fe)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	if err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
}
