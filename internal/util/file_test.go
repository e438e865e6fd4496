package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasMediaExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"SONG.MP3", true},
		{"/a/b/track.flac", true},
		{"take.aiff", true},
		{"book.m4b", true},
		{"notes.txt", false},
		{"cover.jpg", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := HasMediaExtension(tt.path); got != tt.want {
				t.Errorf("HasMediaExtension(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsHidden(t *testing.T) {
	if !IsHidden(".DS_Store") {
		t.Error("IsHidden(.DS_Store) = false, want true")
	}
	if IsHidden("track.mp3") {
		t.Error("IsHidden(track.mp3) = true, want false")
	}
}

func TestGetFilename(t *testing.T) {
	if got := GetFilename("/music/01 Intro.flac"); got != "01 Intro.flac" {
		t.Errorf("GetFilename() = %q, want %q", got, "01 Intro.flac")
	}
}

func TestGetFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(path, make([]byte, 1234), 0644); err != nil {
		t.Fatal(err)
	}

	size, err := GetFileSize(path)
	if err != nil {
		t.Fatalf("GetFileSize() error = %v", err)
	}
	if size != 1234 {
		t.Errorf("GetFileSize() = %d, want 1234", size)
	}

	if _, err := GetFileSize(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("GetFileSize() on missing file should fail")
	}
}

func TestCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	a := CanonicalPath(filepath.Join(dir, "sub", "..", "x.mp3"))
	b := CanonicalPath(filepath.Join(dir, "x.mp3"))
	if a != b {
		t.Errorf("CanonicalPath mismatch: %q vs %q", a, b)
	}
	if !filepath.IsAbs(CanonicalPath("relative.mp3")) {
		t.Error("CanonicalPath should return an absolute path")
	}
}

func TestCanonicalPathResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	realDir := filepath.Join(dir, "real")
	if err := os.Mkdir(realDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(realDir, "a.mp3"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got := CanonicalPath(filepath.Join(link, "a.mp3"))
	want := CanonicalPath(filepath.Join(realDir, "a.mp3"))
	if got != want {
		t.Errorf("CanonicalPath through link = %q, want %q", got, want)
	}
}
