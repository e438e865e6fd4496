package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindIO, "I/O error"},
		{KindCommand, "Command error"},
		{KindJSONParse, "JSON parse error"},
		{KindAudioInfo, "Audio info error"},
		{KindConfig, "Configuration error"},
		{KindNoFilesFound, "No files found"},
		{KindNoStreamsFound, "No streams found"},
		{KindCancelled, "Operation cancelled"},
		{KindDiscovery, "Discovery error"},
		{KindOutput, "Output error"},
		{KindBackendUnavailable, "Backend unavailable"},
		{KindPanic, "Backend panic"},
		{ErrorKind(99), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindIO,
		Message:    "test message",
		Underlying: underlying,
	}

	got := err.Error()
	expected := "I/O error: test message: underlying error"
	if got != expected {
		t.Errorf("CoreError.Error() = %v, want %v", got, expected)
	}

	err2 := &CoreError{
		Kind:    KindConfig,
		Message: "config issue",
	}

	got2 := err2.Error()
	expected2 := "Configuration error: config issue"
	if got2 != expected2 {
		t.Errorf("CoreError.Error() = %v, want %v", got2, expected2)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindIO,
		Message:    "test",
		Underlying: underlying,
	}

	if err.Unwrap() != underlying {
		t.Error("Unwrap() should return underlying error")
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", err), underlying) {
		t.Error("errors.Is should reach the underlying error through wrapping")
	}
}

func TestCoreErrorIs(t *testing.T) {
	err1 := &CoreError{Kind: KindIO, Message: "test1"}
	err2 := &CoreError{Kind: KindIO, Message: "test2"}
	err3 := &CoreError{Kind: KindConfig, Message: "test3"}

	if !err1.Is(err2) {
		t.Error("Same kind errors should match")
	}

	if err1.Is(err3) {
		t.Error("Different kind errors should not match")
	}
}

func TestCommandError(t *testing.T) {
	startErr := &CommandError{
		Command:    "ffprobe",
		Kind:       CommandStart,
		Underlying: errors.New("not found"),
	}
	if got := startErr.Error(); got != "failed to execute ffprobe: not found" {
		t.Errorf("CommandStart error = %v", got)
	}

	waitErr := &CommandError{
		Command:    "ffprobe",
		Kind:       CommandWait,
		Underlying: errors.New("signal"),
	}
	if got := waitErr.Error(); got != "failed to wait for ffprobe: signal" {
		t.Errorf("CommandWait error = %v", got)
	}

	failedErr := &CommandError{
		Command:  "mediainfo",
		Kind:     CommandFailed,
		ExitCode: 1,
		Stderr:   "file not found",
	}
	expected := "command mediainfo failed with exit code 1: file not found"
	if got := failedErr.Error(); got != expected {
		t.Errorf("CommandFailed error = %v, want %v", got, expected)
	}

	bare := &CommandError{Command: "ffprobe", Kind: CommandFailed, ExitCode: 2}
	if got := bare.Error(); got != "command ffprobe failed with exit code 2" {
		t.Errorf("CommandFailed without stderr = %v", got)
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *CoreError
		kind ErrorKind
	}{
		{"NewIOError", NewIOError("disk full", errors.New("no space")), KindIO},
		{"NewConfigError", NewConfigError("bad value", nil), KindConfig},
		{"NewNoFilesFoundError", NewNoFilesFoundError([]string{"/test/dir"}), KindNoFilesFound},
		{"NewCancelledError", NewCancelledError(), KindCancelled},
		{"NewDiscoveryError", NewDiscoveryError("/x", errors.New("permission denied")), KindDiscovery},
		{"NewOutputError", NewOutputError("/ro/out.json", errors.New("read-only")), KindOutput},
		{"NewBackendUnavailableError", NewBackendUnavailableError("ffprobe", exec.ErrNotFound), KindBackendUnavailable},
		{"NewPanicError", NewPanicError("boom"), KindPanic},
		{"NewNoStreamsFoundError", NewNoStreamsFoundError("a.wav"), KindNoStreamsFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Expected %v, got %v", tt.kind, tt.err.Kind)
			}
		})
	}
}

func TestDiscoveryErrorKeepsPathAndCause(t *testing.T) {
	err := NewDiscoveryError("/music/locked", errors.New("permission denied"))
	msg := err.Error()
	if !strings.Contains(msg, "/music/locked") || !strings.Contains(msg, "permission denied") {
		t.Errorf("Error() = %q, want path and cause", msg)
	}
}

func TestIsKind(t *testing.T) {
	err := NewConfigError("test", nil)

	if !IsKind(err, KindConfig) {
		t.Error("IsKind should return true for matching kind")
	}

	if IsKind(err, KindIO) {
		t.Error("IsKind should return false for non-matching kind")
	}

	if IsKind(errors.New("plain error"), KindConfig) {
		t.Error("IsKind should return false for non-CoreError")
	}

	if !IsKind(fmt.Errorf("outer: %w", err), KindConfig) {
		t.Error("IsKind should see through wrapping")
	}
}

func TestConfigErrorKeepsSentinel(t *testing.T) {
	sentinel := errors.New("invalid backend")
	err := NewConfigError("invalid configuration", fmt.Errorf("%w: 'sox'", sentinel))

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the wrapped sentinel")
	}
	if got := err.Error(); got != "Configuration error: invalid configuration: invalid backend: 'sox'" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsCancelled(t *testing.T) {
	if !IsCancelled(NewCancelledError()) {
		t.Error("IsCancelled should return true for cancelled error")
	}
	if IsCancelled(NewConfigError("test", nil)) {
		t.Error("IsCancelled should return false for non-cancelled error")
	}
}

func TestIsNoFilesFound(t *testing.T) {
	if !IsNoFilesFound(NewNoFilesFoundError([]string{"/test"})) {
		t.Error("IsNoFilesFound should return true for no-files-found error")
	}
	if IsNoFilesFound(NewConfigError("test", nil)) {
		t.Error("IsNoFilesFound should return false for other errors")
	}
}

func TestWrapExecError(t *testing.T) {
	err := WrapExecError("ffprobe", exec.ErrNotFound, "")
	if err.Kind != KindBackendUnavailable {
		t.Errorf("missing binary kind = %v, want %v", err.Kind, KindBackendUnavailable)
	}

	err = WrapExecError("ffprobe", errors.New("fork failed"), "")
	if err.Kind != KindCommand {
		t.Errorf("start failure kind = %v, want %v", err.Kind, KindCommand)
	}
}
