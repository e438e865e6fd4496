// Package errors provides structured error types for audioprobe operations.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindIO represents I/O errors.
	KindIO ErrorKind = iota
	// KindCommand represents external command execution errors.
	KindCommand
	// KindJSONParse represents JSON parsing errors.
	KindJSONParse
	// KindAudioInfo represents audio information extraction errors.
	KindAudioInfo
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindNoFilesFound represents no candidate files resolved from the input.
	KindNoFilesFound
	// KindNoStreamsFound represents a file with no usable streams.
	KindNoStreamsFound
	// KindCancelled represents user-cancelled operations.
	KindCancelled
	// KindDiscovery represents errors while enumerating input paths.
	KindDiscovery
	// KindOutput represents an unusable report destination.
	KindOutput
	// KindBackendUnavailable represents a missing probing tool.
	KindBackendUnavailable
	// KindPanic represents a recovered panic inside a probe backend.
	KindPanic
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindCommand:
		return "Command error"
	case KindJSONParse:
		return "JSON parse error"
	case KindAudioInfo:
		return "Audio info error"
	case KindConfig:
		return "Configuration error"
	case KindNoFilesFound:
		return "No files found"
	case KindNoStreamsFound:
		return "No streams found"
	case KindCancelled:
		return "Operation cancelled"
	case KindDiscovery:
		return "Discovery error"
	case KindOutput:
		return "Output error"
	case KindBackendUnavailable:
		return "Backend unavailable"
	case KindPanic:
		return "Backend panic"
	default:
		return "Unknown error"
	}
}

// CommandErrorKind represents the type of command error.
type CommandErrorKind int

const (
	// CommandStart means the command failed to start.
	CommandStart CommandErrorKind = iota
	// CommandWait means waiting for the command failed.
	CommandWait
	// CommandFailed means the command returned non-zero exit status.
	CommandFailed
)

// CommandError represents an error from executing an external command.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandWait:
		return fmt.Sprintf("failed to wait for %s: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("command %s error: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for audioprobe operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewCommandError creates a new command execution error.
func NewCommandError(cmd string, kind CommandErrorKind, underlying error) *CoreError {
	cmdErr := &CommandError{
		Command:    cmd,
		Kind:       kind,
		Underlying: underlying,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandStartError creates an error for when a command fails to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandStart, err)
}

// NewCommandFailedError creates an error for when a command returns non-zero exit status.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewJSONParseError creates a new JSON parsing error.
func NewJSONParseError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindJSONParse, Message: message, Underlying: underlying}
}

// NewAudioInfoError creates a new audio information extraction error.
func NewAudioInfoError(message string) *CoreError {
	return &CoreError{Kind: KindAudioInfo, Message: message}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message, Underlying: underlying}
}

// NewNoFilesFoundError creates an error for when no candidate files resolve.
func NewNoFilesFoundError(roots []string) *CoreError {
	return &CoreError{Kind: KindNoFilesFound, Message: fmt.Sprintf("no media files found in %v", roots)}
}

// NewNoStreamsFoundError creates an error for when a file has no audio stream.
func NewNoStreamsFoundError(path string) *CoreError {
	return &CoreError{Kind: KindNoStreamsFound, Message: fmt.Sprintf("no audio stream found in %s", path)}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError() *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled by the user"}
}

// NewDiscoveryError creates an error for a path that could not be enumerated.
func NewDiscoveryError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindDiscovery, Message: path, Underlying: underlying}
}

// NewOutputError creates an error for a report destination that cannot be written.
func NewOutputError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindOutput, Message: fmt.Sprintf("cannot write report to %s", path), Underlying: underlying}
}

// NewBackendUnavailableError creates an error for a probing tool that is not installed.
func NewBackendUnavailableError(tool string, underlying error) *CoreError {
	return &CoreError{Kind: KindBackendUnavailable, Message: fmt.Sprintf("%s not found, please install it", tool), Underlying: underlying}
}

// NewPanicError creates an error from a value recovered from a panicking backend.
func NewPanicError(recovered any) *CoreError {
	return &CoreError{Kind: KindPanic, Message: fmt.Sprintf("%v", recovered)}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// IsNoFilesFound checks if the error is a no-files-found error.
func IsNoFilesFound(err error) bool {
	return IsKind(err, KindNoFilesFound)
}

// WrapExecError wraps an exec error into a CoreError. A missing binary is
// reported as KindBackendUnavailable.
func WrapExecError(cmd string, err error, stderr string) *CoreError {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return NewBackendUnavailableError(cmd, err)
	}
	return NewCommandStartError(cmd, err)
}
