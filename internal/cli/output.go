package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pardal23/gato23/internal/archive"
	"github.com/pardal23/gato23/internal/export"
	"github.com/pardal23/gato23/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (import errors, missing record, nothing to export)
	ExitCommandError = 2 // Command error (bad flags, store unavailable, etc.)
)

// Error codes reported in the JSON error envelope.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeArchive      = "ARCHIVE_ERROR"
	CodeNothing      = "NOTHING_TO_EXPORT"
	CodeImport       = "IMPORT_FAILED"
	CodeAborted      = "ABORTED"
	CodeCommandError = "COMMAND_ERROR"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
	Details any    // Result reported with the JSON error envelope (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorDetails returns the details carried by an ExitError, if any.
func ErrorDetails(err error) any {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Details
	}
	return nil
}

// ErrorCode maps an error to the code used in the JSON error envelope.
func ErrorCode(err error) string {
	var storeErr *store.Error
	switch {
	case errors.Is(err, store.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, errAborted):
		return CodeAborted
	case errors.Is(err, export.ErrNothingToExport), errors.Is(err, errEmptyNote):
		return CodeNothing
	case errors.Is(err, errImportFailed):
		return CodeImport
	case errors.As(err, &storeErr):
		return string(storeErr.Code)
	case archive.IsFormatError(err), archive.IsEntryError(err):
		return CodeArchive
	}
	return CodeCommandError
}

// storeExitError picks the exit code for a failed store operation: a missing
// record is an operation failure, anything else is a command error.
func storeExitError(message string, err error) *ExitError {
	if errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitFailure, message, err)
	}
	return WrapExitError(ExitCommandError, message, err)
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "NOT_FOUND", "STORE_WRITE", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format. In text
// mode data is printed with fmt, so result types implement fmt.Stringer.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

