package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/y2km/internal/store"
	"github.com/roach88/y2km/internal/y2km"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Input rejected by the codec (parse error, range overflow, etc.)
	ExitCommandError = 2 // Command error (bad config, database unavailable, column not found)
)

// Error codes for failures that do not come from the codec.
// Codec failures use the codec's own codes (PARSE_ERROR, RANGE_OVERFLOW, ...).
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeInput    = "E002" // Malformed command-line argument
	ErrCodeConfig   = "E003" // Config file could not be loaded
	ErrCodeStore    = "E004" // Database could not be opened or queried
	ErrCodeNotFound = "E005" // Column not found
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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
	Code    string `json:"code"`              // "PARSE_ERROR", "E005", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result. In text mode each line is written
// as-is; in JSON mode data is wrapped in a CLIResponse.
func (f *OutputFormatter) Success(data any, lines ...string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(f.Writer, line); err != nil {
			return err
		}
	}
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
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

// Fail reports err and returns the matching ExitError.
// Codec errors exit 1 with the codec's code. An ExitError built with
// WrapExitError(exit, ErrCode..., err) is reported under that code.
// Anything else is a command error.
func (f *OutputFormatter) Fail(err error) error {
	var (
		codecErr *y2km.Error
		exitErr  *ExitError
	)
	switch {
	case errors.As(err, &codecErr):
		var details any
		if codecErr.Input != "" {
			details = map[string]string{"input": codecErr.Input}
		}
		_ = f.Error(string(codecErr.Code), codecErr.Error(), details)
		return WrapExitError(ExitFailure, string(codecErr.Code), err)
	case errors.Is(err, store.ErrNotFound):
		_ = f.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeNotFound, err)
	case errors.As(err, &exitErr):
		message := exitErr.Message
		if exitErr.Err != nil {
			message = exitErr.Err.Error()
		}
		_ = f.Error(exitErr.Message, message, nil)
		return exitErr
	default:
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeGeneric, err)
	}
}

// VerboseLog outputs a message only if verbose mode is enabled.
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
