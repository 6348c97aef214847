package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"

	"github.com/roach88/ndtool/internal/array"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (shape/type mismatch, failing cases)
	ExitCommandError = 2 // Command error (invalid input, missing flags, bad config)
)

// User-facing error codes.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeLoadFailed    = "E004" // Case file load failed
	ErrCodeInvalidInput  = "E201" // Operand is not a valid literal or loadable file
	ErrCodeShapeMismatch = "E202" // Shapes cannot be broadcast together
	ErrCodeTypeMismatch  = "E203" // Dtypes have no common type
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set when the error was already written through an
	// OutputFormatter, so Execute does not print it again.
	Reported bool
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

// TraceIDGenerator produces the trace id attached to a run.
type TraceIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 trace ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
	TraceID   string
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string    `json:"status"`             // "ok" or "error"
	Data    any       `json:"data,omitempty"`     // success payload
	Error   *CLIError `json:"error,omitempty"`    // error details
	TraceID string    `json:"trace_id,omitempty"` // run id, also logged as run_id
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E201", "E202", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// ArrayPayload is the JSON form of an array.
type ArrayPayload struct {
	DType string `json:"dtype"`
	Shape []int  `json:"shape"`
	// Data is the nested element lists, or a bare element for 0-d arrays.
	// Non-finite floats are written as the strings "nan", "inf" and "-inf".
	Data any `json:"data"`
}

// NewArrayPayload converts an array for JSON output.
func NewArrayPayload(a *array.Array) ArrayPayload {
	return ArrayPayload{
		DType: a.DType().String(),
		Shape: a.Shape(),
		Data:  jsonSafe(a.Nested()),
	}
}

// jsonSafe replaces floats encoding/json cannot represent.
func jsonSafe(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonSafe(e)
		}
		return out
	case float64:
		switch {
		case math.IsNaN(x):
			return "nan"
		case math.IsInf(x, 1):
			return "inf"
		case math.IsInf(x, -1):
			return "-inf"
		}
	}
	return v
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
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
			TraceID: f.TraceID,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err through the formatter and returns the ExitError the
// command should return. Invalid input exits with ExitCommandError; every
// other failure with ExitFailure.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := classify(err)
	_ = f.Error(code, err.Error(), nil)
	return &ExitError{Code: exit, Message: code, Err: err, Reported: true}
}

// classify maps an error to its user-facing code and exit code.
func classify(err error) (string, int) {
	switch array.CodeOf(err) {
	case array.ErrCodeInvalidInput:
		return ErrCodeInvalidInput, ExitCommandError
	case array.ErrCodeShapeMismatch:
		return ErrCodeShapeMismatch, ExitFailure
	case array.ErrCodeTypeMismatch:
		return ErrCodeTypeMismatch, ExitFailure
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
