package model

import "fmt"

// ExitCode defines the process exit codes of the watersort CLI.
// Scripts can rely on these values to tell failure modes apart.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully. A puzzle
	// without a solution is still a successful run: it prints an empty list.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitPuzzleNotFound indicates the puzzle file given with --file does not exist.
	ExitPuzzleNotFound ExitCode = 2

	// ExitInvalidPuzzle indicates the puzzle file could not be parsed or
	// describes an impossible layout (unknown color, overfull container).
	ExitInvalidPuzzle ExitCode = 3

	// ExitUnknownLayout indicates --layout named no built-in layout.
	ExitUnknownLayout ExitCode = 4

	// ExitTimeout indicates the search was stopped by --timeout.
	ExitTimeout ExitCode = 5
)

// CLIError is an error that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the message, followed by the underlying error when present.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
