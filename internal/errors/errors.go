package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// MalformedBlock indicates a documentation block without the @name: delimiters
	MalformedBlock ErrorCode = "MALFORMED_BLOCK"
	// OrphanedBlock indicates no header line mentions the block's target identifier
	OrphanedBlock ErrorCode = "ORPHANED_BLOCK"
	// UnterminatedBlock indicates the input ended while a block was still open
	UnterminatedBlock ErrorCode = "UNTERMINATED_BLOCK"
	// IOFailure indicates the header could not be read or the output written
	IOFailure ErrorCode = "IO_FAILURE"
	// InvalidConfig indicates a configuration or override file problem
	InvalidConfig ErrorCode = "INVALID_CONFIG"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditHeader suggests editing the source header
	EditHeader FixActionType = "edit-header"
	// EditConfig suggests editing the configuration
	EditConfig FixActionType = "edit-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Description string        `json:"description,omitempty"`
}

// PrepError is a preprocessing error with code, message, and suggestions
type PrepError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewPrepError creates a new PrepError
func NewPrepError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *PrepError {
	return &PrepError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// New creates a PrepError carrying the default fixes for its code.
func New(code ErrorCode, format string, args ...interface{}) *PrepError {
	return NewPrepError(code, fmt.Sprintf(format, args...), nil, GetSuggestedFixes(code))
}

// Wrap creates a PrepError around cause, carrying the default fixes for its code.
func Wrap(code ErrorCode, cause error, format string, args ...interface{}) *PrepError {
	return NewPrepError(code, fmt.Sprintf(format, args...), cause, GetSuggestedFixes(code))
}

// Error implements the error interface
func (e *PrepError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PrepError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *PrepError) WithDetails(details interface{}) *PrepError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first PrepError in err's chain.
// Errors that are not PrepErrors report InternalError; nil reports "".
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var pe *PrepError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return InternalError
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	MalformedBlock: {
		{
			Type:        EditHeader,
			Description: "Enumerator doc blocks must look like ' * @NAME: description'",
		},
	},
	OrphanedBlock: {
		{
			Type:        EditHeader,
			Description: "Remove the doc block or fix the enumerator name it refers to",
		},
		{
			Type:        RunCommand,
			Command:     "nmprep variants --all",
			Description: "List the enumerators the header defines",
		},
	},
	UnterminatedBlock: {
		{
			Type:        EditHeader,
			Description: "Close the comment containing the doc block",
		},
		{
			Type:        EditConfig,
			Description: "Set header.discardUnterminated = true to drop trailing blocks",
		},
	},
	InvalidConfig: {
		{
			Type:        RunCommand,
			Command:     "nmprep config show",
			Description: "Inspect the effective configuration",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
