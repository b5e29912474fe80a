package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer.
var (
	// ErrParseFailure marks a definition document that could not be decoded
	// at all. Recoverable: the loader logs it and skips the document.
	ErrParseFailure = fmt.Errorf("agent definition unparseable")
	// ErrSourceUnavailable marks a document source that could not be
	// enumerated. Fatal to the load pass, retryable by the caller.
	ErrSourceUnavailable = fmt.Errorf("document source unavailable")
	// ErrAgentNotFound marks an invocation of an unknown agent name.
	ErrAgentNotFound = fmt.Errorf("agent not found")
	// ErrInvalidTask marks an empty or whitespace-only task.
	ErrInvalidTask = fmt.Errorf("task must be a non-empty string")
	// ErrTrackerFault marks a failure reported by the work-tracking
	// collaborator. Mapped to a failed InvocationResult, never escalated.
	ErrTrackerFault = fmt.Errorf("work tracker fault")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "Registry.Load")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ErrorCode is a machine-parseable error category for monitoring and alerting.
type ErrorCode string

// Every sentinel error maps to exactly one code.
const (
	CodeUnknown           ErrorCode = "UNKNOWN"
	CodeParseFailure      ErrorCode = "PARSE_FAILURE"
	CodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	CodeAgentNotFound     ErrorCode = "AGENT_NOT_FOUND"
	CodeInvalidTask       ErrorCode = "INVALID_TASK"
	CodeTrackerFault      ErrorCode = "TRACKER_FAULT"
)

// errorCodeMap maps sentinel errors to their machine-parseable codes.
var errorCodeMap = map[error]ErrorCode{
	ErrParseFailure:      CodeParseFailure,
	ErrSourceUnavailable: CodeSourceUnavailable,
	ErrAgentNotFound:     CodeAgentNotFound,
	ErrInvalidTask:       CodeInvalidTask,
	ErrTrackerFault:      CodeTrackerFault,
}

// ErrorCodeOf returns the machine-parseable error code for the given error.
// It unwraps DomainError and uses errors.Is to match sentinel errors.
// Returns CodeUnknown if no matching sentinel is found.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	if code, ok := errorCodeMap[err]; ok {
		return code
	}

	var de *DomainError
	if errors.As(err, &de) {
		if code, ok := errorCodeMap[de.Err]; ok {
			return code
		}
	}

	for sentinel, code := range errorCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}

	return CodeUnknown
}

// Code returns the ErrorCode for this DomainError's underlying sentinel.
func (e *DomainError) Code() ErrorCode {
	if code, ok := errorCodeMap[e.Err]; ok {
		return code
	}
	return CodeUnknown
}
