package llm

import "errors"

var (
	// ErrUnavailable indicates the LLM provider is unreachable.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrNotConfigured indicates the provider is unknown or lacks credentials.
	ErrNotConfigured = errors.New("llm provider not configured")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
