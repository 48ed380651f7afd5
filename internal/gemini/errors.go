package gemini

import "errors"

var (
	// ErrUnavailable means the API endpoint could not be reached.
	ErrUnavailable = errors.New("gemini: service unavailable")

	// ErrTimeout means the call exceeded the configured deadline.
	ErrTimeout = errors.New("gemini: request timed out")

	// ErrInvalidOutput means the response carried no usable text.
	ErrInvalidOutput = errors.New("gemini: invalid output")
)
