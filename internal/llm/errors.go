package llm

import "errors"

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("llm backend unavailable")

	// ErrEmptyCompletion indicates the backend answered with no usable text.
	ErrEmptyCompletion = errors.New("llm backend returned empty completion")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)
