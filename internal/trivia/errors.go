package trivia

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by this package wraps exactly one of
// them; handlers map them to status codes with errors.Is.
var (
	// ErrBadRequest marks a request whose shape is malformed or missing.
	ErrBadRequest = errors.New("bad request")
	// ErrUnprocessable marks a well-formed request that is semantically invalid.
	ErrUnprocessable = errors.New("unprocessable")
	// ErrNotFound marks a page, category, question or search result that does not exist.
	ErrNotFound = errors.New("resource not found")
)

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

func unprocessable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnprocessable, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
