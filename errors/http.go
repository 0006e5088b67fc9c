package errors

import (
	"errors"
	"net/http"
)

// MapToHTTPStatus translates service errors into HTTP status codes.
// Anything unmapped is a server fault.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyQuestion),
		errors.Is(err, ErrEmptyQuery),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrEmptyDocument),
		errors.Is(err, ErrUnsupportedContent):
		return http.StatusBadRequest
	case errors.Is(err, ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrQueueFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
