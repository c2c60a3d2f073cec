// Package apperr defines the typed errors raised by the domain services and
// their translation to HTTP responses. Services return these values; the echo
// error handler installed by ErrorHandler maps each type to a status code
// exactly once, so handlers never inspect error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// NotFoundError reports that a required lookup found nothing, or that a
// listing operation found an empty collection. Kind names the entity so the
// message stays specific ("doctor", "department", ...).
type NotFoundError struct {
	Kind    string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("no %s with the given id was found", e.Kind)
}

// NewNotFound returns a NotFoundError for a missing entity of the given kind.
func NewNotFound(kind string) *NotFoundError {
	return &NotFoundError{Kind: kind}
}

// NewEmptyCollection returns the NotFoundError raised when a listing finds
// zero rows.
func NewEmptyCollection(kind string) *NotFoundError {
	return &NotFoundError{Kind: kind, Message: fmt.Sprintf("no %ss found", kind)}
}

// ConflictError reports a referential guard refusal: the target entity is
// still referenced by at least one other entity.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflict returns a ConflictError with the given message.
func NewConflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// InvalidInputError reports a nil/absent create payload.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

// NewInvalidInput returns an InvalidInputError with the given message.
func NewInvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{Message: message}
}

// ValidationError aggregates field constraint violations collected at the
// request boundary.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// NewValidation returns a ValidationError, or nil when there are no
// violations.
func NewValidation(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// Status maps an error from the taxonomy to the HTTP status the
// central handler will respond with. Used by the request logger to
// record the outcome before the response is written.
func Status(err error) int {
	var (
		notFound   *NotFoundError
		conflict   *ConflictError
		validation *ValidationError
		httpErr    *echo.HTTPError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &httpErr):
		return httpErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler returns an echo HTTPErrorHandler that maps the error taxonomy
// to status codes:
//
//	NotFoundError     -> 404, message plus a timestamp
//	ConflictError     -> 409
//	ValidationError   -> 400, comma-joined violations
//	InvalidInputError -> 500 (the original service behaved this way; see
//	                     DESIGN.md for the 500-vs-400 decision)
//	echo.HTTPError    -> passed through unchanged
//	anything else     -> 500 with the raw message
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := err.Error()

		var (
			notFound   *NotFoundError
			conflict   *ConflictError
			invalid    *InvalidInputError
			validation *ValidationError
			httpErr    *echo.HTTPError
		)
		switch {
		case errors.As(err, &notFound):
			status = http.StatusNotFound
			body = fmt.Sprintf("%s at %s", notFound.Error(), time.Now().Format(time.RFC3339))
		case errors.As(err, &conflict):
			status = http.StatusConflict
			body = conflict.Error()
		case errors.As(err, &validation):
			status = http.StatusBadRequest
			body = validation.Error()
		case errors.As(err, &invalid):
			status = http.StatusInternalServerError
			body = invalid.Error()
		case errors.As(err, &httpErr):
			status = httpErr.Code
			body = fmt.Sprintf("%v", httpErr.Message)
		}

		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.String(status, body)
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
