package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors classifying remote failures. Every error returned by the
// client wraps exactly one of these, so callers can branch with errors.Is
// without inspecting status codes themselves.
var (
	// ErrUnauthorized is returned for rejected credentials (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation is returned for field conflicts and constraint
	// violations (HTTP 400, 409, 422).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when the addressed entity does not exist
	// (HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrNetwork is returned for transport failures and any other
	// non-2xx response.
	ErrNetwork = errors.New("network failure")
)

// Error carries the full context of a failed request.
type Error struct {
	URL       string
	Method    string
	Status    int
	Body      string
	Message   string
	RequestID string
	TheError  error
}

func (e *Error) Error() string {
	if e == nil || e.TheError == nil {
		return ""
	}
	return e.TheError.Error()
}

func (e *Error) Unwrap() error {
	return e.TheError
}

func NewError(url, method string, status int, body string, err error, requestID string) *Error {
	return &Error{
		URL:       url,
		Method:    method,
		Status:    status,
		Body:      body,
		RequestID: requestID,
		TheError:  err,
	}
}

// classify maps an HTTP status to its sentinel.
func classify(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrNetwork
	}
}
