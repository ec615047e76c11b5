package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so the transport layer can map it to a status
// code without inspecting message text.
type Kind int

const (
	Internal Kind = iota
	InvalidFormat
	FutureCreationDate
	PastDueDate
	InvalidStartDate
	InvalidEndDate
	InvalidDateRange
	NotFound
	PermissionDenied
	TaskNotFound
	ProjectNotFound
	InvalidCredentials
	Conflict
)

// Error is the typed error returned by validation, access control, and the
// entity services. It carries a human-readable message naming the offending
// field/value; authorization failures deliberately carry no entity details.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a typed error with a formatted message.
func E(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error, preserving it
// for errors.Is/As inspection.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// statusByKind is the single dispatch table mapping error kinds to HTTP
// status codes. ProjectNotFound maps to 409 because a task create naming a
// missing project is a referential conflict, not a missing resource.
var statusByKind = map[Kind]int{
	Internal:           http.StatusInternalServerError,
	InvalidFormat:      http.StatusBadRequest,
	FutureCreationDate: http.StatusBadRequest,
	PastDueDate:        http.StatusBadRequest,
	InvalidStartDate:   http.StatusBadRequest,
	InvalidEndDate:     http.StatusBadRequest,
	InvalidDateRange:   http.StatusBadRequest,
	NotFound:           http.StatusNotFound,
	PermissionDenied:   http.StatusForbidden,
	TaskNotFound:       http.StatusNotFound,
	ProjectNotFound:    http.StatusConflict,
	InvalidCredentials: http.StatusUnauthorized,
	Conflict:           http.StatusConflict,
}

// KindOf extracts the Kind from err, or Internal when err is not typed.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// StatusCode returns the HTTP status for err based on its kind.
func StatusCode(err error) int {
	if code, ok := statusByKind[KindOf(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
